//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/statsexport/internal/domain/commands"
	"github.com/rios0rios0/statsexport/internal/domain/entities"
)

// SpyGitPublisher implements commands.GitPublisher as a configurable spy.
type SpyGitPublisher struct {
	Outcome   commands.PublishOutcome
	Documents []string
}

var _ commands.GitPublisher = (*SpyGitPublisher)(nil)

func (s *SpyGitPublisher) Publish(
	_ context.Context,
	_ *entities.Settings,
	document string,
) commands.PublishOutcome {
	s.Documents = append(s.Documents, document)
	return s.Outcome
}
