//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"io"

	"github.com/rios0rios0/statsexport/internal/domain/commands"
	"github.com/rios0rios0/statsexport/internal/domain/entities"
)

// StubIngestCommand is a stub implementation of commands.Ingest.
type StubIngestCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastPath         string
	// Submit, when set, runs against the aggregator handed to Execute.
	Submit func(aggregator *entities.StatsAggregator)
}

var _ commands.Ingest = (*StubIngestCommand)(nil)

func (s *StubIngestCommand) Execute(
	_ context.Context,
	aggregator *entities.StatsAggregator,
	path string,
) error {
	s.ExecuteCallCount++
	s.LastPath = path
	if s.Submit != nil {
		s.Submit(aggregator)
	}
	return s.ExecuteErr
}

// StubExportCommand is a stub implementation of commands.Export.
type StubExportCommand struct {
	ExecuteCallCount int
	Outcome          commands.ExportOutcome
	LastSettings     *entities.Settings
	LastReport       entities.Report
}

var _ commands.Export = (*StubExportCommand)(nil)

func (s *StubExportCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	aggregator *entities.StatsAggregator,
) commands.ExportOutcome {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastReport = aggregator.Report()
	return s.Outcome
}

// StubRenderCommand is a stub implementation of commands.Render.
type StubRenderCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastFormat       string
	Output           string
}

var _ commands.Render = (*StubRenderCommand)(nil)

func (s *StubRenderCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	_ *entities.StatsAggregator,
	format string,
	output io.Writer,
) error {
	s.ExecuteCallCount++
	s.LastFormat = format
	if s.Output != "" {
		if _, err := io.WriteString(output, s.Output); err != nil {
			return err
		}
	}
	return s.ExecuteErr
}
