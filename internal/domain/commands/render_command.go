package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rios0rios0/statsexport/internal/domain/entities"
	"github.com/rios0rios0/statsexport/internal/domain/repositories"
)

const (
	RenderFormatMail     = "mail"
	RenderFormatMarkdown = "markdown"
)

// Render is the interface for the render command.
type Render interface {
	Execute(
		ctx context.Context,
		settings *entities.Settings,
		aggregator *entities.StatsAggregator,
		format string,
		output io.Writer,
	) error
}

// RenderCommand writes the finalized report to output without publishing it.
type RenderCommand struct {
	problemRepository repositories.ProblemRepository
	now               func() time.Time
}

// NewRenderCommand creates a new RenderCommand.
func NewRenderCommand(problemRepository repositories.ProblemRepository) *RenderCommand {
	return &RenderCommand{problemRepository: problemRepository, now: time.Now}
}

// WithClock replaces the clock used for document timestamps.
func (it *RenderCommand) WithClock(now func() time.Time) *RenderCommand {
	it.now = now
	return it
}

// Execute renders the report as a mailing-list document or a Markdown summary.
func (it *RenderCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	aggregator *entities.StatsAggregator,
	format string,
	output io.Writer,
) error {
	aggregator.Finalize(it.problemRepository.DrainProblems())
	report := aggregator.Report()

	switch format {
	case "", RenderFormatMail:
		document := entities.RenderMailingList(settings.Report.MailingList, report, it.now())
		if _, err := io.WriteString(output, document); err != nil {
			return fmt.Errorf("failed to write document: %w", err)
		}
		return nil
	case RenderFormatMarkdown:
		if err := entities.WriteMarkdownSummary(output, report, it.now()); err != nil {
			return fmt.Errorf("failed to write markdown summary: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected %s or %s)", format, RenderFormatMail, RenderFormatMarkdown)
	}
}
