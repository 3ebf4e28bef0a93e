package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/statsexport/internal/domain/commands"
	"github.com/rios0rios0/statsexport/internal/domain/entities"
)

// RenderController handles the "render" subcommand.
type RenderController struct {
	ingest commands.Ingest
	render commands.Render
}

// NewRenderController creates a new RenderController.
func NewRenderController(ingest commands.Ingest, render commands.Render) *RenderController {
	return &RenderController{ingest: ingest, render: render}
}

// GetBind returns the Cobra command metadata for the render controller.
func (it *RenderController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "render [stats-file]",
		Short: "Print the report without exporting it",
		Long: `Load the stats snapshot left by a dependency update run and print
either the mailing-list document or a Markdown summary to stdout.`,
	}
}

// Execute renders the report to stdout.
func (it *RenderController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	settings := loadSettings(cmd)
	if settings == nil {
		return
	}
	if !settings.ReportingEnabled() {
		logger.Warn("No report type configured, the rendered report will be empty")
	}

	format, _ := cmd.Flags().GetString("format")

	aggregator := entities.NewStatsAggregator(settings)
	if err := it.ingest.Execute(ctx, aggregator, statsPath(args)); err != nil {
		logger.Errorf("Ingest failed: %v", err)
		return
	}

	if err := it.render.Execute(ctx, settings, aggregator, format, cmd.OutOrStdout()); err != nil {
		logger.Errorf("Render failed: %v", err)
	}
}

// AddFlags adds the render-specific flags to the given Cobra command.
func (it *RenderController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", commands.RenderFormatMail,
		fmt.Sprintf("Output format (%s, %s)", commands.RenderFormatMail, commands.RenderFormatMarkdown),
	)
}
