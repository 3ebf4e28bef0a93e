package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/statsexport/internal/domain/commands"
	"github.com/rios0rios0/statsexport/internal/domain/entities"
)

// ExportController handles the "export" subcommand.
type ExportController struct {
	ingest commands.Ingest
	export commands.Export
}

// NewExportController creates a new ExportController.
func NewExportController(ingest commands.Ingest, export commands.Export) *ExportController {
	return &ExportController{ingest: ingest, export: export}
}

// GetBind returns the Cobra command metadata for the export controller.
func (it *ExportController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "export [stats-file]",
		Short: "Export the stats of a run to the configured sink",
		Long: `Load the stats snapshot left by a dependency update run and export
the aggregated report to the sink selected in the configuration file:
logging, file, mailing-list (optionally published to a git repository)
or s3.

A failing export is reported as a warning and never fails the command.`,
	}
}

// Execute runs the export.
func (it *ExportController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	settings := loadSettings(cmd)
	if settings == nil {
		return
	}

	aggregator := entities.NewStatsAggregator(settings)
	if err := it.ingest.Execute(ctx, aggregator, statsPath(args)); err != nil {
		logger.Errorf("Ingest failed: %v", err)
		return
	}

	outcome := it.export.Execute(ctx, settings, aggregator)
	logger.Infof("Export finished: sink=%q status=%s", outcome.Sink, outcome.Status)
}

// AddFlags adds the export-specific flags to the given Cobra command.
func (it *ExportController) AddFlags(_ *cobra.Command) {}
