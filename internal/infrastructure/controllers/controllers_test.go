//go:build unit

package controllers_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/statsexport/internal/domain/commands"
	"github.com/rios0rios0/statsexport/internal/domain/entities"
	"github.com/rios0rios0/statsexport/internal/infrastructure/controllers"
	"github.com/rios0rios0/statsexport/test/domain/commanddoubles"
)

func newCommand(t *testing.T, config string) *cobra.Command {
	t.Helper()

	path := filepath.Join(t.TempDir(), "statsexport.yaml")
	require.NoError(t, os.WriteFile(path, []byte(config), 0o600))

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", path, "")
	cmd.Flags().Bool("verbose", false, "")
	return cmd
}

func TestExportController(t *testing.T) {
	t.Parallel()

	t.Run("should ingest the stats file and export with the loaded settings", func(t *testing.T) {
		t.Parallel()

		// given
		ingest := &commanddoubles.StubIngestCommand{
			Submit: func(aggregator *entities.StatsAggregator) {
				aggregator.AddBranchStats("org/repo", nil)
			},
		}
		export := &commanddoubles.StubExportCommand{Outcome: commands.ExportOutcome{Status: commands.ExportStatusExported}}
		controller := controllers.NewExportController(ingest, export)
		cmd := newCommand(t, "report:\n  type: logging\n")

		// when
		controller.Execute(cmd, []string{"stats.json"})

		// then
		assert.Equal(t, "stats.json", ingest.LastPath)
		assert.Equal(t, 1, export.ExecuteCallCount)
		require.NotNil(t, export.LastSettings)
		assert.Equal(t, entities.ReportTypeLogging, export.LastSettings.Report.Type)
		assert.Contains(t, export.LastReport.Repositories, "org/repo")
	})

	t.Run("should default the stats file path", func(t *testing.T) {
		t.Parallel()

		// given
		ingest := &commanddoubles.StubIngestCommand{}
		controller := controllers.NewExportController(ingest, &commanddoubles.StubExportCommand{})
		cmd := newCommand(t, "report:\n  type: logging\n")

		// when
		controller.Execute(cmd, nil)

		// then
		assert.Equal(t, "renovate-stats.json", ingest.LastPath)
	})

	t.Run("should not export when the configuration is invalid", func(t *testing.T) {
		t.Parallel()

		// given
		ingest := &commanddoubles.StubIngestCommand{}
		export := &commanddoubles.StubExportCommand{}
		controller := controllers.NewExportController(ingest, export)
		cmd := newCommand(t, "report:\n  type: file\n")

		// when
		controller.Execute(cmd, nil)

		// then
		assert.Zero(t, ingest.ExecuteCallCount)
		assert.Zero(t, export.ExecuteCallCount)
	})
}

func TestRenderController(t *testing.T) {
	t.Parallel()

	t.Run("should render to the command output with the selected format", func(t *testing.T) {
		t.Parallel()

		// given
		render := &commanddoubles.StubRenderCommand{Output: "rendered"}
		controller := controllers.NewRenderController(&commanddoubles.StubIngestCommand{}, render)
		cmd := newCommand(t, "report:\n  type: mailing-list\n")
		controller.AddFlags(cmd)
		require.NoError(t, cmd.Flags().Set("format", commands.RenderFormatMarkdown))
		var out bytes.Buffer
		cmd.SetOut(&out)

		// when
		controller.Execute(cmd, nil)

		// then
		assert.Equal(t, commands.RenderFormatMarkdown, render.LastFormat)
		assert.Equal(t, "rendered", out.String())
	})

	t.Run("should default to the mail format", func(t *testing.T) {
		t.Parallel()

		// given
		render := &commanddoubles.StubRenderCommand{}
		controller := controllers.NewRenderController(&commanddoubles.StubIngestCommand{}, render)
		cmd := newCommand(t, "report:\n  type: mailing-list\n")
		controller.AddFlags(cmd)

		// when
		controller.Execute(cmd, nil)

		// then
		assert.Equal(t, commands.RenderFormatMail, render.LastFormat)
	})
}
