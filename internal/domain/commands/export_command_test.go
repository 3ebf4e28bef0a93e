//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	logger "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/statsexport/internal/domain/commands"
	"github.com/rios0rios0/statsexport/internal/domain/entities"
	"github.com/rios0rios0/statsexport/internal/domain/repositories"
	"github.com/rios0rios0/statsexport/test/domain/commanddoubles"
	"github.com/rios0rios0/statsexport/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/statsexport/test/infrastructure/repositorydoubles"
)

type exportFixture struct {
	files     *doubles.SpyFileRepository
	storage   *doubles.SpyObjectStorageRepository
	problems  *doubles.StubProblemRepository
	publisher *commanddoubles.SpyGitPublisher
	command   *commands.ExportCommand
}

func newExportFixture() *exportFixture {
	fixture := &exportFixture{
		files:     &doubles.SpyFileRepository{},
		storage:   &doubles.SpyObjectStorageRepository{},
		problems:  &doubles.StubProblemRepository{},
		publisher: &commanddoubles.SpyGitPublisher{Outcome: commands.PublishOutcome{Status: commands.PublishStatusPublished}},
	}
	fixture.command = commands.NewExportCommand(
		fixture.files, fixture.storage, fixture.problems, fixture.publisher,
	).WithClock(func() time.Time { return publishTime })
	return fixture
}

func settingsFor(reportType, path string) *entities.Settings {
	return &entities.Settings{Report: entities.ReportSettings{Type: reportType, Path: path}}
}

func populatedAggregator(settings *entities.Settings) *entities.StatsAggregator {
	aggregator := entities.NewStatsAggregator(settings)
	aggregator.AddBranchStats("org/repo", []entities.BranchSummary{
		entitybuilders.NewBranchSummaryBuilder().
			WithUpgrade(entitybuilders.NewUpgradeSummaryBuilder().BuildUpgrade()).
			BuildBranch(),
	})
	return aggregator
}

//nolint:paralleltest // swaps the global logrus hooks
func TestExportCommandLoggingSink(t *testing.T) {
	t.Run("should log the serialized report contents", func(t *testing.T) {
		// given
		previous := logger.StandardLogger().ReplaceHooks(make(logger.LevelHooks))
		t.Cleanup(func() { logger.StandardLogger().ReplaceHooks(previous) })
		hook := logtest.NewGlobal()

		fixture := newExportFixture()
		settings := settingsFor(entities.ReportTypeLogging, "")
		aggregator := entities.NewStatsAggregator(settings)
		aggregator.AddBranchStats("org/repo", []entities.BranchSummary{
			entitybuilders.NewBranchSummaryBuilder().
				WithBranchName("renovate/foo").
				WithUpgrade(entitybuilders.NewUpgradeSummaryBuilder().BuildUpgrade()).
				BuildBranch(),
		})

		// when
		outcome := fixture.command.Execute(context.Background(), settings, aggregator)

		// then
		require.NoError(t, outcome.Err)
		var logged string
		for _, entry := range hook.AllEntries() {
			if entry.Message == "Printing report stats" {
				value, ok := entry.Data["report"].(string)
				require.True(t, ok, "report field should be a serialized string")
				logged = value
			}
		}
		require.NotEmpty(t, logged)
		assert.NotContains(t, logged, "0xc")

		var report entities.Report
		require.NoError(t, json.Unmarshal([]byte(logged), &report))
		require.Contains(t, report.Repositories, "org/repo")
		require.Len(t, report.Repositories["org/repo"].Branches, 1)
		assert.Equal(t, "renovate/foo", report.Repositories["org/repo"].Branches[0].BranchName)
	})
}

func TestExportCommand(t *testing.T) {
	t.Parallel()

	t.Run("should do nothing when reporting is disabled", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newExportFixture()
		settings := &entities.Settings{}

		// when
		outcome := fixture.command.Execute(context.Background(), settings, populatedAggregator(settings))

		// then
		assert.Equal(t, commands.ExportStatusDisabled, outcome.Status)
		assert.Empty(t, fixture.files.Writes)
		assert.Empty(t, fixture.storage.ParsedInputs)
		assert.Empty(t, fixture.publisher.Documents)
	})

	t.Run("should log the report for the logging sink", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newExportFixture()
		settings := settingsFor(entities.ReportTypeLogging, "")

		// when
		outcome := fixture.command.Execute(context.Background(), settings, populatedAggregator(settings))

		// then
		assert.Equal(t, commands.ExportStatusExported, outcome.Status)
		assert.Equal(t, entities.ReportTypeLogging, outcome.Sink)
		assert.Empty(t, fixture.files.Writes)
	})

	t.Run("should write the serialized report for the file sink", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newExportFixture()
		fixture.problems.Problems = []entities.Problem{
			{Repository: "org/repo", Level: "warn", Msg: "lookup failed"},
			{Level: "error", Msg: "global"},
		}
		settings := settingsFor(entities.ReportTypeFile, "out/report.json")

		// when
		outcome := fixture.command.Execute(context.Background(), settings, populatedAggregator(settings))

		// then
		require.NoError(t, outcome.Err)
		assert.Equal(t, commands.ExportStatusExported, outcome.Status)
		require.Contains(t, fixture.files.Writes, "out/report.json")

		var written entities.Report
		require.NoError(t, json.Unmarshal([]byte(fixture.files.Writes["out/report.json"]), &written))
		require.Len(t, written.Problems, 1)
		assert.Equal(t, "global", written.Problems[0].Msg)
		require.Len(t, written.Repositories["org/repo"].Problems, 1)
		assert.Equal(t, "lookup failed", written.Repositories["org/repo"].Problems[0].Msg)
		assert.Len(t, written.Repositories["org/repo"].Branches, 1)
		assert.Equal(t, 1, fixture.problems.DrainCount)
	})

	t.Run("should report a failed outcome when the file cannot be written", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newExportFixture()
		fixture.files.WriteErr = errors.New("permission denied")
		settings := settingsFor(entities.ReportTypeFile, "out/report.json")

		// when
		outcome := fixture.command.Execute(context.Background(), settings, populatedAggregator(settings))

		// then
		assert.Equal(t, commands.ExportStatusFailed, outcome.Status)
		require.ErrorIs(t, outcome.Err, fixture.files.WriteErr)
	})

	t.Run("should upload the report for the s3 sink", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newExportFixture()
		fixture.storage.ParseOK = true
		fixture.storage.Location = repositories.ObjectLocation{Bucket: "bucket", Key: "stats/report.json"}
		settings := settingsFor(entities.ReportTypeS3, "s3://bucket/stats/report.json")
		settings.Report.S3 = entities.S3Settings{Endpoint: "http://localhost:9000", PathStyle: true}

		// when
		outcome := fixture.command.Execute(context.Background(), settings, populatedAggregator(settings))

		// then
		require.NoError(t, outcome.Err)
		assert.Equal(t, commands.ExportStatusExported, outcome.Status)
		assert.Equal(t, []doubles.ClientCall{{Endpoint: "http://localhost:9000", PathStyle: true}}, fixture.storage.ClientCalls)
		require.Len(t, fixture.storage.StorageClient.Puts, 1)
		put := fixture.storage.StorageClient.Puts[0]
		assert.Equal(t, fixture.storage.Location, put.Location)
		assert.Equal(t, "application/json", put.ContentType)
		assert.Contains(t, string(put.Body), `"org/repo"`)
	})

	t.Run("should perform zero uploads when the s3 destination cannot be parsed", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newExportFixture()
		settings := settingsFor(entities.ReportTypeS3, "not-a-url")

		// when
		outcome := fixture.command.Execute(context.Background(), settings, populatedAggregator(settings))

		// then
		assert.Equal(t, commands.ExportStatusFailed, outcome.Status)
		require.ErrorIs(t, outcome.Err, commands.ErrUnparsableDestination)
		assert.Empty(t, fixture.storage.ClientCalls)
		assert.Nil(t, fixture.storage.StorageClient)
	})

	t.Run("should report a failed outcome when the upload fails", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newExportFixture()
		fixture.storage.ParseOK = true
		fixture.storage.Location = repositories.ObjectLocation{Bucket: "bucket", Key: "report.json"}
		fixture.storage.StorageClient = &doubles.SpyObjectStorageClient{PutErr: errors.New("access denied")}
		settings := settingsFor(entities.ReportTypeS3, "s3://bucket/report.json")

		// when
		outcome := fixture.command.Execute(context.Background(), settings, populatedAggregator(settings))

		// then
		assert.Equal(t, commands.ExportStatusFailed, outcome.Status)
		require.ErrorIs(t, outcome.Err, fixture.storage.StorageClient.PutErr)
	})

	t.Run("should write the mailing-list document and skip git when no repository is set", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newExportFixture()
		settings := settingsFor(entities.ReportTypeMailingList, "out/report.eml")

		// when
		outcome := fixture.command.Execute(context.Background(), settings, populatedAggregator(settings))

		// then
		require.NoError(t, outcome.Err)
		assert.Equal(t, commands.ExportStatusExported, outcome.Status)
		assert.Nil(t, outcome.Publish)
		assert.Contains(t, fixture.files.Writes["out/report.eml"], "Repository: org/repo\n")
		assert.Contains(t, fixture.files.Writes["out/report.eml"], "Date: Sun, 08 Feb 2026 00:00:00 GMT\n")
		assert.Empty(t, fixture.publisher.Documents)
	})

	t.Run("should publish the same mailing-list document to git", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newExportFixture()
		settings := settingsFor(entities.ReportTypeMailingList, "out/report.eml")
		settings.Report.MailingList.Git.Repository = remoteURL

		// when
		outcome := fixture.command.Execute(context.Background(), settings, populatedAggregator(settings))

		// then
		require.NoError(t, outcome.Err)
		require.NotNil(t, outcome.Publish)
		assert.Equal(t, commands.PublishStatusPublished, outcome.Publish.Status)
		require.Len(t, fixture.publisher.Documents, 1)
		assert.Equal(t, fixture.files.Writes["out/report.eml"], fixture.publisher.Documents[0])
	})

	t.Run("should still publish when the local mailing-list write fails", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newExportFixture()
		fixture.files.WriteErr = errors.New("read-only")
		settings := settingsFor(entities.ReportTypeMailingList, "out/report.eml")
		settings.Report.MailingList.Git.Repository = remoteURL

		// when
		outcome := fixture.command.Execute(context.Background(), settings, populatedAggregator(settings))

		// then
		assert.Equal(t, commands.ExportStatusFailed, outcome.Status)
		require.ErrorIs(t, outcome.Err, fixture.files.WriteErr)
		require.NotNil(t, outcome.Publish)
		assert.Len(t, fixture.publisher.Documents, 1)
	})

	t.Run("should keep the export successful when publishing fails", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newExportFixture()
		fixture.publisher.Outcome = commands.PublishOutcome{
			Status: commands.PublishStatusFailed,
			Err:    &commands.PublishError{Step: commands.StepPush, Err: errors.New("rejected")},
		}
		settings := settingsFor(entities.ReportTypeMailingList, "")
		settings.Report.MailingList.Git.Repository = remoteURL

		// when
		outcome := fixture.command.Execute(context.Background(), settings, populatedAggregator(settings))

		// then
		assert.Equal(t, commands.ExportStatusExported, outcome.Status)
		require.NotNil(t, outcome.Publish)
		assert.Equal(t, commands.PublishStatusFailed, outcome.Publish.Status)
		assert.Empty(t, fixture.files.Writes)
	})

	t.Run("should report an unknown sink as failed", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newExportFixture()
		settings := settingsFor("carrier-pigeon", "")

		// when
		outcome := fixture.command.Execute(context.Background(), settings, populatedAggregator(settings))

		// then
		assert.Equal(t, commands.ExportStatusFailed, outcome.Status)
		require.ErrorIs(t, outcome.Err, entities.ErrInvalidReportType)
	})

	t.Run("should recover from a panicking sink", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newExportFixture()
		settings := settingsFor(entities.ReportTypeS3, "s3://bucket/report.json")
		command := commands.NewExportCommand(
			fixture.files, panickingStorage{}, fixture.problems, fixture.publisher,
		)

		// when
		outcome := command.Execute(context.Background(), settings, populatedAggregator(settings))

		// then
		assert.Equal(t, commands.ExportStatusFailed, outcome.Status)
		require.ErrorIs(t, outcome.Err, commands.ErrExportPanicked)
		assert.Equal(t, entities.ReportTypeS3, outcome.Sink)
	})
}

type panickingStorage struct{}

func (panickingStorage) ParseDestination(string) (repositories.ObjectLocation, bool) {
	panic("unexpected destination")
}

func (panickingStorage) Client(context.Context, string, bool) (repositories.ObjectStorageClient, error) {
	return nil, nil
}
