package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/statsexport/internal/domain/entities"
	"github.com/rios0rios0/statsexport/internal/domain/repositories"
)

const reportContentType = "application/json"

var (
	// ErrUnparsableDestination is returned when an s3 destination has no bucket/key.
	ErrUnparsableDestination = errors.New("unparsable object storage destination")
	// ErrExportPanicked wraps a panic recovered while exporting.
	ErrExportPanicked = errors.New("export panicked")
)

// ExportStatus is the result kind of an export.
type ExportStatus string

const (
	ExportStatusDisabled ExportStatus = "disabled"
	ExportStatusExported ExportStatus = "exported"
	ExportStatusFailed   ExportStatus = "failed"
)

// ExportOutcome describes what an export did. A failed export is already
// logged as a warning; callers are free to ignore the outcome.
type ExportOutcome struct {
	Sink    string
	Status  ExportStatus
	Err     error
	Publish *PublishOutcome
}

// Export is the interface for the export command.
type Export interface {
	Execute(ctx context.Context, settings *entities.Settings, aggregator *entities.StatsAggregator) ExportOutcome
}

// ExportCommand finalizes the run report and hands it to the configured sink.
type ExportCommand struct {
	fileRepository    repositories.FileRepository
	storageRepository repositories.ObjectStorageRepository
	problemRepository repositories.ProblemRepository
	publisher         GitPublisher
	now               func() time.Time
}

// NewExportCommand creates a new ExportCommand.
func NewExportCommand(
	fileRepository repositories.FileRepository,
	storageRepository repositories.ObjectStorageRepository,
	problemRepository repositories.ProblemRepository,
	publisher GitPublisher,
) *ExportCommand {
	return &ExportCommand{
		fileRepository:    fileRepository,
		storageRepository: storageRepository,
		problemRepository: problemRepository,
		publisher:         publisher,
		now:               time.Now,
	}
}

// WithClock replaces the clock used when rendering the mailing-list document.
func (it *ExportCommand) WithClock(now func() time.Time) *ExportCommand {
	it.now = now
	return it
}

// Execute routes the problems collected during the run and exports the
// report. It never fails the run: every error ends up in the outcome.
func (it *ExportCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	aggregator *entities.StatsAggregator,
) (outcome ExportOutcome) {
	defer func() {
		if recovered := recover(); recovered != nil {
			outcome.Status = ExportStatusFailed
			outcome.Err = fmt.Errorf("%w: %v", ErrExportPanicked, recovered)
			logger.Warnf("[export] Failed to export stats to %q: %v", outcome.Sink, outcome.Err)
		}
	}()

	aggregator.Finalize(it.problemRepository.DrainProblems())

	if !settings.ReportingEnabled() {
		logger.Debug("[export] No report type configured, skipping export")
		return ExportOutcome{Status: ExportStatusDisabled}
	}
	outcome.Sink = settings.Report.Type

	publish, err := it.dispatch(ctx, settings, aggregator.Report())
	outcome.Publish = publish
	if err != nil {
		outcome.Status = ExportStatusFailed
		outcome.Err = err
		logger.Warnf("[export] Failed to export stats to %q: %v", outcome.Sink, err)
		return outcome
	}

	outcome.Status = ExportStatusExported
	return outcome
}

func (it *ExportCommand) dispatch(
	ctx context.Context,
	settings *entities.Settings,
	report entities.Report,
) (*PublishOutcome, error) {
	switch settings.Report.Type {
	case entities.ReportTypeLogging:
		return nil, it.exportToLog(report)
	case entities.ReportTypeFile:
		return nil, it.exportToFile(settings, report)
	case entities.ReportTypeMailingList:
		return it.exportToMailingList(ctx, settings, report)
	case entities.ReportTypeS3:
		return nil, it.exportToS3(ctx, settings, report)
	default:
		return nil, fmt.Errorf("%w %q", entities.ErrInvalidReportType, settings.Report.Type)
	}
}

func (it *ExportCommand) exportToLog(report entities.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	logger.WithField("report", string(data)).Info("Printing report stats")
	return nil
}

func (it *ExportCommand) exportToFile(settings *entities.Settings, report entities.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	path := settings.Report.Path
	if writeErr := it.fileRepository.WriteText(path, string(data)); writeErr != nil {
		return fmt.Errorf("failed to write report to %q: %w", path, writeErr)
	}
	logger.Infof("[export] Wrote report to %q", path)
	return nil
}

// exportToMailingList writes or logs the rendered document, then publishes
// it to git when a repository is configured, regardless of the local write.
func (it *ExportCommand) exportToMailingList(
	ctx context.Context,
	settings *entities.Settings,
	report entities.Report,
) (*PublishOutcome, error) {
	document := entities.RenderMailingList(settings.Report.MailingList, report, it.now())

	var writeErr error
	if path := settings.Report.Path; path != "" {
		if err := it.fileRepository.WriteText(path, document); err != nil {
			writeErr = fmt.Errorf("failed to write mailing-list report to %q: %w", path, err)
		} else {
			logger.Infof("[export] Wrote mailing-list report to %q", path)
		}
	} else {
		logger.WithField("report", document).Info("Mailing-list report")
	}

	if !settings.GitPublishingEnabled() {
		return nil, writeErr
	}

	publish := it.publisher.Publish(ctx, settings, document)
	return &publish, writeErr
}

func (it *ExportCommand) exportToS3(
	ctx context.Context,
	settings *entities.Settings,
	report entities.Report,
) error {
	location, ok := it.storageRepository.ParseDestination(settings.Report.Path)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnparsableDestination, settings.Report.Path)
	}

	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	client, err := it.storageRepository.Client(ctx, settings.Report.S3.Endpoint, settings.Report.S3.PathStyle)
	if err != nil {
		return fmt.Errorf("failed to create object storage client: %w", err)
	}

	if putErr := client.Put(ctx, location, data, reportContentType); putErr != nil {
		return fmt.Errorf("failed to upload report to s3://%s/%s: %w", location.Bucket, location.Key, putErr)
	}
	logger.Infof("[export] Uploaded report to s3://%s/%s", location.Bucket, location.Key)
	return nil
}
