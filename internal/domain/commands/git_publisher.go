package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/statsexport/internal/domain/entities"
	"github.com/rios0rios0/statsexport/internal/domain/repositories"
)

const (
	// DefaultReportFilePath is the tracked path of the document when none is configured.
	DefaultReportFilePath = "reports/renovate-stats.eml"
	// DefaultCommitMessage is used when no commit message is configured.
	DefaultCommitMessage = "chore(report): update Renovate stats report"

	remoteName      = "origin"
	cloneDirName    = "repo"
	scratchPattern  = "statsexport-mailing-list-*"
	branchRefPrefix = "refs/heads/"
)

// PublishStep names one stage of the git publish pipeline.
type PublishStep string

const (
	StepResolve  PublishStep = "resolve"
	StepScratch  PublishStep = "scratch"
	StepClone    PublishStep = "clone"
	StepLease    PublishStep = "lease"
	StepCheckout PublishStep = "checkout"
	StepWrite    PublishStep = "write"
	StepAdd      PublishStep = "add"
	StepStatus   PublishStep = "status"
	StepIdentity PublishStep = "identity"
	StepCommit   PublishStep = "commit"
	StepPush     PublishStep = "push"
)

// PublishStatus is the result kind of a publish attempt.
type PublishStatus string

const (
	PublishStatusPublished PublishStatus = "published"
	PublishStatusUnchanged PublishStatus = "unchanged"
	PublishStatusFailed    PublishStatus = "failed"
)

// ErrFilePathOutsideRepository is returned when the target file escapes the clone.
var ErrFilePathOutsideRepository = errors.New("file path points outside the repository")

// errNothingToCommit stops the pipeline when the document is already committed.
var errNothingToCommit = errors.New("nothing to commit")

// PublishError reports which pipeline step failed.
type PublishError struct {
	Step PublishStep
	Err  error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("git publish step %q failed: %v", e.Step, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// PublishOutcome describes what a publish attempt did.
type PublishOutcome struct {
	Status   PublishStatus
	Branch   string
	FilePath string
	Err      error
}

// GitPublisher commits a rendered document to a branch of a reporting repository.
type GitPublisher interface {
	Publish(ctx context.Context, settings *entities.Settings, document string) PublishOutcome
}

// GitPublisherCommand implements GitPublisher on top of the git CLI.
// Every attempt works in its own scratch directory, removed before Publish returns.
type GitPublisherCommand struct {
	commandRepository repositories.CommandRepository
	fileRepository    repositories.FileRepository
	now               func() time.Time
}

// NewGitPublisherCommand creates a new GitPublisherCommand.
func NewGitPublisherCommand(
	commandRepository repositories.CommandRepository,
	fileRepository repositories.FileRepository,
) *GitPublisherCommand {
	return &GitPublisherCommand{
		commandRepository: commandRepository,
		fileRepository:    fileRepository,
		now:               time.Now,
	}
}

// WithClock replaces the clock used to expand the branch template.
func (it *GitPublisherCommand) WithClock(now func() time.Time) *GitPublisherCommand {
	it.now = now
	return it
}

// publishContext is the state shared by the steps of one attempt.
type publishContext struct {
	remote   string
	branch   string
	filePath string
	message  string
	document string
	rawAuth  string

	scratchDir string
	repoDir    string
	leaseTip   string
}

type publishStep struct {
	name PublishStep
	run  func(ctx context.Context, pc *publishContext) error
}

// Publish runs the pipeline once. Failures are logged as warnings and
// reported in the outcome; they are never returned as errors.
func (it *GitPublisherCommand) Publish(
	ctx context.Context,
	settings *entities.Settings,
	document string,
) PublishOutcome {
	gitSettings := settings.Report.MailingList.Git
	pc := &publishContext{
		remote:   strings.TrimSpace(gitSettings.Repository),
		branch:   entities.ResolveBranchName(gitSettings.BranchTemplate, entities.DefaultMailingListBranch, it.now()),
		filePath: orDefault(gitSettings.FilePath, DefaultReportFilePath),
		message:  orDefault(gitSettings.CommitMessage, DefaultCommitMessage),
		document: document,
		rawAuth:  settings.GitAuthor,
	}
	defer it.cleanup(pc)

	err := it.runSteps(ctx, pc)
	outcome := PublishOutcome{Branch: pc.branch, FilePath: pc.filePath}
	switch {
	case err == nil:
		outcome.Status = PublishStatusPublished
		logger.Infof("[git-publisher] Published report to branch %q at %q", pc.branch, pc.filePath)
	case errors.Is(err, errNothingToCommit):
		outcome.Status = PublishStatusUnchanged
		logger.Infof("[git-publisher] Report on branch %q is unchanged, skipping commit and push", pc.branch)
	default:
		outcome.Status = PublishStatusFailed
		outcome.Err = err
		logger.Warnf("[git-publisher] Failed to publish report to branch %q: %v", pc.branch, err)
	}
	return outcome
}

func (it *GitPublisherCommand) runSteps(ctx context.Context, pc *publishContext) error {
	for _, step := range it.steps() {
		logger.Debugf("[git-publisher] Running step %q", step.name)
		if err := step.run(ctx, pc); err != nil {
			if errors.Is(err, errNothingToCommit) {
				return err
			}
			return &PublishError{Step: step.name, Err: err}
		}
	}
	return nil
}

// steps returns the pipeline in execution order; each step depends on the
// filesystem state left by the previous one.
func (it *GitPublisherCommand) steps() []publishStep {
	return []publishStep{
		{name: StepResolve, run: it.resolve},
		{name: StepScratch, run: it.scratch},
		{name: StepClone, run: it.clone},
		{name: StepLease, run: it.lease},
		{name: StepCheckout, run: it.checkout},
		{name: StepWrite, run: it.write},
		{name: StepAdd, run: it.add},
		{name: StepStatus, run: it.status},
		{name: StepIdentity, run: it.identity},
		{name: StepCommit, run: it.commit},
		{name: StepPush, run: it.push},
	}
}

func (it *GitPublisherCommand) resolve(_ context.Context, pc *publishContext) error {
	if pc.remote == "" {
		return errors.New("no git repository configured")
	}

	cleaned := filepath.Clean(filepath.FromSlash(strings.TrimSpace(pc.filePath)))
	if filepath.IsAbs(cleaned) || cleaned == "." || cleaned == ".." ||
		strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %q", ErrFilePathOutsideRepository, pc.filePath)
	}
	pc.filePath = filepath.ToSlash(cleaned)
	return nil
}

func (it *GitPublisherCommand) scratch(_ context.Context, pc *publishContext) error {
	dir, err := it.fileRepository.MakeTempDir(scratchPattern)
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	pc.scratchDir = dir
	pc.repoDir = filepath.Join(dir, cloneDirName)
	return nil
}

func (it *GitPublisherCommand) clone(ctx context.Context, pc *publishContext) error {
	_, err := it.git(ctx, pc.scratchDir, "clone", "--depth", "1", "--origin", remoteName, "--", pc.remote, pc.repoDir)
	return err
}

// lease records the remote tip of the target branch, empty when the branch
// does not exist yet. The push later refuses to overwrite anything else.
func (it *GitPublisherCommand) lease(ctx context.Context, pc *publishContext) error {
	output, err := it.git(ctx, pc.repoDir, "ls-remote", "--heads", remoteName, branchRefPrefix+pc.branch)
	if err != nil {
		return err
	}
	pc.leaseTip = parseRemoteTip(output.Stdout, branchRefPrefix+pc.branch)
	return nil
}

// checkout creates or resets the local branch, onto the remote tip when there is one.
func (it *GitPublisherCommand) checkout(ctx context.Context, pc *publishContext) error {
	if pc.leaseTip == "" {
		_, err := it.git(ctx, pc.repoDir, "checkout", "-B", pc.branch)
		return err
	}

	if _, err := it.git(ctx, pc.repoDir, "fetch", "--depth", "1", remoteName, branchRefPrefix+pc.branch); err != nil {
		return err
	}
	_, err := it.git(ctx, pc.repoDir, "checkout", "-B", pc.branch, "FETCH_HEAD")
	return err
}

// write resolves the target through the checked-out tree, so a tracked
// symlink cannot redirect the document outside the clone.
func (it *GitPublisherCommand) write(_ context.Context, pc *publishContext) error {
	target, err := it.fileRepository.ResolveWithin(pc.repoDir, pc.filePath)
	if err != nil {
		if errors.Is(err, repositories.ErrPathEscapesRoot) {
			return fmt.Errorf("%w: %w", ErrFilePathOutsideRepository, err)
		}
		return fmt.Errorf("failed to resolve %q: %w", pc.filePath, err)
	}
	if err = it.fileRepository.WriteText(target, pc.document); err != nil {
		return fmt.Errorf("failed to write %q: %w", pc.filePath, err)
	}
	return nil
}

func (it *GitPublisherCommand) add(ctx context.Context, pc *publishContext) error {
	_, err := it.git(ctx, pc.repoDir, "add", "--", pc.filePath)
	return err
}

func (it *GitPublisherCommand) status(ctx context.Context, pc *publishContext) error {
	output, err := it.git(ctx, pc.repoDir, "status", "--porcelain")
	if err != nil {
		return err
	}
	if strings.TrimSpace(output.Stdout) == "" {
		return errNothingToCommit
	}
	return nil
}

func (it *GitPublisherCommand) identity(ctx context.Context, pc *publishContext) error {
	author := entities.ResolveAuthor(pc.rawAuth)
	if _, err := it.git(ctx, pc.repoDir, "config", "--local", "user.name", author.Name); err != nil {
		return err
	}
	_, err := it.git(ctx, pc.repoDir, "config", "--local", "user.email", author.Email)
	return err
}

func (it *GitPublisherCommand) commit(ctx context.Context, pc *publishContext) error {
	_, err := it.git(ctx, pc.repoDir, "commit", "-m", pc.message)
	return err
}

func (it *GitPublisherCommand) push(ctx context.Context, pc *publishContext) error {
	ref := branchRefPrefix + pc.branch
	_, err := it.git(
		ctx, pc.repoDir,
		"push", "--force-with-lease="+ref+":"+pc.leaseTip, remoteName, "HEAD:"+ref,
	)
	return err
}

func (it *GitPublisherCommand) git(
	ctx context.Context,
	dir string,
	args ...string,
) (repositories.CommandOutput, error) {
	output, err := it.commandRepository.Run(ctx, dir, "git", args...)
	if err != nil {
		return output, fmt.Errorf("git %s: %w", args[0], err)
	}
	return output, nil
}

func (it *GitPublisherCommand) cleanup(pc *publishContext) {
	if pc.scratchDir == "" {
		return
	}
	if err := it.fileRepository.RemoveAll(pc.scratchDir); err != nil {
		logger.Warnf("[git-publisher] Failed to remove scratch directory %q: %v", pc.scratchDir, err)
	}
}

// parseRemoteTip extracts the commit of ref from `git ls-remote` output.
func parseRemoteTip(output, ref string) string {
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[1] == ref { //nolint:mnd // "<sha>\t<ref>"
			return fields[0]
		}
	}
	return ""
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
