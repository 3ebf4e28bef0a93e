package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/statsexport/internal/domain/entities"
)

const repositoryField = "repository"

// Ingest is the interface for the ingest command.
type Ingest interface {
	Execute(ctx context.Context, aggregator *entities.StatsAggregator, path string) error
}

// IngestCommand replays a run-stats snapshot into an aggregator. Problems are
// re-emitted through the logger so they are collected like live events.
type IngestCommand struct{}

// NewIngestCommand creates a new IngestCommand.
func NewIngestCommand() *IngestCommand {
	return &IngestCommand{}
}

// Execute reads the snapshot at path (JSON, or YAML for .yaml/.yml files).
func (it *IngestCommand) Execute(
	_ context.Context,
	aggregator *entities.StatsAggregator,
	path string,
) error {
	stats, err := readRunStats(path)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(stats.Repositories))
	for name := range stats.Repositories {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		repoStats := stats.Repositories[name]
		if repoStats.Branches != nil {
			aggregator.AddBranchStats(name, classifyUpgrades(repoStats.Branches))
		}
		if repoStats.PackageFiles != nil {
			aggregator.AddExtractionStats(name, repoStats.PackageFiles)
		}
		if repoStats.LibYears != nil {
			aggregator.AddLibYears(name, *repoStats.LibYears)
		}
	}

	for _, problem := range stats.Problems {
		emitProblem(problem)
	}

	logger.Infof(
		"[ingest] Loaded %d repositories and %d problems from %q",
		len(names), len(stats.Problems), path,
	)
	return nil
}

func readRunStats(path string) (*entities.RunStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stats file %q: %w", path, err)
	}

	var stats entities.RunStats
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if unmarshalErr := yaml.Unmarshal(data, &stats); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse stats file: %w", unmarshalErr)
		}
	default:
		if unmarshalErr := json.Unmarshal(data, &stats); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse stats file: %w", unmarshalErr)
		}
	}
	return &stats, nil
}

// classifyUpgrades fills missing update types from the version pair.
func classifyUpgrades(branches []entities.BranchSummary) []entities.BranchSummary {
	out := make([]entities.BranchSummary, 0, len(branches))
	for _, branch := range branches {
		classified := branch.Clone()
		for i, upgrade := range classified.Upgrades {
			if upgrade.UpdateType == "" {
				classified.Upgrades[i].UpdateType = entities.ClassifyUpdateType(upgrade.Current(), upgrade.Next())
			}
		}
		out = append(out, classified)
	}
	return out
}

// emitProblem logs the problem at warn level or above, never fatal or panic.
func emitProblem(problem entities.Problem) {
	fields := logger.Fields{}
	for key, value := range problem.Context {
		fields[key] = value
	}
	if problem.Repository != "" {
		fields[repositoryField] = problem.Repository
	}

	level, err := logger.ParseLevel(problem.Level)
	if err != nil || level > logger.WarnLevel {
		level = logger.WarnLevel
	}
	if level < logger.ErrorLevel {
		level = logger.ErrorLevel
	}
	logger.WithFields(fields).Log(level, problem.Msg)
}
