package entities

import (
	"sync"

	logger "github.com/sirupsen/logrus"
)

// StatsAggregator collects the statistics of one run into a Report.
// It is created at run start, read at run end and never shared between runs.
type StatsAggregator struct {
	mu        sync.Mutex
	enabled   bool
	finalized bool
	report    Report
}

// NewStatsAggregator creates an empty aggregator. Every submission is ignored
// when no report sink is configured.
func NewStatsAggregator(settings *Settings) *StatsAggregator {
	return &StatsAggregator{
		enabled: settings != nil && settings.ReportingEnabled(),
		report:  NewReport(),
	}
}

// Enabled reports whether submissions are recorded.
func (it *StatsAggregator) Enabled() bool {
	return it.enabled
}

// AddBranchStats replaces the branch summaries of a repository.
func (it *StatsAggregator) AddBranchStats(repository string, branches []BranchSummary) {
	if !it.enabled {
		return
	}

	it.mu.Lock()
	defer it.mu.Unlock()

	cloned := make([]BranchSummary, 0, len(branches))
	for _, branch := range branches {
		cloned = append(cloned, branch.Clone())
	}
	it.repository(repository).Branches = cloned
}

// AddExtractionStats replaces the extracted package files of a repository.
func (it *StatsAggregator) AddExtractionStats(repository string, packageFiles map[string][]PackageFile) {
	if !it.enabled {
		return
	}

	it.mu.Lock()
	defer it.mu.Unlock()

	cloned := make(map[string][]PackageFile, len(packageFiles))
	for manager, files := range packageFiles {
		cloned[manager] = clonePackageFiles(files)
	}
	it.repository(repository).PackageFiles = cloned
}

// AddLibYears replaces the lib-year metrics of a repository.
func (it *StatsAggregator) AddLibYears(repository string, metrics LibYearMetrics) {
	if !it.enabled {
		return
	}

	it.mu.Lock()
	defer it.mu.Unlock()

	cloned := metrics.Clone()
	it.repository(repository).LibYearsWithStatus = &cloned
}

// Finalize routes the drained problems of the run. Attributed problems land
// in their repository (created when missing) with the attribution cleared,
// the others in the root list. Only the first call has an effect.
func (it *StatsAggregator) Finalize(problems []Problem) {
	if !it.enabled {
		return
	}

	it.mu.Lock()
	defer it.mu.Unlock()

	if it.finalized {
		logger.Debug("[stats] Report already finalized, ignoring additional problems")
		return
	}
	it.finalized = true

	for _, problem := range problems {
		routed := problem.Clone()
		repository := routed.Repository
		routed.Repository = ""

		if repository == "" {
			it.report.Problems = append(it.report.Problems, routed)
			continue
		}
		entry := it.repository(repository)
		entry.Problems = append(entry.Problems, routed)
	}
}

// Report returns a snapshot independent of later submissions.
func (it *StatsAggregator) Report() Report {
	it.mu.Lock()
	defer it.mu.Unlock()

	return it.report.Clone()
}

// reset restores the empty report.
func (it *StatsAggregator) reset() {
	it.mu.Lock()
	defer it.mu.Unlock()

	it.report = NewReport()
	it.finalized = false
}

// repository returns the entry of a repository, inserting it on first use.
// Callers must hold mu.
func (it *StatsAggregator) repository(name string) *RepositoryReport {
	entry, ok := it.report.Repositories[name]
	if !ok || entry == nil {
		entry = NewRepositoryReport()
		it.report.Repositories[name] = entry
	}
	return entry
}
