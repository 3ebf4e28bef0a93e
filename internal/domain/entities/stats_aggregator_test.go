//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/statsexport/internal/domain/entities"
	"github.com/rios0rios0/statsexport/test/domain/entitybuilders"
)

func enabledSettings() *entities.Settings {
	return &entities.Settings{Report: entities.ReportSettings{Type: entities.ReportTypeLogging}}
}

func TestStatsAggregator(t *testing.T) {
	t.Parallel()

	t.Run("should ignore every submission when reporting is disabled", func(t *testing.T) {
		t.Parallel()

		// given
		aggregator := entities.NewStatsAggregator(&entities.Settings{})
		branch := entitybuilders.NewBranchSummaryBuilder().BuildBranch()

		// when
		aggregator.AddBranchStats("org/repo", []entities.BranchSummary{branch})
		aggregator.AddExtractionStats("org/repo", map[string][]entities.PackageFile{"npm": {}})
		aggregator.AddLibYears("org/repo", entities.LibYearMetrics{})
		aggregator.Finalize([]entities.Problem{{Level: "warn", Msg: "ignored"}})

		// then
		report := aggregator.Report()
		assert.False(t, aggregator.Enabled())
		assert.Empty(t, report.Repositories)
		assert.Empty(t, report.Problems)
	})

	t.Run("should keep only the last submission per kind", func(t *testing.T) {
		t.Parallel()

		// given
		aggregator := entities.NewStatsAggregator(enabledSettings())
		first := entitybuilders.NewBranchSummaryBuilder().WithBranchName("renovate/first").BuildBranch()
		second := entitybuilders.NewBranchSummaryBuilder().WithBranchName("renovate/second").BuildBranch()

		// when
		aggregator.AddBranchStats("org/repo", []entities.BranchSummary{first})
		aggregator.AddBranchStats("org/repo", []entities.BranchSummary{second})
		aggregator.AddLibYears("org/repo", entities.LibYearMetrics{LibYears: entities.LibYears{Total: 1}})
		aggregator.AddLibYears("org/repo", entities.LibYearMetrics{LibYears: entities.LibYears{Total: 2}})

		// then
		repo := aggregator.Report().Repositories["org/repo"]
		require.NotNil(t, repo)
		require.Len(t, repo.Branches, 1)
		assert.Equal(t, "renovate/second", repo.Branches[0].BranchName)
		require.NotNil(t, repo.LibYearsWithStatus)
		assert.InDelta(t, 2.0, repo.LibYearsWithStatus.LibYears.Total, 0.0001)
	})

	t.Run("should not overwrite other kinds when one kind is submitted", func(t *testing.T) {
		t.Parallel()

		// given
		aggregator := entities.NewStatsAggregator(enabledSettings())
		files := map[string][]entities.PackageFile{"npm": {{PackageFile: "package.json"}}}

		// when
		aggregator.AddExtractionStats("org/repo", files)
		aggregator.AddBranchStats("org/repo", nil)

		// then
		repo := aggregator.Report().Repositories["org/repo"]
		require.NotNil(t, repo)
		assert.Len(t, repo.PackageFiles["npm"], 1)
		assert.Empty(t, repo.Branches)
		assert.Nil(t, repo.LibYearsWithStatus)
	})

	t.Run("should route attributed problems to their repository and clear the attribution", func(t *testing.T) {
		t.Parallel()

		// given
		aggregator := entities.NewStatsAggregator(enabledSettings())
		aggregator.AddBranchStats("org/known", nil)
		problems := []entities.Problem{
			{Repository: "org/known", Level: "warn", Msg: "lookup failed"},
			{Repository: "org/unknown", Level: "error", Msg: "clone failed"},
			{Level: "warn", Msg: "global"},
		}

		// when
		aggregator.Finalize(problems)

		// then
		report := aggregator.Report()
		require.Len(t, report.Problems, 1)
		assert.Equal(t, "global", report.Problems[0].Msg)
		require.Contains(t, report.Repositories, "org/unknown")
		require.Len(t, report.Repositories["org/known"].Problems, 1)
		assert.Empty(t, report.Repositories["org/known"].Problems[0].Repository)
		require.Len(t, report.Repositories["org/unknown"].Problems, 1)
		assert.Empty(t, report.Repositories["org/unknown"].Problems[0].Repository)
		assert.Empty(t, report.Repositories["org/unknown"].Branches)
	})

	t.Run("should preserve the problem count across root and repository lists", func(t *testing.T) {
		t.Parallel()

		// given
		aggregator := entities.NewStatsAggregator(enabledSettings())
		problems := []entities.Problem{
			{Repository: "a", Level: "warn", Msg: "1"},
			{Repository: "a", Level: "warn", Msg: "2"},
			{Repository: "b", Level: "warn", Msg: "3"},
			{Level: "error", Msg: "4"},
		}

		// when
		aggregator.Finalize(problems)

		// then
		report := aggregator.Report()
		total := len(report.Problems)
		for _, repo := range report.Repositories {
			total += len(repo.Problems)
		}
		assert.Equal(t, len(problems), total)
	})

	t.Run("should apply only the first finalize call", func(t *testing.T) {
		t.Parallel()

		// given
		aggregator := entities.NewStatsAggregator(enabledSettings())
		aggregator.Finalize([]entities.Problem{{Level: "warn", Msg: "first"}})

		// when
		aggregator.Finalize([]entities.Problem{{Level: "warn", Msg: "second"}})

		// then
		report := aggregator.Report()
		require.Len(t, report.Problems, 1)
		assert.Equal(t, "first", report.Problems[0].Msg)
	})

	t.Run("should return snapshots that do not change with later submissions", func(t *testing.T) {
		t.Parallel()

		// given
		aggregator := entities.NewStatsAggregator(enabledSettings())
		upgrade := entitybuilders.NewUpgradeSummaryBuilder().BuildUpgrade()
		branch := entitybuilders.NewBranchSummaryBuilder().WithUpgrade(upgrade).BuildBranch()
		aggregator.AddBranchStats("org/repo", []entities.BranchSummary{branch})
		snapshot := aggregator.Report()

		// when
		snapshot.Repositories["org/repo"].Branches[0].Upgrades[0].NewVersion = "mutated"
		aggregator.AddBranchStats("org/other", nil)

		// then
		again := aggregator.Report()
		assert.NotContains(t, snapshot.Repositories, "org/other")
		assert.Equal(t, "2.0.0", again.Repositories["org/repo"].Branches[0].Upgrades[0].NewVersion)
	})

	t.Run("should not alias the submitted branches", func(t *testing.T) {
		t.Parallel()

		// given
		aggregator := entities.NewStatsAggregator(enabledSettings())
		branches := []entities.BranchSummary{entitybuilders.NewBranchSummaryBuilder().WithPRNo(7).BuildBranch()}

		// when
		aggregator.AddBranchStats("org/repo", branches)
		*branches[0].PRNo = 99

		// then
		stored := aggregator.Report().Repositories["org/repo"].Branches[0]
		require.NotNil(t, stored.PRNo)
		assert.Equal(t, 7, *stored.PRNo)
	})

	t.Run("should restore the empty report on reset", func(t *testing.T) {
		t.Parallel()

		// given
		aggregator := entities.NewStatsAggregator(enabledSettings())
		aggregator.AddBranchStats("org/repo", nil)
		aggregator.Finalize([]entities.Problem{{Level: "warn", Msg: "before"}})

		// when
		aggregator.ResetForTest()
		aggregator.Finalize([]entities.Problem{{Level: "warn", Msg: "after"}})

		// then
		report := aggregator.Report()
		assert.Empty(t, report.Repositories)
		require.Len(t, report.Problems, 1)
		assert.Equal(t, "after", report.Problems[0].Msg)
	})
}
