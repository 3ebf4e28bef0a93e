package entities

// RunStats is the snapshot an agent run leaves behind: everything the
// aggregator is fed during a run, in one document.
type RunStats struct {
	Problems     []Problem                  `json:"problems"     yaml:"problems"`
	Repositories map[string]RepositoryStats `json:"repositories" yaml:"repositories"`
}

// RepositoryStats holds the raw submissions for one repository. Nil fields
// were never submitted.
type RepositoryStats struct {
	Branches     []BranchSummary          `json:"branches,omitempty"     yaml:"branches,omitempty"`
	PackageFiles map[string][]PackageFile `json:"packageFiles,omitempty" yaml:"package_files,omitempty"`
	LibYears     *LibYearMetrics          `json:"libYears,omitempty"     yaml:"lib_years,omitempty"`
}
