package entities

import (
	"fmt"
	"maps"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Report is the aggregated outcome of a single agent run.
type Report struct {
	Problems     []Problem                    `json:"problems"     yaml:"problems"`
	Repositories map[string]*RepositoryReport `json:"repositories" yaml:"repositories"`
}

// NewReport returns an empty report.
func NewReport() Report {
	return Report{
		Problems:     []Problem{},
		Repositories: map[string]*RepositoryReport{},
	}
}

// Clone returns a deep copy that shares no memory with the receiver.
func (r Report) Clone() Report {
	out := Report{
		Problems:     cloneProblems(r.Problems),
		Repositories: make(map[string]*RepositoryReport, len(r.Repositories)),
	}
	for name, repo := range r.Repositories {
		if repo == nil {
			out.Repositories[name] = nil
			continue
		}
		clone := repo.Clone()
		out.Repositories[name] = &clone
	}
	return out
}

// RepositoryReport holds the stats submitted for one repository.
type RepositoryReport struct {
	Problems           []Problem                `json:"problems"                     yaml:"problems"`
	Branches           []BranchSummary          `json:"branches"                     yaml:"branches"`
	PackageFiles       map[string][]PackageFile `json:"packageFiles"                 yaml:"package_files"`
	LibYearsWithStatus *LibYearMetrics          `json:"libYearsWithStatus,omitempty" yaml:"lib_years_with_status,omitempty"`
}

// NewRepositoryReport returns an entry with empty collections.
func NewRepositoryReport() *RepositoryReport {
	return &RepositoryReport{
		Problems:     []Problem{},
		Branches:     []BranchSummary{},
		PackageFiles: map[string][]PackageFile{},
	}
}

// Clone returns a deep copy of the repository entry.
func (r RepositoryReport) Clone() RepositoryReport {
	out := RepositoryReport{
		Problems:     cloneProblems(r.Problems),
		Branches:     make([]BranchSummary, 0, len(r.Branches)),
		PackageFiles: make(map[string][]PackageFile, len(r.PackageFiles)),
	}
	for _, branch := range r.Branches {
		out.Branches = append(out.Branches, branch.Clone())
	}
	for manager, files := range r.PackageFiles {
		out.PackageFiles[manager] = clonePackageFiles(files)
	}
	if r.LibYearsWithStatus != nil {
		libYears := r.LibYearsWithStatus.Clone()
		out.LibYearsWithStatus = &libYears
	}
	return out
}

// BranchSummary is the outcome of processing one update branch.
type BranchSummary struct {
	BranchName  string           `json:"branchName"            yaml:"branch_name"`
	Result      string           `json:"result,omitempty"      yaml:"result,omitempty"`
	PRNo        *int             `json:"prNo,omitempty"        yaml:"pr_no,omitempty"`
	PRBlockedBy string           `json:"prBlockedBy,omitempty" yaml:"pr_blocked_by,omitempty"`
	Upgrades    []UpgradeSummary `json:"upgrades"              yaml:"upgrades"`
}

// Clone returns a deep copy of the branch summary.
func (b BranchSummary) Clone() BranchSummary {
	out := b
	if b.PRNo != nil {
		prNo := *b.PRNo
		out.PRNo = &prNo
	}
	out.Upgrades = make([]UpgradeSummary, len(b.Upgrades))
	copy(out.Upgrades, b.Upgrades)
	return out
}

// UpgradeSummary describes a single dependency update inside a branch.
type UpgradeSummary struct {
	PackageName    string `json:"packageName,omitempty"    yaml:"package_name,omitempty"`
	DepName        string `json:"depName,omitempty"        yaml:"dep_name,omitempty"`
	CurrentVersion string `json:"currentVersion,omitempty" yaml:"current_version,omitempty"`
	CurrentValue   string `json:"currentValue,omitempty"   yaml:"current_value,omitempty"`
	CurrentDigest  string `json:"currentDigest,omitempty"  yaml:"current_digest,omitempty"`
	NewVersion     string `json:"newVersion,omitempty"     yaml:"new_version,omitempty"`
	NewValue       string `json:"newValue,omitempty"       yaml:"new_value,omitempty"`
	NewDigest      string `json:"newDigest,omitempty"      yaml:"new_digest,omitempty"`
	UpdateType     string `json:"updateType,omitempty"     yaml:"update_type,omitempty"`
	PackageFile    string `json:"packageFile,omitempty"    yaml:"package_file,omitempty"`
}

// Identity returns the package name, falling back to the dependency name.
func (u UpgradeSummary) Identity() string {
	return firstPresent(u.PackageName, u.DepName)
}

// Current returns the version, pinned value or digest the branch upgrades from.
func (u UpgradeSummary) Current() string {
	return firstPresent(u.CurrentVersion, u.CurrentValue, u.CurrentDigest)
}

// Next returns the version, pinned value or digest the branch upgrades to.
func (u UpgradeSummary) Next() string {
	return firstPresent(u.NewVersion, u.NewValue, u.NewDigest)
}

// PackageFile is one manifest extracted for a package manager.
type PackageFile struct {
	PackageFile string              `json:"packageFile"          yaml:"package_file"`
	Datasource  string              `json:"datasource,omitempty" yaml:"datasource,omitempty"`
	Deps        []PackageDependency `json:"deps"                 yaml:"deps"`
}

// PackageDependency is a dependency declared in a package file.
type PackageDependency struct {
	DepName        string `json:"depName"                  yaml:"dep_name"`
	PackageName    string `json:"packageName,omitempty"    yaml:"package_name,omitempty"`
	CurrentValue   string `json:"currentValue,omitempty"   yaml:"current_value,omitempty"`
	CurrentVersion string `json:"currentVersion,omitempty" yaml:"current_version,omitempty"`
	Datasource     string `json:"datasource,omitempty"     yaml:"datasource,omitempty"`
	SkipReason     string `json:"skipReason,omitempty"     yaml:"skip_reason,omitempty"`
}

// LibYearMetrics holds the lib-year debt of a repository.
type LibYearMetrics struct {
	LibYears         LibYears         `json:"libYears"         yaml:"lib_years"`
	DependencyStatus DependencyStatus `json:"dependencyStatus" yaml:"dependency_status"`
}

// Clone returns a deep copy of the metrics.
func (m LibYearMetrics) Clone() LibYearMetrics {
	out := m
	out.LibYears.Managers = maps.Clone(m.LibYears.Managers)
	return out
}

// LibYears is the accumulated age of outdated dependencies, in years.
type LibYears struct {
	Managers map[string]float64 `json:"managers" yaml:"managers"`
	Total    float64            `json:"total"    yaml:"total"`
}

// DependencyStatus counts outdated dependencies against the total.
type DependencyStatus struct {
	Outdated int `json:"outdated" yaml:"outdated"`
	Total    int `json:"total"    yaml:"total"`
}

// Problem is a warning or error event raised during the run.
// Context carries the remaining structured fields of the event; they are
// flattened next to level and msg when serialized.
type Problem struct {
	Repository string
	Level      string
	Msg        string
	Context    map[string]any
}

const (
	problemRepositoryKey = "repository"
	problemLevelKey      = "level"
	problemMsgKey        = "msg"
)

// Clone returns a deep copy of the problem.
func (p Problem) Clone() Problem {
	out := p
	if p.Context != nil {
		out.Context = cloneContext(p.Context)
	}
	return out
}

// Fields returns the flattened representation of the problem.
func (p Problem) Fields() map[string]any {
	fields := make(map[string]any, len(p.Context)+3) //nolint:mnd // level, msg, repository
	for key, value := range p.Context {
		fields[key] = value
	}
	if p.Repository != "" {
		fields[problemRepositoryKey] = p.Repository
	}
	fields[problemLevelKey] = p.Level
	fields[problemMsgKey] = p.Msg
	return fields
}

// MarshalJSON flattens the context next to the fixed fields.
func (p Problem) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Fields())
}

// UnmarshalJSON reads a flattened problem.
func (p *Problem) UnmarshalJSON(data []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("failed to decode problem: %w", err)
	}
	*p = problemFromFields(fields)
	return nil
}

// UnmarshalYAML reads a flattened problem.
func (p *Problem) UnmarshalYAML(node *yaml.Node) error {
	var fields map[string]any
	if err := node.Decode(&fields); err != nil {
		return fmt.Errorf("failed to decode problem: %w", err)
	}
	*p = problemFromFields(fields)
	return nil
}

func problemFromFields(fields map[string]any) Problem {
	problem := Problem{}
	for key, value := range fields {
		switch key {
		case problemRepositoryKey:
			problem.Repository = fmt.Sprint(value)
		case problemLevelKey:
			problem.Level = fmt.Sprint(value)
		case problemMsgKey:
			problem.Msg = fmt.Sprint(value)
		default:
			if problem.Context == nil {
				problem.Context = map[string]any{}
			}
			problem.Context[key] = value
		}
	}
	return problem
}

func cloneProblems(problems []Problem) []Problem {
	out := make([]Problem, 0, len(problems))
	for _, problem := range problems {
		out = append(out, problem.Clone())
	}
	return out
}

func clonePackageFiles(files []PackageFile) []PackageFile {
	if files == nil {
		return nil
	}
	out := make([]PackageFile, 0, len(files))
	for _, file := range files {
		clone := file
		clone.Deps = make([]PackageDependency, len(file.Deps))
		copy(clone.Deps, file.Deps)
		out = append(out, clone)
	}
	return out
}

func cloneContext(context map[string]any) map[string]any {
	out := make(map[string]any, len(context))
	for key, value := range context {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneContext(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		out := make([]string, len(typed))
		copy(out, typed)
		return out
	default:
		return value
	}
}

func firstPresent(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
