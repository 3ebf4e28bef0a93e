//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/statsexport/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// BranchSummaryBuilder helps create test branch summaries with a fluent interface.
type BranchSummaryBuilder struct {
	*testkit.BaseBuilder
	branchName  string
	result      string
	prNo        *int
	prBlockedBy string
	upgrades    []entities.UpgradeSummary
}

// NewBranchSummaryBuilder creates a new branch builder with sensible defaults.
func NewBranchSummaryBuilder() *BranchSummaryBuilder {
	return &BranchSummaryBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		branchName:  "renovate/test-package-2.x",
		result:      "done",
	}
}

// WithBranchName sets the branch name.
func (b *BranchSummaryBuilder) WithBranchName(name string) *BranchSummaryBuilder {
	b.branchName = name
	return b
}

// WithResult sets the processing result.
func (b *BranchSummaryBuilder) WithResult(result string) *BranchSummaryBuilder {
	b.result = result
	return b
}

// WithPRNo sets the pull request number.
func (b *BranchSummaryBuilder) WithPRNo(number int) *BranchSummaryBuilder {
	b.prNo = &number
	return b
}

// WithPRBlockedBy sets the reason the pull request is blocked.
func (b *BranchSummaryBuilder) WithPRBlockedBy(reason string) *BranchSummaryBuilder {
	b.prBlockedBy = reason
	return b
}

// WithUpgrade appends an upgrade.
func (b *BranchSummaryBuilder) WithUpgrade(upgrade entities.UpgradeSummary) *BranchSummaryBuilder {
	b.upgrades = append(b.upgrades, upgrade)
	return b
}

// Build creates the branch summary (satisfies testkit.Builder interface).
func (b *BranchSummaryBuilder) Build() interface{} {
	return b.BuildBranch()
}

// BuildBranch creates the branch summary with a concrete return type.
func (b *BranchSummaryBuilder) BuildBranch() entities.BranchSummary {
	branch := entities.BranchSummary{
		BranchName:  b.branchName,
		Result:      b.result,
		PRBlockedBy: b.prBlockedBy,
		Upgrades:    append([]entities.UpgradeSummary{}, b.upgrades...),
	}
	if b.prNo != nil {
		prNo := *b.prNo
		branch.PRNo = &prNo
	}
	return branch
}

// Reset clears the builder state, allowing it to be reused.
func (b *BranchSummaryBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.branchName = "renovate/test-package-2.x"
	b.result = "done"
	b.prNo = nil
	b.prBlockedBy = ""
	b.upgrades = nil
	return b
}

// Clone creates a deep copy of the BranchSummaryBuilder.
func (b *BranchSummaryBuilder) Clone() testkit.Builder {
	clone := &BranchSummaryBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		branchName:  b.branchName,
		result:      b.result,
		prBlockedBy: b.prBlockedBy,
		upgrades:    append([]entities.UpgradeSummary{}, b.upgrades...),
	}
	if b.prNo != nil {
		prNo := *b.prNo
		clone.prNo = &prNo
	}
	return clone
}
