//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/statsexport/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// UpgradeSummaryBuilder helps create test upgrades with a fluent interface.
type UpgradeSummaryBuilder struct {
	*testkit.BaseBuilder
	packageName    string
	depName        string
	currentVersion string
	currentValue   string
	currentDigest  string
	newVersion     string
	newValue       string
	newDigest      string
	updateType     string
	packageFile    string
}

// NewUpgradeSummaryBuilder creates a new upgrade builder with sensible defaults.
func NewUpgradeSummaryBuilder() *UpgradeSummaryBuilder {
	b := &UpgradeSummaryBuilder{BaseBuilder: testkit.NewBaseBuilder()}
	b.defaults()
	return b
}

func (b *UpgradeSummaryBuilder) defaults() {
	b.packageName = "test-package"
	b.depName = ""
	b.currentVersion = "1.0.0"
	b.currentValue = ""
	b.currentDigest = ""
	b.newVersion = "2.0.0"
	b.newValue = ""
	b.newDigest = ""
	b.updateType = "major"
	b.packageFile = "package.json"
}

// WithPackageName sets the package name.
func (b *UpgradeSummaryBuilder) WithPackageName(name string) *UpgradeSummaryBuilder {
	b.packageName = name
	return b
}

// WithDepName sets the dependency name.
func (b *UpgradeSummaryBuilder) WithDepName(name string) *UpgradeSummaryBuilder {
	b.depName = name
	return b
}

// WithCurrentVersion sets the version upgraded from.
func (b *UpgradeSummaryBuilder) WithCurrentVersion(version string) *UpgradeSummaryBuilder {
	b.currentVersion = version
	return b
}

// WithCurrentValue sets the pinned value upgraded from.
func (b *UpgradeSummaryBuilder) WithCurrentValue(value string) *UpgradeSummaryBuilder {
	b.currentValue = value
	return b
}

// WithCurrentDigest sets the digest upgraded from.
func (b *UpgradeSummaryBuilder) WithCurrentDigest(digest string) *UpgradeSummaryBuilder {
	b.currentDigest = digest
	return b
}

// WithNewVersion sets the version upgraded to.
func (b *UpgradeSummaryBuilder) WithNewVersion(version string) *UpgradeSummaryBuilder {
	b.newVersion = version
	return b
}

// WithNewValue sets the pinned value upgraded to.
func (b *UpgradeSummaryBuilder) WithNewValue(value string) *UpgradeSummaryBuilder {
	b.newValue = value
	return b
}

// WithNewDigest sets the digest upgraded to.
func (b *UpgradeSummaryBuilder) WithNewDigest(digest string) *UpgradeSummaryBuilder {
	b.newDigest = digest
	return b
}

// WithUpdateType sets the update type.
func (b *UpgradeSummaryBuilder) WithUpdateType(updateType string) *UpgradeSummaryBuilder {
	b.updateType = updateType
	return b
}

// WithPackageFile sets the package file.
func (b *UpgradeSummaryBuilder) WithPackageFile(path string) *UpgradeSummaryBuilder {
	b.packageFile = path
	return b
}

// Build creates the upgrade (satisfies testkit.Builder interface).
func (b *UpgradeSummaryBuilder) Build() interface{} {
	return b.BuildUpgrade()
}

// BuildUpgrade creates the upgrade with a concrete return type.
func (b *UpgradeSummaryBuilder) BuildUpgrade() entities.UpgradeSummary {
	return entities.UpgradeSummary{
		PackageName:    b.packageName,
		DepName:        b.depName,
		CurrentVersion: b.currentVersion,
		CurrentValue:   b.currentValue,
		CurrentDigest:  b.currentDigest,
		NewVersion:     b.newVersion,
		NewValue:       b.newValue,
		NewDigest:      b.newDigest,
		UpdateType:     b.updateType,
		PackageFile:    b.packageFile,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *UpgradeSummaryBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.defaults()
	return b
}

// Clone creates a deep copy of the UpgradeSummaryBuilder.
func (b *UpgradeSummaryBuilder) Clone() testkit.Builder {
	clone := *b
	clone.BaseBuilder = b.BaseBuilder.Clone().(*testkit.BaseBuilder)
	return &clone
}
