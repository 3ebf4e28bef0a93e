package entities

import (
	"strings"

	"golang.org/x/mod/semver"
)

const (
	UpdateTypeMajor = "major"
	UpdateTypeMinor = "minor"
	UpdateTypePatch = "patch"
)

// ClassifyUpdateType compares two versions and returns "major", "minor" or
// "patch". It returns an empty string when either side is not a semantic
// version or the target is not newer.
func ClassifyUpdateType(current, next string) string {
	from := canonicalVersion(current)
	to := canonicalVersion(next)
	if from == "" || to == "" || semver.Compare(to, from) <= 0 {
		return ""
	}

	switch {
	case semver.Major(from) != semver.Major(to):
		return UpdateTypeMajor
	case semver.MajorMinor(from) != semver.MajorMinor(to):
		return UpdateTypeMinor
	default:
		return UpdateTypePatch
	}
}

// canonicalVersion normalises "1.2.3", "v1.2" or "^1.2.3" into a valid
// semver string, or returns "" when that is not possible.
func canonicalVersion(raw string) string {
	trimmed := strings.TrimLeft(strings.TrimSpace(raw), "=^~")
	if trimmed == "" {
		return ""
	}
	if !strings.HasPrefix(trimmed, "v") {
		trimmed = "v" + trimmed
	}
	if !semver.IsValid(trimmed) {
		return ""
	}
	return semver.Canonical(trimmed)
}
