package entities

import (
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasttemplate"
)

const (
	// DefaultMailingListBranch is used when no usable branch template is configured.
	DefaultMailingListBranch = "renovate/mailing-list"

	branchTemplateStart = "{{"
	branchTemplateEnd   = "}}"

	branchTokenDate      = "date"
	branchTokenTimestamp = "timestamp"
	branchTokenEpoch     = "epoch"

	branchDateLayout      = "2006-01-02"
	branchTimestampLayout = "20060102-150405"
)

var (
	refIllegalPattern  = regexp.MustCompile(`[\s\[\]?:\\^~*]+`)
	refControlPattern  = regexp.MustCompile(`[\x00-\x1f\x7f]+`)
	refDotsPattern     = regexp.MustCompile(`\.{2,}`)
	refHyphensPattern  = regexp.MustCompile(`-{2,}`)
	refReflogSeqPrefix = "@{"
)

// ResolveBranchName expands the run-time tokens of template and returns a
// valid git ref name. Recognised tokens are {{date}} (YYYY-MM-DD),
// {{timestamp}} (YYYYMMDD-HHMMSS) and {{epoch}} (milliseconds), all in UTC.
// Unknown tokens are kept as written. The function never fails: a blank
// template or a blank result yields the sanitized fallback.
func ResolveBranchName(template, fallback string, now time.Time) string {
	if strings.TrimSpace(template) == "" {
		return sanitizedOrDefault(fallback)
	}

	utc := now.UTC()
	tokens := map[string]string{
		branchTokenDate:      utc.Format(branchDateLayout),
		branchTokenTimestamp: utc.Format(branchTimestampLayout),
		branchTokenEpoch:     strconv.FormatInt(utc.UnixMilli(), 10),
	}

	expanded, err := fasttemplate.ExecuteFuncStringWithErr(
		template, branchTemplateStart, branchTemplateEnd,
		func(w io.Writer, tag string) (int, error) {
			if value, ok := tokens[strings.TrimSpace(tag)]; ok {
				return w.Write([]byte(value))
			}
			return w.Write([]byte(branchTemplateStart + tag + branchTemplateEnd))
		},
	)
	if err != nil || strings.TrimSpace(expanded) == "" {
		return sanitizedOrDefault(fallback)
	}

	if sanitized := SanitizeBranchName(expanded); sanitized != "" {
		return sanitized
	}
	return sanitizedOrDefault(fallback)
}

// SanitizeBranchName rewrites name into a string acceptable to
// git check-ref-format. It may return an empty string.
func SanitizeBranchName(name string) string {
	cleaned := refControlPattern.ReplaceAllString(name, "")
	cleaned = refIllegalPattern.ReplaceAllString(cleaned, "-")
	cleaned = strings.ReplaceAll(cleaned, refReflogSeqPrefix, "-")
	cleaned = refDotsPattern.ReplaceAllString(cleaned, ".")

	segments := strings.Split(cleaned, "/")
	kept := make([]string, 0, len(segments))
	for _, segment := range segments {
		segment = strings.Trim(refHyphensPattern.ReplaceAllString(segment, "-"), ".-")
		for strings.HasSuffix(segment, ".lock") {
			segment = strings.Trim(strings.TrimSuffix(segment, ".lock"), ".-")
		}
		if segment == "" {
			continue
		}
		kept = append(kept, segment)
	}

	cleaned = strings.Join(kept, "/")
	if cleaned == "@" {
		return ""
	}
	return cleaned
}

func sanitizedOrDefault(fallback string) string {
	if sanitized := SanitizeBranchName(fallback); sanitized != "" {
		return sanitized
	}
	return DefaultMailingListBranch
}
