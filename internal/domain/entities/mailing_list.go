package entities

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	undisclosedRecipients = "undisclosed-recipients:;"
	reportTitle           = "Renovate Stats Report"
	noUpdatesLine         = "- No updates"
	noUpgradesLine        = "  - No upgrades"
	unknownName           = "unknown"
	unknownValue          = "?"

	mailDateLayout      = "Mon, 02 Jan 2006 15:04:05 GMT"
	generatedDateLayout = "2006-01-02T15:04:05.000Z"
)

// RenderMailingList turns a report into a plain-text mail document: a
// header block, one blank line and the body. Repositories are listed in
// lexicographic order and the output depends only on the arguments.
func RenderMailingList(settings MailingListSettings, report Report, now time.Time) string {
	utc := now.UTC()

	var sb strings.Builder
	writeMailHeaders(&sb, settings, report, utc)
	sb.WriteString("\n")
	writeMailBody(&sb, report, utc)

	return strings.TrimRight(sb.String(), " \t\r\n") + "\n"
}

// MailingListSubject returns the configured subject or a generated summary.
func MailingListSubject(settings MailingListSettings, report Report) string {
	if subject := strings.TrimSpace(settings.Subject); subject != "" {
		return subject
	}
	return fmt.Sprintf("Renovate stats report: %d repositories", len(report.Repositories))
}

func writeMailHeaders(sb *strings.Builder, settings MailingListSettings, report Report, now time.Time) {
	from := strings.TrimSpace(settings.From)
	if from == "" {
		from = DefaultAuthor().String()
	}

	to := undisclosedRecipients
	if recipients := nonBlank(settings.To); len(recipients) > 0 {
		to = strings.Join(recipients, ", ")
	}

	writeHeader(sb, "From", from)
	writeHeader(sb, "To", to)
	if cc := nonBlank(settings.Cc); len(cc) > 0 {
		writeHeader(sb, "Cc", strings.Join(cc, ", "))
	}
	writeHeader(sb, "Subject", MailingListSubject(settings, report))
	writeHeader(sb, "Date", now.Format(mailDateLayout))
	writeHeader(sb, "MIME-Version", "1.0")
	writeHeader(sb, "Content-Type", "text/plain; charset=UTF-8")
	writeHeader(sb, "Content-Transfer-Encoding", "8bit")
}

func writeMailBody(sb *strings.Builder, report Report, now time.Time) {
	sb.WriteString(reportTitle + "\n")
	sb.WriteString("Generated at: " + now.Format(generatedDateLayout) + "\n")
	sb.WriteString("Repositories: " + strconv.Itoa(len(report.Repositories)) + "\n")
	sb.WriteString("Global problems: " + strconv.Itoa(len(report.Problems)) + "\n")
	sb.WriteString("\n")

	for _, name := range sortedRepositoryNames(report) {
		repo := report.Repositories[name]
		if repo == nil {
			repo = NewRepositoryReport()
		}

		sb.WriteString("Repository: " + name + "\n")
		sb.WriteString("Problems: " + strconv.Itoa(len(repo.Problems)) + "\n")
		sb.WriteString("Branches: " + strconv.Itoa(len(repo.Branches)) + "\n")

		if len(repo.Branches) == 0 {
			sb.WriteString(noUpdatesLine + "\n")
		}
		for _, branch := range repo.Branches {
			sb.WriteString(branchLine(branch) + "\n")
			if len(branch.Upgrades) == 0 {
				sb.WriteString(noUpgradesLine + "\n")
			}
			for _, upgrade := range branch.Upgrades {
				sb.WriteString(upgradeLine(upgrade) + "\n")
			}
		}
		sb.WriteString("\n")
	}
}

// branchLine renders "- Branch: <name> (result=..., pr=..., blocked=...)".
func branchLine(branch BranchSummary) string {
	line := "- Branch: " + orDefault(branch.BranchName, unknownName)

	details := make([]string, 0, 3) //nolint:mnd // result, pr, blocked
	if branch.Result != "" {
		details = append(details, "result="+branch.Result)
	}
	if branch.PRNo != nil {
		details = append(details, "pr="+strconv.Itoa(*branch.PRNo))
	}
	if branch.PRBlockedBy != "" {
		details = append(details, "blocked="+branch.PRBlockedBy)
	}
	if len(details) > 0 {
		line += " (" + strings.Join(details, ", ") + ")"
	}
	return line
}

// upgradeLine renders "  - <name>: <current> -> <next> (<type>) [<file>]".
func upgradeLine(upgrade UpgradeSummary) string {
	line := fmt.Sprintf(
		"  - %s: %s -> %s",
		orDefault(upgrade.Identity(), unknownName),
		orDefault(upgrade.Current(), unknownValue),
		orDefault(upgrade.Next(), unknownValue),
	)
	if upgrade.UpdateType != "" {
		line += " (" + upgrade.UpdateType + ")"
	}
	if upgrade.PackageFile != "" {
		line += " [" + upgrade.PackageFile + "]"
	}
	return line
}

func writeHeader(sb *strings.Builder, name, value string) {
	sb.WriteString(name + ": " + value + "\n")
}

func sortedRepositoryNames(report Report) []string {
	names := make([]string, 0, len(report.Repositories))
	for name := range report.Repositories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
