package entities

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
)

// WriteMarkdownSummary writes a Markdown overview of the report: one table
// row per repository and a section listing each branch with its upgrades.
func WriteMarkdownSummary(w io.Writer, report Report, now time.Time) error {
	md := markdown.NewMarkdown(w)

	md.H1(reportTitle)
	md.PlainText("")
	md.PlainText("Generated at " + now.UTC().Format(generatedDateLayout) + ".")
	md.PlainText("")

	names := sortedRepositoryNames(report)
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		repo := report.Repositories[name]
		if repo == nil {
			repo = NewRepositoryReport()
		}
		rows = append(rows, []string{
			"`" + name + "`",
			strconv.Itoa(len(repo.Branches)),
			strconv.Itoa(len(repo.Problems)),
			libYearsCell(repo.LibYearsWithStatus),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Repository", "Branches", "Problems", "Lib years"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(report.Problems) > 0 {
		md.Warningf("%d problem(s) were not attributed to a repository.", len(report.Problems))
		md.PlainText("")
	}

	for _, name := range names {
		repo := report.Repositories[name]
		if repo == nil || len(repo.Branches) == 0 {
			continue
		}

		md.H2(name)
		md.PlainText("")
		for _, branch := range repo.Branches {
			md.H3(orDefault(branch.BranchName, unknownName))
			md.PlainText("")
			if len(branch.Upgrades) == 0 {
				md.PlainText("No upgrades.")
				md.PlainText("")
				continue
			}

			items := make([]string, 0, len(branch.Upgrades))
			for _, upgrade := range branch.Upgrades {
				items = append(items, fmt.Sprintf(
					"`%s`: %s -> %s",
					orDefault(upgrade.Identity(), unknownName),
					orDefault(upgrade.Current(), unknownValue),
					orDefault(upgrade.Next(), unknownValue),
				))
			}
			md.BulletList(items...)
			md.PlainText("")
		}
	}

	return md.Build()
}

func libYearsCell(metrics *LibYearMetrics) string {
	if metrics == nil {
		return "-"
	}
	return fmt.Sprintf(
		"%.2f (%d/%d outdated)",
		metrics.LibYears.Total,
		metrics.DependencyStatus.Outdated,
		metrics.DependencyStatus.Total,
	)
}
