package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fabrice-guiot/shuttersense-sub002/internal/inventory"
	"github.com/fabrice-guiot/shuttersense-sub002/internal/validation"
)

// Renderer controls table styling. Plain switches to ASCII borders for
// non-terminal output.
type Renderer struct {
	Plain bool
}

var titleCaser = cases.Title(language.English)

// Summary renders the collection-level outcome of a validation run.
func (r Renderer) Summary(summary *validation.Summary) string {
	var b strings.Builder

	counts := summary.StatusCounts
	b.WriteString(r.renderTable(
		[]string{"Images", "Groups", "Consistent", "With Warning", "Partial", "Inconsistent", "Invalid Files"},
		[][]string{{
			fmt.Sprint(summary.TotalImages),
			fmt.Sprint(summary.TotalGroups),
			fmt.Sprint(counts.Consistent),
			fmt.Sprint(counts.ConsistentWithWarning),
			fmt.Sprint(counts.Partial),
			fmt.Sprint(counts.Inconsistent),
			fmt.Sprint(summary.InvalidFilesCount),
		}},
	))

	if len(summary.ByTermination) > 0 {
		types := make([]string, 0, len(summary.ByTermination))
		for t := range summary.ByTermination {
			types = append(types, t)
		}
		sort.Strings(types)

		rows := make([][]string, 0, len(types))
		for _, t := range types {
			tc := summary.ByTermination[t]
			rows = append(rows, []string{
				TerminationLabel(t),
				fmt.Sprint(tc.Consistent),
				fmt.Sprint(tc.Partial),
				fmt.Sprint(tc.Inconsistent),
			})
		}
		b.WriteByte('\n')
		b.WriteString(r.renderTable(
			[]string{"Termination", "Consistent", "Partial", "Inconsistent"}, rows))
	}

	if len(summary.InvalidFiles) > 0 {
		rows := make([][]string, 0, len(summary.InvalidFiles))
		for _, inv := range summary.InvalidFiles {
			rows = append(rows, []string{inv.Filename, inv.Reason})
		}
		b.WriteByte('\n')
		b.WriteString(r.renderTable([]string{"Invalid File", "Reason"}, rows))
	}

	return b.String()
}

// Results renders the per-image detail listing.
func (r Renderer) Results(results []validation.Result) string {
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		var matches []string
		for _, m := range result.TerminationMatches {
			matches = append(matches, fmt.Sprintf("%s: %s", TerminationLabel(m.TerminationType), m.Status))
		}
		rows = append(rows, []string{
			result.BaseFilename,
			string(result.OverallStatus),
			strings.Join(matches, "; "),
		})
	}
	return r.renderTable([]string{"Image", "Status", "Terminations"}, rows)
}

// Runs renders recorded validation runs, newest first.
func (r Renderer) Runs(runs []inventory.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
			run.PipelineName,
			run.CollectionRoot,
			fmt.Sprint(run.TotalImages),
			fmt.Sprint(run.Consistent),
			fmt.Sprint(run.ConsistentWithWarning),
			fmt.Sprint(run.Partial),
			fmt.Sprint(run.Inconsistent),
			fmt.Sprint(run.InvalidFiles),
		})
	}
	return r.renderTable(
		[]string{"When", "Pipeline", "Collection", "Images", "Consistent", "With Warning", "Partial", "Inconsistent", "Invalid"},
		rows)
}

// Graph renders display-graph statistics for a pipeline without a file
// collection.
func (r Renderer) Graph(report validation.GraphReport) string {
	var b strings.Builder
	b.WriteString(r.renderTable(
		[]string{"Nodes", "Total Paths", "Truncated", "Completed"},
		[][]string{{
			fmt.Sprint(report.TotalNodes),
			fmt.Sprint(report.Stats.Total),
			fmt.Sprint(report.Stats.Truncated),
			fmt.Sprint(report.Stats.NonTruncated),
		}},
	))

	if len(report.Stats.NonTruncatedByTermination) > 0 {
		types := make([]string, 0, len(report.Stats.NonTruncatedByTermination))
		for t := range report.Stats.NonTruncatedByTermination {
			types = append(types, t)
		}
		sort.Strings(types)

		rows := make([][]string, 0, len(types))
		for _, t := range types {
			rows = append(rows, []string{
				TerminationLabel(t),
				fmt.Sprint(report.Stats.NonTruncatedByTermination[t]),
			})
		}
		b.WriteByte('\n')
		b.WriteString(r.renderTable([]string{"Termination", "Paths"}, rows))
	}
	return b.String()
}

// TerminationLabel humanizes a termination type for display:
// "archive-ready" becomes "Archive-Ready".
func TerminationLabel(terminationType string) string {
	if terminationType == "" {
		return "(none)"
	}
	return titleCaser.String(terminationType)
}

func (r Renderer) renderTable(headers []string, rows [][]string) string {
	tw := table.NewWriter()
	if r.Plain {
		tw.SetStyle(table.StyleDefault)
	} else {
		tw.SetStyle(table.StyleRounded)
	}

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, cell := range row {
			tr[i] = cell
		}
		tw.AppendRow(tr)
	}

	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		align := text.AlignLeft
		if i > 0 {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
