package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"layerstack/internal/app"
	"layerstack/internal/types"
)

// Styles render as plain text when output is not a terminal.
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func statusLabel(status types.OutcomeStatus) string {
	if status == types.OutcomeSuccess {
		return successStyle.Render(string(status))
	}
	return failureStyle.Render(string(status))
}

func newTable(w io.Writer, header []string, alignment []int) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment(alignment)
	return table
}

func indexLabel(file types.LayerDefinitionFile) string {
	if !file.HasIndex() {
		return "-"
	}
	return strconv.Itoa(*file.Index)
}

func renderPlan(w io.Writer, files []types.LayerDefinitionFile) {
	table := newTable(w, []string{"#", "Index", "File"},
		[]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})
	for i, file := range files {
		table.Append([]string{strconv.Itoa(i + 1), indexLabel(file), file.Name})
	}
	table.SetFooter([]string{"", "", fmt.Sprintf("%d files", len(files))})
	table.Render()
}

func renderOutcomes(w io.Writer, report types.RunReport) {
	table := newTable(w, []string{"#", "Index", "File", "Status", "Detail"},
		[]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})
	for _, outcome := range report.Outcomes {
		detail := strings.Join(outcome.LayerIDs, ", ")
		if !outcome.Succeeded() {
			detail = fmt.Sprintf("%s: %s", outcome.Kind, outcome.Error)
		}
		table.Append([]string{
			strconv.Itoa(outcome.Sequence),
			indexLabel(outcome.File),
			outcome.File.Name,
			statusLabel(outcome.Status),
			detail,
		})
	}
	table.SetFooter([]string{"", "", fmt.Sprintf("%d ok", report.Succeeded()), fmt.Sprintf("%d failed", report.Failed()), ""})
	table.Render()
}

func renderSummary(w io.Writer, report types.RunReport) {
	for _, notice := range report.Notices {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", noticeStyle.Render("notice:"), notice.Kind, notice.Message)
	}
	if report.Fatal != nil {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", failureStyle.Render("failed:"), report.Fatal.Kind, report.Fatal.Message)
		return
	}
	if report.Persisted {
		_, _ = fmt.Fprintf(w, "%s %s (%s)\n", successStyle.Render("project written:"), report.Settings.OutputPath, report.Settings.CRS)
	}
}

func renderPreview(w io.Writer, result app.PreviewResult) {
	if len(result.Bands) == 0 {
		renderPlan(w, result.Files)
		return
	}
	table := newTable(w, []string{"Band", "Index", "File"},
		[]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})
	for _, band := range result.Bands {
		for _, file := range band.Files {
			table.Append([]string{band.Name, indexLabel(file), file.Name})
		}
	}
	for _, file := range result.Unbanded {
		table.Append([]string{"-", indexLabel(file), file.Name})
	}
	table.SetFooter([]string{"", "", fmt.Sprintf("%d files", len(result.Files))})
	table.Render()
}

func renderInspect(w io.Writer, result app.InspectResult) {
	_, _ = fmt.Fprintf(w, "title:   %s\n", result.Title)
	_, _ = fmt.Fprintf(w, "crs:     %s\n", result.CRS)
	_, _ = fmt.Fprintf(w, "version: %s\n", result.Version)
	_, _ = fmt.Fprintf(w, "layers:  %d\n\n", result.LayerCount)

	table := newTable(w, []string{"Tree", "Kind", "Visible", "Datasource"},
		[]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})
	for _, entry := range result.Entries {
		visible := ""
		if entry.Visible {
			visible = "x"
		}
		table.Append([]string{
			strings.Repeat("  ", entry.Depth) + entry.Name,
			string(entry.Kind),
			visible,
			entry.Datasource,
		})
	}
	table.Render()
}
