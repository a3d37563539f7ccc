package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}).
		Bold(true)

	labelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#626262", Dark: "#a8a8a8"})

	successStyle = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#859900", Dark: "#50fa7b"}).
		Bold(true)

	warningStyle = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#b58900", Dark: "#f1fa8c"}).
		Bold(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#dc322f", Dark: "#ff5555"})

	reportStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "#005577", Dark: "#00aadd"}).
		Padding(0, 1)
)

// field 一行 "标签: 值"
func field(label, value string) string {
	if value == "" {
		value = "-"
	}
	return labelStyle.Render(fmt.Sprintf("%-13s", label+":")) + " " + value
}

// renderReport 转换结果摘要；pass 为实际写入输出的项目号与描述
func renderReport(outPath string, pass model.Passthrough, r *model.ExtractionResult) string {
	lines := []string{
		titleStyle.Render("Transform completed"),
		"",
		field("Output", outPath),
		field("Project ID", pass.ProjectID),
		field("Description", pass.Description),
		field("Sheets", fmt.Sprintf("%d", r.TotalSheets)),
		field("Line items", fmt.Sprintf("%d", r.LineItems)),
		field("Summary rows", fmt.Sprintf("%d", r.SummaryRows)),
		field("Duration", r.Duration.Round(time.Millisecond).String()),
	}

	if len(r.Skipped) > 0 {
		lines = append(lines, "", warningStyle.Render(fmt.Sprintf("Skipped %d sheet(s):", len(r.Skipped))))
		for _, s := range r.Skipped {
			lines = append(lines, "  "+s.Name+" "+labelStyle.Render("("+string(s.Reason.Code)+")"))
		}
	}

	return reportStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
