package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rtoki/japan-national-admin-procedures/internal/cli/types"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)  // Cyan
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))            // Gray
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))            // Yellow
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))             // Blue
	totalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true) // Pink
)

// maxCellWidth caps a column; survey cells (procedure names, law names) can
// run to hundreds of characters.
const maxCellWidth = 40

// RenderTable renders an aligned text table. Widths are computed with
// runewidth so full-width Japanese text lines up.
func RenderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	clipped := make([][]string, len(rows))
	for r, row := range rows {
		clipped[r] = make([]string, len(headers))
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cell = runewidth.Truncate(cell, maxCellWidth, "…")
			clipped[r][i] = cell
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(headerStyle.Render(runewidth.FillRight(h, widths[i])))
		if i < len(headers)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteByte('\n')
	for _, row := range clipped {
		for i, cell := range row {
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderBarChart renders a frequency table as a horizontal bar chart.
func RenderBarChart(ft types.FrequencyTable, width int) string {
	if len(ft.Entries) == 0 {
		return keyStyle.Render("no data")
	}
	if width <= 0 {
		width = 40
	}

	maxCount := 0
	labelWidth := 0
	for _, e := range ft.Entries {
		if e.Count > maxCount {
			maxCount = e.Count
		}
		if w := runewidth.StringWidth(e.Label); w > labelWidth {
			labelWidth = w
		}
	}
	if labelWidth > maxCellWidth {
		labelWidth = maxCellWidth
	}

	var b strings.Builder
	for _, e := range ft.Entries {
		label := runewidth.Truncate(e.Label, maxCellWidth, "…")
		barLen := 0
		if maxCount > 0 {
			barLen = e.Count * width / maxCount
		}
		if barLen == 0 && e.Count > 0 {
			barLen = 1
		}
		b.WriteString(runewidth.FillRight(label, labelWidth))
		b.WriteString("  ")
		b.WriteString(barStyle.Render(strings.Repeat("█", barLen)))
		b.WriteString(fmt.Sprintf(" %d\n", e.Count))
	}
	b.WriteString(totalStyle.Render(fmt.Sprintf("total %d", ft.Total)))
	b.WriteByte('\n')
	return b.String()
}

// RenderSummary renders the dataset KPI figures.
func RenderSummary(s types.Summary) string {
	var b strings.Builder
	write := func(key, value string) {
		b.WriteString(keyStyle.Render(runewidth.FillRight(key, 24)))
		b.WriteString(valueStyle.Render(value))
		b.WriteByte('\n')
	}
	write("手続数", fmt.Sprintf("%d", s.Procedures))
	write("総手続件数", fmt.Sprintf("%d", s.TotalCount))
	write("オンライン手続件数", fmt.Sprintf("%d", s.OnlineCount))
	write("オンライン化率", fmt.Sprintf("%.2f%%", s.OnlineRate))
	return b.String()
}

// RenderDetail renders a full detail projection as key/value lines.
func RenderDetail(detail types.ProcedureDetail) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("手続ID %s", detail.ID)))
	b.WriteString("\n\n")
	for _, f := range detail.Fields {
		b.WriteString(keyStyle.Render(runewidth.FillRight(f.Key, 28)))
		b.WriteString(valueStyle.Render(f.Value))
		b.WriteByte('\n')
	}
	return b.String()
}
