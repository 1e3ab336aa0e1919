package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// RenderTable lays out a parsed table with a styled header row and a
// separator. Rows may be ragged; missing cells render empty.
func RenderTable(header []string, rows [][]string, st *Styles) string {
	widths := columnWidths(header, rows)
	if len(widths) == 0 {
		return ""
	}

	var b strings.Builder
	writeRow(&b, header, widths, st.TableHeader, st)
	writeSeparator(&b, widths, st)
	for _, row := range rows {
		writeRow(&b, row, widths, st.TableCell, st)
	}
	return b.String()
}

// columnWidths returns the display width of every column.
func columnWidths(header []string, rows [][]string) []int {
	cols := len(header)
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(header)
	for _, row := range rows {
		measure(row)
	}
	return widths
}

func writeRow(b *strings.Builder, cells []string, widths []int, style lipgloss.Style, st *Styles) {
	border := st.TableBorder.Render("│")
	b.WriteString(border)
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded := runewidth.FillRight(cell, width)
		b.WriteString(" " + style.Render(padded) + " ")
		b.WriteString(border)
	}
	b.WriteString("\n")
}

func writeSeparator(b *strings.Builder, widths []int, st *Styles) {
	var parts []string
	for _, width := range widths {
		parts = append(parts, strings.Repeat("─", width+2))
	}
	b.WriteString(st.TableBorder.Render("├"+strings.Join(parts, "┼")+"┤") + "\n")
}
