package markdown

import (
	"strings"

	"mdbridge/internal/docs"
)

// renderTable converts a table block into GFM pipe-table text: the
// first row, a --- separator row with one cell per column, then the
// remaining rows. There is no forward-direction counterpart; tables in
// Markdown source are not converted to table blocks.
func renderTable(t *docs.Table) string {
	var lines []string
	for i, row := range t.TableRows {
		cells := make([]string, 0, len(row.TableCells))
		for _, cell := range row.TableCells {
			cells = append(cells, renderCell(cell))
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")

		if i == 0 {
			seps := make([]string, len(row.TableCells))
			for j := range seps {
				seps[j] = "---"
			}
			lines = append(lines, "| "+strings.Join(seps, " | ")+" |")
		}
	}
	return strings.Join(lines, "\n")
}

// renderCell joins the cell's paragraphs, trims the result, and escapes
// literal pipes so they survive the pipe-delimited row format.
func renderCell(cell docs.TableCell) string {
	var parts []string
	for _, el := range cell.Content {
		if el.Paragraph == nil {
			continue
		}
		parts = append(parts, renderParagraph(el.Paragraph))
	}
	text := strings.TrimSpace(strings.Join(parts, " "))
	return strings.ReplaceAll(text, "|", `\|`)
}
