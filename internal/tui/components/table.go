// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines a table column.
type Column struct {
	Title string
	Width int
	Align lipgloss.Position
}

// TableStyles groups the styles a table renders with.
type TableStyles struct {
	Header   lipgloss.Style
	Row      lipgloss.Style
	RowAlt   lipgloss.Style
	Selected lipgloss.Style
	Border   lipgloss.Style
}

// DefaultTableStyles returns plain styles so a table renders sensibly
// before a theme is applied.
func DefaultTableStyles() TableStyles {
	return TableStyles{
		Header:   lipgloss.NewStyle().Bold(true),
		Row:      lipgloss.NewStyle(),
		RowAlt:   lipgloss.NewStyle().Faint(true),
		Selected: lipgloss.NewStyle().Reverse(true),
	}
}

// Table is a scrollable, selectable table.
type Table struct {
	columns     []Column
	rows        [][]string
	selected    int
	offset      int
	visibleRows int
	focused     bool
	styles      TableStyles

	// Pagination (informational; the caller drives page loads)
	currentPage int
	totalPages  int
	totalRows   int
}

// NewTable creates a new table with the given columns.
func NewTable(columns []Column) *Table {
	return &Table{
		columns:     columns,
		visibleRows: 15,
		styles:      DefaultTableStyles(),
	}
}

// SetRows replaces the table data, clamping the selection.
func (t *Table) SetRows(rows [][]string) {
	t.rows = rows
	if t.selected >= len(rows) {
		t.selected = len(rows) - 1
	}
	if t.selected < 0 {
		t.selected = 0
	}
	if t.offset > t.selected {
		t.offset = t.selected
	}
}

// SetPagination sets the pagination footer.
func (t *Table) SetPagination(page, totalPages, totalRows int) {
	t.currentPage = page
	t.totalPages = totalPages
	t.totalRows = totalRows
}

// SetVisibleRows sets how many rows render at once.
func (t *Table) SetVisibleRows(n int) {
	if n > 0 {
		t.visibleRows = n
	}
}

// SetStyles applies theme styles to the table.
func (t *Table) SetStyles(styles TableStyles) {
	t.styles = styles
}

// Focus sets whether the selection highlight is drawn.
func (t *Table) Focus(focused bool) {
	t.focused = focused
}

// Selected returns the selected row index.
func (t *Table) Selected() int {
	return t.selected
}

// SelectedRow returns the selected row data, or nil when empty.
func (t *Table) SelectedRow() []string {
	if t.selected >= 0 && t.selected < len(t.rows) {
		return t.rows[t.selected]
	}
	return nil
}

// MoveUp moves the selection up one row.
func (t *Table) MoveUp() {
	if t.selected > 0 {
		t.selected--
		if t.selected < t.offset {
			t.offset = t.selected
		}
	}
}

// MoveDown moves the selection down one row.
func (t *Table) MoveDown() {
	if t.selected < len(t.rows)-1 {
		t.selected++
		if t.selected >= t.offset+t.visibleRows {
			t.offset = t.selected - t.visibleRows + 1
		}
	}
}

// GoToTop selects the first row.
func (t *Table) GoToTop() {
	t.selected = 0
	t.offset = 0
}

// GoToBottom selects the last row.
func (t *Table) GoToBottom() {
	if len(t.rows) == 0 {
		return
	}
	t.selected = len(t.rows) - 1
	t.offset = t.selected - t.visibleRows + 1
	if t.offset < 0 {
		t.offset = 0
	}
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return len(t.rows) == 0
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// Render renders the table.
func (t *Table) Render() string {
	var b strings.Builder

	totalWidth := 0
	for _, col := range t.columns {
		totalWidth += col.Width + 3
	}

	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.Title
	}
	b.WriteString(t.renderRow(headers, t.styles.Header))
	b.WriteString("\n")
	b.WriteString(t.styles.Border.Render(strings.Repeat("-", totalWidth)))
	b.WriteString("\n")

	end := t.offset + t.visibleRows
	if end > len(t.rows) {
		end = len(t.rows)
	}

	for i := t.offset; i < end; i++ {
		style := t.styles.Row
		if i == t.selected && t.focused {
			style = t.styles.Selected
		} else if (i-t.offset)%2 == 1 {
			style = t.styles.RowAlt
		}
		b.WriteString(t.renderRow(t.rows[i], style))
		b.WriteString("\n")
	}

	if t.totalPages > 0 {
		b.WriteString(t.styles.Border.Render(strings.Repeat("-", totalWidth)))
		b.WriteString("\n")
		b.WriteString(t.styles.Border.Render(
			fmt.Sprintf("Page %d/%d | %d total", t.currentPage, t.totalPages, t.totalRows)))
	}

	return b.String()
}

func (t *Table) renderRow(cells []string, style lipgloss.Style) string {
	parts := make([]string, 0, len(t.columns))

	for i, col := range t.columns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}

		if len(cell) > col.Width {
			cell = cell[:col.Width-1] + "…"
		}

		switch col.Align {
		case lipgloss.Right:
			cell = fmt.Sprintf("%*s", col.Width, cell)
		case lipgloss.Center:
			pad := col.Width - len(cell)
			left := pad / 2
			cell = strings.Repeat(" ", left) + cell + strings.Repeat(" ", pad-left)
		default:
			cell = fmt.Sprintf("%-*s", col.Width, cell)
		}

		parts = append(parts, style.Render(cell))
	}

	return " " + strings.Join(parts, " | ") + " "
}
