package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewTable(t *testing.T) {
	cols := []Column{
		{Title: "SKU", Width: 8},
		{Title: "Name", Width: 20},
	}

	table := NewTable(cols)
	if table == nil {
		t.Fatal("Expected non-nil table")
	}
	if !table.Empty() {
		t.Error("New table should be empty")
	}
	if table.RowCount() != 0 {
		t.Errorf("Expected 0 rows, got %d", table.RowCount())
	}
}

func TestTable_SetRows(t *testing.T) {
	cols := []Column{
		{Title: "SKU", Width: 8},
		{Title: "Name", Width: 20},
	}

	table := NewTable(cols)
	rows := [][]string{
		{"PRD-0001", "Country Sourdough"},
		{"PRD-0002", "Classic Baguette"},
		{"PRD-0003", "Butter Croissants"},
	}
	table.SetRows(rows)

	if table.RowCount() != 3 {
		t.Errorf("Expected 3 rows, got %d", table.RowCount())
	}
	if table.Empty() {
		t.Error("Table should not be empty after setting rows")
	}
}

func TestTable_SetRows_ClampsSelection(t *testing.T) {
	cols := []Column{{Title: "Name", Width: 10}}
	table := NewTable(cols)
	table.SetRows([][]string{{"a"}, {"b"}, {"c"}})
	table.GoToBottom()

	// Shrinking the row set must pull the selection back in range
	table.SetRows([][]string{{"a"}})
	if table.Selected() != 0 {
		t.Errorf("Expected selected=0 after shrink, got %d", table.Selected())
	}
}

func TestTable_Navigation(t *testing.T) {
	cols := []Column{{Title: "Name", Width: 10}}
	table := NewTable(cols)
	table.SetRows([][]string{{"a"}, {"b"}, {"c"}, {"d"}, {"e"}})

	if table.Selected() != 0 {
		t.Errorf("Expected selected=0, got %d", table.Selected())
	}

	table.MoveDown()
	if table.Selected() != 1 {
		t.Errorf("Expected selected=1, got %d", table.Selected())
	}

	table.MoveUp()
	if table.Selected() != 0 {
		t.Errorf("Expected selected=0, got %d", table.Selected())
	}

	// Can't move above 0
	table.MoveUp()
	if table.Selected() != 0 {
		t.Errorf("Expected selected=0, got %d", table.Selected())
	}

	table.GoToBottom()
	if table.Selected() != 4 {
		t.Errorf("Expected selected=4, got %d", table.Selected())
	}

	// Can't move below last
	table.MoveDown()
	if table.Selected() != 4 {
		t.Errorf("Expected selected=4, got %d", table.Selected())
	}

	table.GoToTop()
	if table.Selected() != 0 {
		t.Errorf("Expected selected=0, got %d", table.Selected())
	}
}

func TestTable_SelectedRow(t *testing.T) {
	cols := []Column{{Title: "SKU", Width: 8}, {Title: "Name", Width: 10}}
	table := NewTable(cols)
	table.SetRows([][]string{{"PRD-0001", "Sourdough"}, {"PRD-0002", "Baguette"}})

	row := table.SelectedRow()
	if row == nil {
		t.Fatal("Expected non-nil selected row")
	}
	if row[0] != "PRD-0001" || row[1] != "Sourdough" {
		t.Errorf("Expected [PRD-0001, Sourdough], got %v", row)
	}

	table.MoveDown()
	row = table.SelectedRow()
	if row[0] != "PRD-0002" || row[1] != "Baguette" {
		t.Errorf("Expected [PRD-0002, Baguette], got %v", row)
	}
}

func TestTable_EmptySelectedRow(t *testing.T) {
	cols := []Column{{Title: "SKU", Width: 8}}
	table := NewTable(cols)

	row := table.SelectedRow()
	if row != nil {
		t.Errorf("Expected nil for empty table selected row, got %v", row)
	}
}

func TestTable_Render_ContainsHeadersAndRows(t *testing.T) {
	cols := []Column{
		{Title: "SKU", Width: 8},
		{Title: "Name", Width: 20},
	}

	table := NewTable(cols)
	table.SetRows([][]string{{"PRD-0001", "Country Sourdough"}, {"PRD-0002", "Baguette"}})

	output := table.Render()

	if !strings.Contains(output, "SKU") {
		t.Error("Expected header 'SKU' in output")
	}
	if !strings.Contains(output, "Name") {
		t.Error("Expected header 'Name' in output")
	}
	if !strings.Contains(output, "Country Sourdough") {
		t.Error("Expected row data 'Country Sourdough' in output")
	}
}

func TestTable_Render_TruncatesLongValues(t *testing.T) {
	cols := []Column{{Title: "Name", Width: 8}}
	table := NewTable(cols)
	table.SetRows([][]string{{"An Unreasonably Long Ingredient Name"}})

	output := table.Render()
	if strings.Contains(output, "An Unreasonably Long Ingredient Name") {
		t.Error("Expected long value to be truncated")
	}
	if !strings.Contains(output, "…") {
		t.Error("Expected truncation marker in output")
	}
}

func TestTable_Render_ShowsPagination(t *testing.T) {
	cols := []Column{{Title: "SKU", Width: 8}}
	table := NewTable(cols)
	table.SetRows([][]string{{"PRD-0001"}, {"PRD-0002"}})
	table.SetPagination(1, 5, 100)

	output := table.Render()

	if !strings.Contains(output, "Page 1/5") {
		t.Error("Expected pagination info in output")
	}
	if !strings.Contains(output, "100 total") {
		t.Error("Expected total count in output")
	}
}

func TestTable_Render_RightAligned(t *testing.T) {
	cols := []Column{
		{Title: "Cost", Width: 10, Align: lipgloss.Right},
	}

	table := NewTable(cols)
	table.SetRows([][]string{{"2.75"}})
	table.Focus(true)

	output := table.Render()
	if !strings.Contains(output, "2.75") {
		t.Error("Expected '2.75' in output")
	}
}

func TestTable_Scrolling(t *testing.T) {
	cols := []Column{{Title: "Name", Width: 10}}
	table := NewTable(cols)
	table.SetVisibleRows(3)

	rows := make([][]string, 10)
	for i := range rows {
		rows[i] = []string{"row-" + string(rune('0'+i))}
	}
	table.SetRows(rows)

	// Walk past the visible window; the view should follow the selection
	for i := 0; i < 5; i++ {
		table.MoveDown()
	}
	output := table.Render()
	if !strings.Contains(output, "row-5") {
		t.Error("Expected selected row 'row-5' to be visible after scrolling")
	}
	if strings.Contains(output, "row-0") {
		t.Error("Expected first row to scroll out of view")
	}
}
