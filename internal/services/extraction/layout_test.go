package extraction

import (
	"context"
	"testing"

	ledongthuc "github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func TestPageMarker(t *testing.T) {
	assert.Equal(t, "--- Page 1 ---\nhello\n", pageMarker(1, "hello"))
	assert.Equal(t, "--- Page 12 ---\nbody text\n", pageMarker(12, "body text"))
}

func TestSerializeTable(t *testing.T) {
	table := [][]string{
		{"Obligation", "Deadline"},
		{"Annual report", "2026-03-31"},
		{"", "2026-06-30"},
	}

	got := serializeTable(table, 2, 5)

	want := "\n--- Table 2 on Page 5 ---\n" +
		"Obligation | Deadline\n" +
		"Annual report | 2026-03-31\n" +
		" | 2026-06-30\n"
	assert.Equal(t, want, got)
}

func TestSerializeTable_SkipsEmptyRows(t *testing.T) {
	table := [][]string{
		{"A", "B"},
		{},
		{"C", "D"},
	}

	got := serializeTable(table, 1, 1)
	assert.Equal(t, "\n--- Table 1 on Page 1 ---\nA | B\nC | D\n", got)
}

// frag is a shorthand constructor for positioned text fragments.
func frag(s string, x, y, w, fontSize float64) ledongthuc.Text {
	return ledongthuc.Text{S: s, X: x, Y: y, W: w, FontSize: fontSize}
}

func TestGroupRows(t *testing.T) {
	fragments := []ledongthuc.Text{
		// Second visual row, listed first to prove sorting by baseline.
		frag("World", 50, 700, 30, 10),
		frag("Hello", 50, 720, 30, 10),
		// Same baseline as "Hello" within tolerance, far to the right:
		// a separate cell in the same row.
		frag("Col2", 200, 721, 25, 10),
		// Blank fragments are dropped entirely.
		frag("   ", 10, 720, 5, 10),
	}

	rows := groupRows(fragments)
	require.Len(t, rows, 2)

	require.Len(t, rows[0].cells, 2)
	assert.Equal(t, "Hello", rows[0].cells[0].text)
	assert.Equal(t, "Col2", rows[0].cells[1].text)

	require.Len(t, rows[1].cells, 1)
	assert.Equal(t, "World", rows[1].cells[0].text)
}

func TestGroupRows_Empty(t *testing.T) {
	assert.Nil(t, groupRows(nil))
	assert.Nil(t, groupRows([]ledongthuc.Text{frag("  ", 0, 0, 0, 10)}))
}

func TestAppendFragment_MergesAdjacent(t *testing.T) {
	// "Hel" ends at x=65; "lo" starts at 65 with no gap: same word.
	cells := appendFragment(nil, frag("Hel", 50, 700, 15, 10))
	cells = appendFragment(cells, frag("lo", 65, 700, 10, 10))

	require.Len(t, cells, 1)
	assert.Equal(t, "Hello", cells[0].text)
}

func TestAppendFragment_InsertsWordSpace(t *testing.T) {
	// Gap of 5pt at font size 10 exceeds the word-boundary share (3pt)
	// but stays under the cell gap.
	cells := appendFragment(nil, frag("Hello", 50, 700, 30, 10))
	cells = appendFragment(cells, frag("World", 85, 700, 30, 10))

	require.Len(t, cells, 1)
	assert.Equal(t, "Hello World", cells[0].text)
}

func TestAppendFragment_SpaceAdvanceGap(t *testing.T) {
	// A plain space advance in Helvetica is about 0.278 em: 2.78pt at
	// font size 10. That must read as a word boundary, not concatenation.
	cells := appendFragment(nil, frag("Positioned", 50, 700, 50, 10))
	cells = appendFragment(cells, frag("fragments", 102.78, 700, 45, 10))

	require.Len(t, cells, 1)
	assert.Equal(t, "Positioned fragments", cells[0].text)
}

func TestAppendFragment_SplitsOnCellGap(t *testing.T) {
	// Gap of 120pt is well past cellGap: a new cell.
	cells := appendFragment(nil, frag("Name", 50, 700, 30, 10))
	cells = appendFragment(cells, frag("Value", 200, 700, 30, 10))

	require.Len(t, cells, 2)
	assert.Equal(t, "Name", cells[0].text)
	assert.Equal(t, "Value", cells[1].text)
}

func TestRowText(t *testing.T) {
	row := layoutRow{cells: []layoutCell{
		{text: " Requirement "},
		{text: "Due date"},
		{text: "   "},
	}}
	assert.Equal(t, "Requirement Due date", rowText(row))

	assert.Equal(t, "", rowText(layoutRow{}))
}

func TestDetectColumns(t *testing.T) {
	rows := []layoutRow{
		{cells: []layoutCell{{x: 50}, {x: 200}, {x: 350}}},
		{cells: []layoutCell{{x: 52}, {x: 198}}},
	}

	columns := detectColumns(rows)
	require.Len(t, columns, 3)
	assert.InDelta(t, 50, columns[0], 5)
	assert.InDelta(t, 198, columns[1], 5)
	assert.InDelta(t, 350, columns[2], 5)
}

func TestNearestColumn(t *testing.T) {
	columns := []float64{50, 200, 350}

	assert.Equal(t, 0, nearestColumn(columns, 55))
	assert.Equal(t, 1, nearestColumn(columns, 190))
	assert.Equal(t, 2, nearestColumn(columns, 400))
}

func TestAlignTable_FillsMissingCells(t *testing.T) {
	rows := []layoutRow{
		{cells: []layoutCell{
			{x: 50, text: "Obligation"},
			{x: 200, text: "Owner"},
			{x: 350, text: "Deadline"},
		}},
		// Middle column absent in this row.
		{cells: []layoutCell{
			{x: 51, text: "File report"},
			{x: 352, text: "Q2"},
		}},
	}

	table := alignTable(rows)
	require.Len(t, table, 2)

	assert.Equal(t, []string{"Obligation", "Owner", "Deadline"}, table[0])
	assert.Equal(t, []string{"File report", "", "Q2"}, table[1])
}

func TestLayoutAwareStrategy_InvalidDocument(t *testing.T) {
	strategy := NewLayoutAwareStrategy(arbor.NewLogger())

	_, err := strategy.Extract(context.Background(), []byte("not a pdf at all"))
	assert.Error(t, err)
}

func TestLayoutAwareStrategy_Method(t *testing.T) {
	strategy := NewLayoutAwareStrategy(arbor.NewLogger())
	assert.Equal(t, "layout_aware", string(strategy.Method()))
	assert.True(t, strategy.Available())
}
