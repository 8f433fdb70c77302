// -----------------------------------------------------------------------
// Layout Aware Strategy - Text plus tabular structures from positioned
// fragments, for documents where row/column layout carries meaning
// -----------------------------------------------------------------------

package extraction

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	ledongthuc "github.com/ledongthuc/pdf"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/obligo/internal/interfaces"
	"github.com/ternarybob/obligo/internal/models"
)

// Layout thresholds in PDF points. A row is a band of fragments sharing a
// baseline within rowTolerance; a horizontal gap wider than cellGap splits a
// row into cells; runs of multi-cell rows form tables.
const (
	rowTolerance  = 3.0
	cellGap       = 18.0
	wordGapFactor = 0.15 // share of font size treated as a word boundary; a space advance is ~0.25-0.3 em
)

// LayoutAwareStrategy reconstructs per-page text and tables from positioned
// text fragments. Heavier than the native text pass, it additionally
// recovers tabular structure such as deadline tables.
type LayoutAwareStrategy struct {
	logger arbor.ILogger
}

var _ interfaces.ExtractionStrategy = (*LayoutAwareStrategy)(nil)

// NewLayoutAwareStrategy creates the layout-aware extraction strategy.
func NewLayoutAwareStrategy(logger arbor.ILogger) *LayoutAwareStrategy {
	return &LayoutAwareStrategy{logger: logger}
}

func (s *LayoutAwareStrategy) Method() models.ExtractionMethod { return models.MethodLayoutAware }

func (s *LayoutAwareStrategy) Available() bool { return true }

// Extract processes each page independently; a failed page is counted and
// skipped, matching the native strategy's per-page isolation.
func (s *LayoutAwareStrategy) Extract(ctx context.Context, content []byte) (*models.StrategyOutput, error) {
	reader, err := ledongthuc.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}

	pageCount := reader.NumPage()
	parts := make([]string, 0, pageCount)
	tablesFound := 0

	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		page := reader.Page(pageNum)
		if page.V.IsNull() {
			s.logger.Warn().Int("page", pageNum).Msg("Page object missing, skipping")
			continue
		}

		pageText, tables, err := s.extractPage(page)
		if err != nil {
			s.logger.Warn().Int("page", pageNum).Err(err).Msg("Failed to extract page layout")
			continue
		}

		var combined strings.Builder
		combined.WriteString(pageText)
		for tableNum, table := range tables {
			combined.WriteString(serializeTable(table, tableNum+1, pageNum))
		}
		tablesFound += len(tables)

		if strings.TrimSpace(combined.String()) != "" {
			parts = append(parts, pageMarker(pageNum, combined.String()))
		}
	}

	return &models.StrategyOutput{
		Text:           strings.Join(parts, "\n"),
		PageCount:      pageCount,
		PagesProcessed: len(parts),
		PagesFailed:    pageCount - len(parts),
		TablesFound:    tablesFound,
	}, nil
}

// serializeTable renders one detected table. Table numbering restarts on
// every page; empty cells render as empty strings.
func serializeTable(table [][]string, tableNum, pageNum int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n--- Table %d on Page %d ---\n", tableNum, pageNum)
	for _, row := range table {
		if len(row) == 0 {
			continue
		}
		b.WriteString(strings.Join(row, " | "))
		b.WriteString("\n")
	}
	return b.String()
}

// layoutCell is a horizontal run of fragments within a row.
type layoutCell struct {
	x    float64
	endX float64
	text string
}

// layoutRow is a baseline-aligned band of cells, split on wide gaps.
type layoutRow struct {
	y     float64
	cells []layoutCell
}

// extractPage reconstructs plain text lines and table structures from the
// page's positioned fragments.
func (s *LayoutAwareStrategy) extractPage(page ledongthuc.Page) (text string, tables [][][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page content parse error: %v", r)
		}
	}()

	fragments := page.Content().Text
	rows := groupRows(fragments)

	var textLines []string
	var run []layoutRow

	flushRun := func() {
		if len(run) >= 2 {
			tables = append(tables, alignTable(run))
		} else {
			for _, row := range run {
				textLines = append(textLines, rowText(row))
			}
		}
		run = nil
	}

	for _, row := range rows {
		if len(row.cells) >= 2 {
			run = append(run, row)
			continue
		}
		flushRun()
		if line := rowText(row); line != "" {
			textLines = append(textLines, line)
		}
	}
	flushRun()

	return strings.Join(textLines, "\n"), tables, nil
}

// groupRows buckets fragments into baseline rows (top of page first) and
// splits each row into cells on wide horizontal gaps.
func groupRows(fragments []ledongthuc.Text) []layoutRow {
	kept := make([]ledongthuc.Text, 0, len(fragments))
	for _, f := range fragments {
		if strings.TrimSpace(f.S) != "" {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	// Sort top-to-bottom (PDF Y grows upward), then left-to-right.
	sort.SliceStable(kept, func(i, j int) bool {
		if diff := kept[i].Y - kept[j].Y; diff > rowTolerance || diff < -rowTolerance {
			return kept[i].Y > kept[j].Y
		}
		return kept[i].X < kept[j].X
	})

	var rows []layoutRow
	for _, f := range kept {
		if len(rows) == 0 || rows[len(rows)-1].y-f.Y > rowTolerance {
			rows = append(rows, layoutRow{y: f.Y})
		}
		row := &rows[len(rows)-1]
		row.cells = appendFragment(row.cells, f)
	}
	return rows
}

// appendFragment merges a fragment into the row's last cell or opens a new
// cell when the horizontal gap exceeds cellGap.
func appendFragment(cells []layoutCell, f ledongthuc.Text) []layoutCell {
	if len(cells) > 0 {
		last := &cells[len(cells)-1]
		gap := f.X - last.endX
		if gap <= cellGap {
			if gap > f.FontSize*wordGapFactor && !strings.HasSuffix(last.text, " ") {
				last.text += " "
			}
			last.text += f.S
			if end := f.X + f.W; end > last.endX {
				last.endX = end
			}
			return cells
		}
	}
	return append(cells, layoutCell{x: f.X, endX: f.X + f.W, text: f.S})
}

// rowText renders a row as a plain text line.
func rowText(row layoutRow) string {
	parts := make([]string, 0, len(row.cells))
	for _, c := range row.cells {
		if t := strings.TrimSpace(c.text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// alignTable maps a run of multi-cell rows onto a shared column grid so that
// rows missing a value still produce a cell for that column. Cells that have
// no content in a column come out as empty strings.
func alignTable(rows []layoutRow) [][]string {
	columns := detectColumns(rows)

	table := make([][]string, len(rows))
	for r, row := range rows {
		cells := make([]string, len(columns))
		for _, c := range row.cells {
			idx := nearestColumn(columns, c.x)
			if cells[idx] == "" {
				cells[idx] = strings.TrimSpace(c.text)
			} else {
				cells[idx] += " " + strings.TrimSpace(c.text)
			}
		}
		table[r] = cells
	}
	return table
}

// detectColumns clusters cell start positions across the run into column
// anchors.
func detectColumns(rows []layoutRow) []float64 {
	var starts []float64
	for _, row := range rows {
		for _, c := range row.cells {
			starts = append(starts, c.x)
		}
	}
	sort.Float64s(starts)

	var columns []float64
	for _, x := range starts {
		if len(columns) == 0 || x-columns[len(columns)-1] > cellGap {
			columns = append(columns, x)
		}
	}
	return columns
}

func nearestColumn(columns []float64, x float64) int {
	best := 0
	bestDist := -1.0
	for i, cx := range columns {
		dist := x - cx
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best
}
