package extraction

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/obligo/internal/interfaces"
	"github.com/ternarybob/obligo/internal/models"
)

// mockInspector returns scripted metadata for the encrypted-document check.
type mockInspector struct {
	metadata *models.DocumentMetadata
	err      error
}

var _ interfaces.DocumentInspector = (*mockInspector)(nil)

func (m *mockInspector) Validate(content []byte) error { return m.err }

func (m *mockInspector) Metadata(content []byte) (*models.DocumentMetadata, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.metadata, nil
}

// buildFixturePDF renders one page per element of pageTexts. Empty strings
// produce pages with no text at all.
func buildFixturePDF(t *testing.T, pageTexts ...string) []byte {
	t.Helper()

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	for _, pageText := range pageTexts {
		doc.AddPage()
		doc.SetFont("Arial", "", 11)
		for _, line := range strings.Split(pageText, "\n") {
			if line != "" {
				doc.Cell(0, 6, line)
			}
			doc.Ln(6)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func TestNativeTextStrategy_Extract(t *testing.T) {
	logger := arbor.NewLogger()
	strategy := NewNativeTextStrategy(nil, logger)

	content := buildFixturePDF(t,
		"The supplier shall maintain compliance records.\nRecords are audited annually.",
		"Obligations continue after termination of the agreement.",
	)

	output, err := strategy.Extract(context.Background(), content)
	require.NoError(t, err)

	assert.Equal(t, 2, output.PageCount)
	assert.Equal(t, 2, output.PagesProcessed)
	assert.Equal(t, 0, output.PagesFailed)

	assert.Contains(t, output.Text, "--- Page 1 ---")
	assert.Contains(t, output.Text, "--- Page 2 ---")
	assert.Contains(t, output.Text, "supplier shall maintain compliance records")
	assert.Contains(t, output.Text, "after termination of the agreement")

	// Page 1 text must appear before the page 2 marker.
	assert.Less(t,
		strings.Index(output.Text, "compliance records"),
		strings.Index(output.Text, "--- Page 2 ---"))
}

func TestNativeTextStrategy_EmptyPageCountedAsFailed(t *testing.T) {
	logger := arbor.NewLogger()
	strategy := NewNativeTextStrategy(nil, logger)

	content := buildFixturePDF(t,
		"First page has text content for the parser to find.",
		"",
	)

	output, err := strategy.Extract(context.Background(), content)
	require.NoError(t, err)

	assert.Equal(t, 2, output.PageCount)
	assert.Equal(t, 1, output.PagesProcessed)
	assert.Equal(t, 1, output.PagesFailed)
	assert.NotContains(t, output.Text, "--- Page 2 ---")
}

func TestNativeTextStrategy_EncryptedDocument(t *testing.T) {
	logger := arbor.NewLogger()
	inspector := &mockInspector{metadata: &models.DocumentMetadata{IsEncrypted: true}}
	strategy := NewNativeTextStrategy(inspector, logger)

	_, err := strategy.Extract(context.Background(), buildFixturePDF(t, "irrelevant"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encrypted")
}

func TestNativeTextStrategy_InvalidDocument(t *testing.T) {
	logger := arbor.NewLogger()
	strategy := NewNativeTextStrategy(nil, logger)

	_, err := strategy.Extract(context.Background(), []byte("definitely not a pdf"))
	assert.Error(t, err)
}

func TestNativeTextStrategy_Method(t *testing.T) {
	strategy := NewNativeTextStrategy(nil, arbor.NewLogger())
	assert.Equal(t, models.MethodNativeText, strategy.Method())
	assert.True(t, strategy.Available())
}

func TestExtractText(t *testing.T) {
	content := buildFixturePDF(t,
		strings.Repeat("Compliance obligations are recorded and tracked for audit. ", 4))

	text, err := ExtractText(context.Background(), content, "doc.pdf")
	require.NoError(t, err)
	assert.Contains(t, text, "--- Page 1 ---")
	assert.Contains(t, text, "recorded and tracked")
}

func TestLayoutAwareStrategy_FixtureDocument(t *testing.T) {
	logger := arbor.NewLogger()
	strategy := NewLayoutAwareStrategy(logger)

	content := buildFixturePDF(t, "Positioned fragments form readable lines across the page.")

	output, err := strategy.Extract(context.Background(), content)
	require.NoError(t, err)

	assert.Equal(t, 1, output.PageCount)
	assert.Contains(t, output.Text, "--- Page 1 ---")
	assert.Contains(t, output.Text, "readable lines")
}
