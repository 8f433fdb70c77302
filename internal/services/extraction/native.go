// -----------------------------------------------------------------------
// Native Text Strategy - Read the embedded text layer, no OCR or layout
// reconstruction
// -----------------------------------------------------------------------

package extraction

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	ledongthuc "github.com/ledongthuc/pdf"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/obligo/internal/interfaces"
	"github.com/ternarybob/obligo/internal/models"
)

// pageMarker renders one page's contribution to the concatenated output.
// Page indexes are 1-based. Parts are joined with a single newline by the
// caller.
func pageMarker(pageNum int, text string) string {
	return fmt.Sprintf("--- Page %d ---\n%s\n", pageNum, text)
}

// NativeTextStrategy extracts text already embedded in the document's
// content streams. It is the fastest method and runs first in the chain.
type NativeTextStrategy struct {
	inspector interfaces.DocumentInspector
	logger    arbor.ILogger
}

var _ interfaces.ExtractionStrategy = (*NativeTextStrategy)(nil)

// NewNativeTextStrategy creates the native text extraction strategy.
func NewNativeTextStrategy(inspector interfaces.DocumentInspector, logger arbor.ILogger) *NativeTextStrategy {
	return &NativeTextStrategy{inspector: inspector, logger: logger}
}

func (s *NativeTextStrategy) Method() models.ExtractionMethod { return models.MethodNativeText }

func (s *NativeTextStrategy) Available() bool { return true }

// Extract reads the text layer page by page. A single page's failure is
// logged and counted, never fatal; an encrypted document is a whole-strategy
// failure since password handling is out of scope.
func (s *NativeTextStrategy) Extract(ctx context.Context, content []byte) (*models.StrategyOutput, error) {
	if s.inspector != nil {
		if metadata, err := s.inspector.Metadata(content); err == nil && metadata.IsEncrypted {
			return nil, fmt.Errorf("document is encrypted and cannot be processed")
		}
	}

	reader, err := ledongthuc.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}

	pageCount := reader.NumPage()
	parts := make([]string, 0, pageCount)

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

		pageText, err := readPagePlainText(page)
		if err != nil {
			s.logger.Warn().Int("page", pageNum).Err(err).Msg("Failed to extract page text")
			continue
		}

		if strings.TrimSpace(pageText) != "" {
			parts = append(parts, pageMarker(pageNum, pageText))
		}
	}

	return &models.StrategyOutput{
		Text:           strings.Join(parts, "\n"),
		PageCount:      pageCount,
		PagesProcessed: len(parts),
		PagesFailed:    pageCount - len(parts),
	}, nil
}

// readPagePlainText isolates the library call so a malformed content stream
// cannot take down the whole document.
func readPagePlainText(page ledongthuc.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page content parse error: %v", r)
		}
	}()
	return page.GetPlainText(nil)
}
