// -----------------------------------------------------------------------
// OCR Strategy - Last-resort recovery for scanned/image-only documents via
// an injected OCR collaborator
// -----------------------------------------------------------------------

package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/obligo/internal/interfaces"
	"github.com/ternarybob/obligo/internal/models"
)

// maxSyncOCRBytes is the hard ceiling for synchronous OCR. Larger documents
// fail this stage without calling the collaborator; this is distinct from
// any upload limits a caller may impose.
const maxSyncOCRBytes = 10 * 1024 * 1024

// OCRStrategy hands the whole document to the OCR collaborator and joins
// the recognized lines. An engine built without a collaborator reports the
// stage as unavailable rather than failed.
type OCRStrategy struct {
	client interfaces.OCRClient
	logger arbor.ILogger
}

var _ interfaces.ExtractionStrategy = (*OCRStrategy)(nil)

// NewOCRStrategy creates the OCR fallback strategy. client may be nil.
func NewOCRStrategy(client interfaces.OCRClient, logger arbor.ILogger) *OCRStrategy {
	return &OCRStrategy{client: client, logger: logger}
}

func (s *OCRStrategy) Method() models.ExtractionMethod { return models.MethodOCR }

func (s *OCRStrategy) Available() bool { return s.client != nil }

// Extract runs one document-level OCR call and concatenates the recognized
// lines with newlines. The mean per-line confidence is recorded as a
// diagnostic only: the shared validity heuristic still gates success.
func (s *OCRStrategy) Extract(ctx context.Context, content []byte) (*models.StrategyOutput, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OCR client not available")
	}

	if len(content) > maxSyncOCRBytes {
		return nil, fmt.Errorf("document too large for synchronous OCR processing (>10MB)")
	}

	lines, err := s.client.DetectDocumentText(ctx, content)
	if err != nil {
		return nil, translateOCRError(err)
	}

	texts := make([]string, 0, len(lines))
	var confidenceSum float64
	for _, line := range lines {
		texts = append(texts, line.Text)
		confidenceSum += line.Confidence
	}

	avgConfidence := 0.0
	if len(lines) > 0 {
		avgConfidence = confidenceSum / float64(len(lines))
	}

	s.logger.Debug().
		Int("lines_extracted", len(lines)).
		Int("avg_confidence_pct", int(avgConfidence*100)).
		Msg("OCR detection completed")

	return &models.StrategyOutput{
		Text: strings.Join(texts, "\n"),
		// The collaborator processes the document as a whole.
		PageCount:      1,
		LinesExtracted: len(lines),
		OCRConfidence:  avgConfidence,
	}, nil
}

// translateOCRError maps collaborator error codes onto descriptive strategy
// failures so attempt records stay backend-agnostic.
func translateOCRError(err error) error {
	var ocrErr *interfaces.OCRError
	if !errors.As(err, &ocrErr) {
		return fmt.Errorf("OCR detection failed: %w", err)
	}

	switch ocrErr.Code {
	case interfaces.OCRErrInvalidFormat:
		return fmt.Errorf("invalid document format for OCR: %w", ocrErr)
	case interfaces.OCRErrTooLarge:
		return fmt.Errorf("document too large for OCR service: %w", ocrErr)
	case interfaces.OCRErrConnection:
		return fmt.Errorf("OCR service connection error: %w", ocrErr)
	default:
		return fmt.Errorf("OCR service error: %w", ocrErr)
	}
}
