// -----------------------------------------------------------------------
// Text Extraction Engine - Ordered strategy fallback with attempt history
// -----------------------------------------------------------------------

package extraction

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/obligo/internal/common"
	"github.com/ternarybob/obligo/internal/interfaces"
	"github.com/ternarybob/obligo/internal/models"
	"github.com/ternarybob/obligo/internal/services/pdf"
)

// reasonInsufficientText is recorded when a strategy ran but its output did
// not pass the validity heuristic.
const reasonInsufficientText = "insufficient text extracted"

// Engine runs extraction strategies in fixed priority order and returns the
// first output that passes the validity heuristic. Strategies are ordered
// cheapest-first; once one succeeds the more expensive stages never run.
// The engine holds no mutable state between calls and is safe for concurrent
// use as long as the injected strategies are.
type Engine struct {
	strategies    []interfaces.ExtractionStrategy
	minTextLength int
	logger        arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.TextExtractor = (*Engine)(nil)

// NewEngine assembles the standard chain: native text, then layout-aware,
// then OCR. ocrClient may be nil, in which case the OCR stage is absent
// (skipped without recording a failed attempt).
func NewEngine(cfg *common.Config, inspector interfaces.DocumentInspector, ocrClient interfaces.OCRClient, logger arbor.ILogger) *Engine {
	strategies := []interfaces.ExtractionStrategy{
		NewNativeTextStrategy(inspector, logger),
		NewLayoutAwareStrategy(logger),
		NewOCRStrategy(ocrClient, logger),
	}
	return NewEngineWithStrategies(strategies, cfg.Extraction.MinTextLength, logger)
}

// NewEngineWithStrategies builds an engine over an explicit strategy chain.
// Used directly by tests to substitute mock strategies.
func NewEngineWithStrategies(strategies []interfaces.ExtractionStrategy, minTextLength int, logger arbor.ILogger) *Engine {
	if minTextLength <= 0 {
		minTextLength = DefaultMinTextLength
	}
	return &Engine{
		strategies:    strategies,
		minTextLength: minTextLength,
		logger:        logger,
	}
}

// Extract tries each strategy in order and returns the first validated
// result. Every failed attempt, whether a strategy error or invalid output,
// is recorded; if the chain is exhausted the returned error is a
// *models.ExtractionError carrying the full attempt history.
func (e *Engine) Extract(ctx context.Context, content []byte, filename string) (*models.ExtractionResult, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("document %s is empty", filename)
	}

	extractionID := common.NewExtractionID()
	e.logger.Info().
		Str("extraction_id", extractionID).
		Str("filename", filename).
		Int("file_size", len(content)).
		Msg("Starting text extraction")

	attempts := make([]models.ExtractionAttempt, 0, len(e.strategies))

	for _, strategy := range e.strategies {
		if !strategy.Available() {
			e.logger.Debug().
				Str("extraction_id", extractionID).
				Str("method", string(strategy.Method())).
				Msg("Strategy unavailable, skipping")
			continue
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		output, err := strategy.Extract(ctx, content)
		if err != nil {
			e.logger.Warn().
				Str("extraction_id", extractionID).
				Str("method", string(strategy.Method())).
				Str("filename", filename).
				Err(err).
				Msg("Extraction strategy failed")
			attempts = append(attempts, models.ExtractionAttempt{
				Method:        strategy.Method(),
				FailureReason: err.Error(),
			})
			continue
		}

		if !IsTextValid(output.Text, e.minTextLength) {
			e.logger.Warn().
				Str("extraction_id", extractionID).
				Str("method", string(strategy.Method())).
				Str("filename", filename).
				Msg("Extracted text failed validity check")
			attempts = append(attempts, models.ExtractionAttempt{
				Method:        strategy.Method(),
				FailureReason: reasonInsufficientText,
			})
			continue
		}

		e.logger.Info().
			Str("extraction_id", extractionID).
			Str("method", string(strategy.Method())).
			Str("filename", filename).
			Int("page_count", output.PageCount).
			Int("text_length", len(output.Text)).
			Msg("Text extraction succeeded")

		return &models.ExtractionResult{
			Text:            output.Text,
			PageCount:       output.PageCount,
			Method:          strategy.Method(),
			ConfidenceScore: confidenceFor(strategy.Method()),
			Diagnostics: models.ExtractionDiagnostics{
				Filename:       filename,
				FileSize:       int64(len(content)),
				PagesProcessed: output.PagesProcessed,
				PagesFailed:    output.PagesFailed,
				TablesFound:    output.TablesFound,
				LinesExtracted: output.LinesExtracted,
				OCRConfidence:  output.OCRConfidence,
				Attempts:       attempts,
			},
		}, nil
	}

	return nil, &models.ExtractionError{Filename: filename, Attempts: attempts}
}

func confidenceFor(method models.ExtractionMethod) float64 {
	switch method {
	case models.MethodNativeText:
		return models.ConfidenceNativeText
	case models.MethodLayoutAware:
		return models.ConfidenceLayoutAware
	case models.MethodOCR:
		return models.ConfidenceOCR
	default:
		return 0
	}
}

// ExtractText is a one-shot convenience wrapper for callers that only need
// the text: default configuration, no OCR stage.
func ExtractText(ctx context.Context, content []byte, filename string) (string, error) {
	logger := common.GetLogger()
	engine := NewEngine(common.NewDefaultConfig(), pdf.NewInspector(logger), nil, logger)
	result, err := engine.Extract(ctx, content, filename)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}
