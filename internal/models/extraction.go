package models

import (
	"fmt"
	"strings"
)

// ExtractionMethod identifies which strategy produced an extraction result.
type ExtractionMethod string

const (
	// MethodNativeText reads the text layer embedded in the document's content streams
	MethodNativeText ExtractionMethod = "native_text"
	// MethodLayoutAware reconstructs text plus tabular structures from positioned fragments
	MethodLayoutAware ExtractionMethod = "layout_aware"
	// MethodOCR recovers text from scanned/image-only documents via an OCR collaborator
	MethodOCR ExtractionMethod = "ocr"
)

// Per-method confidence scores. These reflect a-priori trust in the method,
// not a computed statistic: layout-aware extraction recovers the most
// structure, native text is fast but loses tables, OCR is the least reliable.
const (
	ConfidenceNativeText  = 0.90
	ConfidenceLayoutAware = 0.95
	ConfidenceOCR         = 0.80
)

// ExtractionAttempt records one strategy invocation inside the fallback chain.
// Attempts are immutable once recorded and kept in invocation order.
type ExtractionAttempt struct {
	Method        ExtractionMethod `json:"method"`
	Succeeded     bool             `json:"succeeded"`
	FailureReason string           `json:"failure_reason,omitempty"`
}

// ExtractionDiagnostics carries per-call metadata accumulated by the engine.
// Strategy-specific counters are zero for methods that do not report them.
type ExtractionDiagnostics struct {
	Filename       string              `json:"filename"`
	FileSize       int64               `json:"file_size"`
	PagesProcessed int                 `json:"pages_processed"`
	PagesFailed    int                 `json:"pages_failed"`
	TablesFound    int                 `json:"tables_found,omitempty"`      // layout-aware only
	LinesExtracted int                 `json:"lines_extracted,omitempty"`   // OCR only
	OCRConfidence  float64             `json:"ocr_confidence,omitempty"`    // OCR only: mean per-line confidence
	Attempts       []ExtractionAttempt `json:"extraction_attempts"`
}

// ExtractionResult is the outcome of a successful extraction. Text is
// guaranteed non-empty and to have passed the validity heuristic.
type ExtractionResult struct {
	Text            string                `json:"text"`
	PageCount       int                   `json:"page_count"`
	Method          ExtractionMethod      `json:"extraction_method"`
	ConfidenceScore float64               `json:"confidence_score"`
	Diagnostics     ExtractionDiagnostics `json:"diagnostics"`
}

// StrategyOutput is the raw output of a single strategy before validation.
// The engine folds the counters into ExtractionDiagnostics on success.
type StrategyOutput struct {
	Text           string
	PageCount      int
	PagesProcessed int
	PagesFailed    int
	TablesFound    int
	LinesExtracted int
	OCRConfidence  float64
}

// ExtractionError is returned when every strategy in the chain has been
// exhausted without producing valid text. It carries the full attempt
// history so callers can diagnose which stages ran and why they failed.
type ExtractionError struct {
	Filename string
	Attempts []ExtractionAttempt
}

func (e *ExtractionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "all text extraction methods failed for %s", e.Filename)
	for _, a := range e.Attempts {
		fmt.Fprintf(&b, "; %s: %s", a.Method, a.FailureReason)
	}
	return b.String()
}
