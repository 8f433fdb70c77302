// -----------------------------------------------------------------------
// Extraction Interfaces - Strategy contract and engine-facing service
// -----------------------------------------------------------------------

package interfaces

import (
	"context"

	"github.com/ternarybob/obligo/internal/models"
)

// ExtractionStrategy is one stage of the fallback chain: attempt extraction
// and return raw text plus diagnostics, or an error describing why the whole
// strategy failed. Per-page problems are absorbed into the output counters,
// not surfaced as errors.
type ExtractionStrategy interface {
	// Method identifies the strategy in results and attempt records.
	Method() models.ExtractionMethod

	// Available reports whether the strategy can run at all (e.g. the OCR
	// stage without a collaborator is absent, not failed).
	Available() bool

	// Extract attempts text extraction over the full document bytes.
	Extract(ctx context.Context, content []byte) (*models.StrategyOutput, error)
}

// TextExtractor is the engine contract consumed by callers: document bytes
// in, validated ExtractionResult or *models.ExtractionError out.
type TextExtractor interface {
	Extract(ctx context.Context, content []byte, filename string) (*models.ExtractionResult, error)
}

// DocumentInspector validates document structure and reports metadata
// without extracting text.
type DocumentInspector interface {
	Validate(content []byte) error
	Metadata(content []byte) (*models.DocumentMetadata, error)
}
