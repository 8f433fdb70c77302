// -----------------------------------------------------------------------
// OCR Client Interface - Detect lines of text in scanned documents
// -----------------------------------------------------------------------

package interfaces

import (
	"context"
	"fmt"
)

// TextLine is a single line of recognized text with the engine's confidence
// for that line, in the range [0,1].
type TextLine struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// OCRErrorCode classifies OCR collaborator failures so the extraction engine
// can record a descriptive attempt reason without knowing the backend.
type OCRErrorCode string

const (
	OCRErrInvalidFormat OCRErrorCode = "invalid_format"
	OCRErrTooLarge      OCRErrorCode = "document_too_large"
	OCRErrService       OCRErrorCode = "service_error"
	OCRErrConnection    OCRErrorCode = "connection_error"
)

// OCRError is the typed error returned by OCRClient implementations.
type OCRError struct {
	Code    OCRErrorCode
	Message string
	Err     error
}

func (e *OCRError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ocr %s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("ocr %s: %s", e.Code, e.Message)
}

func (e *OCRError) Unwrap() error { return e.Err }

// OCRClient is the narrow contract for an OCR collaborator. The document is
// processed as a whole; implementations return recognized lines in reading
// order. Implementations must be safe for concurrent use.
type OCRClient interface {
	// DetectDocumentText runs OCR over the full document bytes and returns
	// the recognized lines in order. Failures are reported as *OCRError.
	DetectDocumentText(ctx context.Context, content []byte) ([]TextLine, error)
}
