package common

import (
	"github.com/google/uuid"
)

// NewDocumentID generates a unique document ID with the "doc_" prefix
// Format: doc_<uuid>
func NewDocumentID() string {
	return "doc_" + uuid.New().String()
}

// NewExtractionID generates a correlation ID stamped into the logs of one
// extraction call. Format: ext_<uuid>
func NewExtractionID() string {
	return "ext_" + uuid.New().String()
}
