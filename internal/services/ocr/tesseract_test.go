package ocr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/obligo/internal/interfaces"
)

func TestDetectDocumentText_NotPDF(t *testing.T) {
	client := NewTesseractClient([]string{"eng"}, arbor.NewLogger())

	_, err := client.DetectDocumentText(context.Background(), []byte("plain text"))
	require.Error(t, err)

	var ocrErr *interfaces.OCRError
	require.True(t, errors.As(err, &ocrErr))
	assert.Equal(t, interfaces.OCRErrInvalidFormat, ocrErr.Code)
}

func TestDetectDocumentText_CorruptPDF(t *testing.T) {
	client := NewTesseractClient(nil, arbor.NewLogger())

	// Correct header, unreadable body.
	_, err := client.DetectDocumentText(context.Background(), []byte("%PDF-1.7 truncated"))
	require.Error(t, err)

	var ocrErr *interfaces.OCRError
	require.True(t, errors.As(err, &ocrErr))
	assert.Equal(t, interfaces.OCRErrInvalidFormat, ocrErr.Code)
}

func TestOCRErrorFormatting(t *testing.T) {
	inner := errors.New("dial tcp: timeout")
	err := &interfaces.OCRError{
		Code:    interfaces.OCRErrConnection,
		Message: "engine unreachable",
		Err:     inner,
	}

	assert.Contains(t, err.Error(), "connection_error")
	assert.Contains(t, err.Error(), "engine unreachable")
	assert.ErrorIs(t, err, inner)
}
