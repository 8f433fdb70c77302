// -----------------------------------------------------------------------
// Tesseract OCR Client - Document-level text detection for scanned PDFs
// Pulls page images with pdfcpu and recognizes them with gosseract
// -----------------------------------------------------------------------

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/obligo/internal/interfaces"
)

var pdfHeader = []byte("%PDF-")

// TesseractClient implements the OCRClient contract with a local Tesseract
// engine. Scanned PDFs carry each page as an embedded raster image; those
// images are extracted with pdfcpu and recognized in page order. Each call
// uses its own gosseract client, so the type is safe for concurrent use.
type TesseractClient struct {
	languages []string
	logger    arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.OCRClient = (*TesseractClient)(nil)

// NewTesseractClient creates a Tesseract-backed OCR client. languages are
// trained-data hints (e.g. "eng"); empty means the engine default.
func NewTesseractClient(languages []string, logger arbor.ILogger) *TesseractClient {
	return &TesseractClient{languages: languages, logger: logger}
}

// DetectDocumentText extracts the page images embedded in the document and
// runs line-level recognition over each, returning lines in reading order
// with per-line confidence in [0,1].
func (c *TesseractClient) DetectDocumentText(ctx context.Context, content []byte) ([]interfaces.TextLine, error) {
	if !bytes.HasPrefix(content, pdfHeader) {
		return nil, &interfaces.OCRError{
			Code:    interfaces.OCRErrInvalidFormat,
			Message: "content is not a PDF document",
		}
	}

	pageImages, err := api.ExtractImagesRaw(bytes.NewReader(content), nil, model.NewDefaultConfiguration())
	if err != nil {
		return nil, &interfaces.OCRError{
			Code:    interfaces.OCRErrInvalidFormat,
			Message: "failed to extract page images",
			Err:     err,
		}
	}

	var lines []interfaces.TextLine
	for _, images := range pageImages {
		objNrs := make([]int, 0, len(images))
		for objNr := range images {
			objNrs = append(objNrs, objNr)
		}
		sort.Ints(objNrs)

		for _, objNr := range objNrs {
			select {
			case <-ctx.Done():
				return nil, &interfaces.OCRError{
					Code:    interfaces.OCRErrService,
					Message: "recognition canceled",
					Err:     ctx.Err(),
				}
			default:
			}

			img := images[objNr]
			data, err := io.ReadAll(img)
			if err != nil {
				return nil, &interfaces.OCRError{
					Code:    interfaces.OCRErrService,
					Message: fmt.Sprintf("failed to read page %d image", img.PageNr),
					Err:     err,
				}
			}

			imageLines, err := c.recognizeImage(data)
			if err != nil {
				return nil, err
			}
			lines = append(lines, imageLines...)
		}
	}

	c.logger.Debug().Int("lines", len(lines)).Msg("Tesseract document detection completed")
	return lines, nil
}

// recognizeImage runs one gosseract pass and maps line boxes onto TextLine
// records. gosseract confidences range 0-100.
func (c *TesseractClient) recognizeImage(data []byte) ([]interfaces.TextLine, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if len(c.languages) > 0 {
		if err := client.SetLanguage(c.languages...); err != nil {
			return nil, &interfaces.OCRError{
				Code:    interfaces.OCRErrService,
				Message: "failed to set recognition languages",
				Err:     err,
			}
		}
	}

	if err := client.SetImageFromBytes(data); err != nil {
		return nil, &interfaces.OCRError{
			Code:    interfaces.OCRErrInvalidFormat,
			Message: "unsupported page image format",
			Err:     err,
		}
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, &interfaces.OCRError{
			Code:    interfaces.OCRErrService,
			Message: "text line detection failed",
			Err:     err,
		}
	}

	lines := make([]interfaces.TextLine, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		lines = append(lines, interfaces.TextLine{
			Text:       text,
			Confidence: box.Confidence / 100.0,
		})
	}
	return lines, nil
}
