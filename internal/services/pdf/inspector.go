// -----------------------------------------------------------------------
// PDF Inspector Service - Validate document structure and read metadata
// Uses pdfcpu for Go-native PDF processing
// -----------------------------------------------------------------------

package pdf

import (
	"bytes"
	"fmt"

	ledongthuc "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/obligo/internal/interfaces"
	"github.com/ternarybob/obligo/internal/models"
)

var pdfHeader = []byte("%PDF-")

// Inspector validates PDF structure and reads document metadata without
// extracting text content.
type Inspector struct {
	logger arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.DocumentInspector = (*Inspector)(nil)

// NewInspector creates a new PDF inspector service
func NewInspector(logger arbor.ILogger) *Inspector {
	return &Inspector{logger: logger}
}

// Validate checks that the content is a structurally readable PDF: correct
// header, parseable cross-reference data, and at least one page.
func (i *Inspector) Validate(content []byte) error {
	if !bytes.HasPrefix(content, pdfHeader) {
		return fmt.Errorf("invalid PDF header")
	}

	pdfCtx, err := api.ReadContext(bytes.NewReader(content), model.NewDefaultConfiguration())
	if err != nil {
		return fmt.Errorf("failed to read PDF: %w", err)
	}

	// Validation resolves the xref table and fills in PageCount.
	if err := api.ValidateContext(pdfCtx); err != nil {
		return fmt.Errorf("failed to validate PDF: %w", err)
	}

	if pdfCtx.PageCount == 0 {
		return fmt.Errorf("PDF contains no pages")
	}

	return nil
}

// Metadata reads page count, size, encryption state and document info
// fields. Info fields are best-effort: a document without an Info dictionary
// still yields valid structural metadata.
func (i *Inspector) Metadata(content []byte) (*models.DocumentMetadata, error) {
	pdfCtx, err := api.ReadContext(bytes.NewReader(content), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}

	// PageCount is only populated once the context is validated.
	if err := api.ValidateContext(pdfCtx); err != nil {
		return nil, fmt.Errorf("failed to validate PDF context: %w", err)
	}

	metadata := &models.DocumentMetadata{
		PageCount:   pdfCtx.PageCount,
		FileSize:    int64(len(content)),
		IsEncrypted: pdfCtx.Encrypt != nil,
	}
	if pdfCtx.HeaderVersion != nil {
		metadata.PDFVersion = pdfCtx.HeaderVersion.String()
	}

	if !metadata.IsEncrypted {
		i.readInfoDict(content, metadata)
	}

	i.logger.Debug().
		Int("page_count", metadata.PageCount).
		Int64("file_size", metadata.FileSize).
		Bool("encrypted", metadata.IsEncrypted).
		Msg("Inspected PDF metadata")

	return metadata, nil
}

// readInfoDict fills title/author fields from the trailer Info dictionary.
func (i *Inspector) readInfoDict(content []byte, metadata *models.DocumentMetadata) {
	reader, err := ledongthuc.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return
	}

	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return
	}

	metadata.Title = info.Key("Title").Text()
	metadata.Author = info.Key("Author").Text()
	metadata.Subject = info.Key("Subject").Text()
	metadata.Creator = info.Key("Creator").Text()
	metadata.Producer = info.Key("Producer").Text()
}
