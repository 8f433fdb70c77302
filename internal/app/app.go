// -----------------------------------------------------------------------
// Application Container - Owns configuration, logging and the wired
// extraction services
// -----------------------------------------------------------------------

package app

import (
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/obligo/internal/common"
	"github.com/ternarybob/obligo/internal/interfaces"
	"github.com/ternarybob/obligo/internal/services/extraction"
	"github.com/ternarybob/obligo/internal/services/ocr"
	"github.com/ternarybob/obligo/internal/services/pdf"
)

// App holds all application components and dependencies
type App struct {
	Config    *common.Config
	Logger    arbor.ILogger
	Inspector interfaces.DocumentInspector
	OCRClient interfaces.OCRClient
	Extractor interfaces.TextExtractor
}

// New wires the full extraction stack from configuration. The OCR client is
// only constructed when enabled; without it the engine skips the OCR stage.
func New(config *common.Config) *App {
	logger := common.InitLogger(config)

	inspector := pdf.NewInspector(logger)

	var ocrClient interfaces.OCRClient
	if config.OCR.Enabled {
		ocrClient = ocr.NewTesseractClient(config.OCR.Languages, logger)
		logger.Info().Strs("languages", config.OCR.Languages).Msg("OCR fallback enabled")
	}

	engine := extraction.NewEngine(config, inspector, ocrClient, logger)

	logger.Info().
		Str("environment", config.Environment).
		Int("min_text_length", config.Extraction.MinTextLength).
		Bool("ocr_enabled", config.OCR.Enabled).
		Msg("Application initialized")

	return &App{
		Config:    config,
		Logger:    logger,
		Inspector: inspector,
		OCRClient: ocrClient,
		Extractor: engine,
	}
}
