package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/obligo/internal/app"
	"github.com/ternarybob/obligo/internal/common"
	"github.com/ternarybob/obligo/internal/models"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles  configPaths // Multiple -config flags supported
	textOnly     = flag.Bool("text", false, "Print extracted text instead of the JSON result")
	outputPath   = flag.String("out", "", "Write the JSON result to a file instead of stdout")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion || *showVersionV {
		fmt.Printf("Obligo version %s\n", common.GetFullVersion())
		os.Exit(0)
	}

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: obligo [flags] <document.pdf> [more.pdf ...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("obligo.toml"); err == nil {
			configFiles = append(configFiles, "obligo.toml")
		}
	}

	// 1. Load configuration (default -> file1 -> file2 -> ... -> env)
	config, err := common.LoadFromFiles(configFiles...)
	if err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	// 2. Wire services (also initializes the logger)
	application := app.New(config)

	// 3. Print banner
	common.PrintBanner(common.GetVersion())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exitCode := 0
	for _, file := range files {
		if err := processFile(ctx, application, file); err != nil {
			application.Logger.Error().Str("file", file).Err(err).Msg("Extraction failed")
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

func processFile(ctx context.Context, application *app.App, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	application.Logger.Info().
		Str("document_id", common.NewDocumentID()).
		Str("file", path).
		Int("size", len(content)).
		Msg("Processing document")

	if err := application.Inspector.Validate(content); err != nil {
		return fmt.Errorf("document validation failed: %w", err)
	}

	result, err := application.Extractor.Extract(ctx, content, filepath.Base(path))
	if err != nil {
		return err
	}

	return writeResult(result)
}

func writeResult(result *models.ExtractionResult) error {
	if *textOnly {
		fmt.Println(result.Text)
		return nil
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	if *outputPath != "" {
		return os.WriteFile(*outputPath, data, 0644)
	}

	fmt.Println(string(data))
	return nil
}
