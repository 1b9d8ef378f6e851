package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joseph-ayodele/sow-auditor/internal/common"
	"github.com/joseph-ayodele/sow-auditor/internal/document"
)

// runparse extracts text and tables from a single document and dumps the
// result as JSON. Useful for checking what the auditor will actually see
// before spending tokens on analysis.
func main() {
	var (
		file       = flag.String("file", "", "document to parse (.pdf or .docx)")
		configPath = flag.String("config", "", "optional YAML config file")
		fullText   = flag.Bool("text", false, "include the full extracted text in the output")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: runparse -file <sow.pdf> [-text]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	loader := document.NewLoader(document.Config{
		Pdftotext:     cfg.Parser.Pdftotext,
		Pdftoppm:      cfg.Parser.Pdftoppm,
		Tesseract:     cfg.Parser.Tesseract,
		TesseractLang: cfg.Parser.TesseractLang,
		DPI:           cfg.Parser.DPI,
		MaxPages:      cfg.Parser.MaxPages,
		MinWords:      cfg.Parser.MinWords,
	}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	doc, err := loader.Load(ctx, *file)
	if err != nil {
		logger.Error("parse failed", "file", *file, "error", err)
		os.Exit(1)
	}

	out := struct {
		Metadata document.Metadata `json:"metadata"`
		Method   string            `json:"method"`
		Warnings []string          `json:"warnings,omitempty"`
		Tables   []document.Table  `json:"tables,omitempty"`
		Text     string            `json:"text,omitempty"`
	}{
		Metadata: doc.Metadata(),
		Method:   doc.Method,
		Warnings: doc.Warnings,
		Tables:   doc.Tables,
	}
	if *fullText {
		out.Text = doc.Text
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("encode output", "error", err)
		os.Exit(1)
	}
}
