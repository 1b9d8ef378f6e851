package document

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/joseph-ayodele/sow-auditor/constants"
	"github.com/joseph-ayodele/sow-auditor/internal/common"
)

// Config tunes the external extraction tools.
type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng"
	DPI           int    // rasterization DPI for scanned PDFs, default 300
	MaxPages      int    // 0 = no limit

	// MinWords is the word-count floor below which a PDF text layer is
	// considered unusable and OCR fallback kicks in. Default 50.
	MinWords int
}

// Loader reads a PDF or DOCX and produces a Document with text and tables.
type Loader struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewLoader(cfg Config, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.MinWords <= 0 {
		cfg.MinWords = 50
	}
	return &Loader{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// Load picks a strategy based on file extension.
func (l *Loader) Load(ctx context.Context, path string) (*Document, error) {
	start := time.Now()

	st, err := os.Stat(path)
	if err != nil {
		return nil, common.InputError(fmt.Sprintf("cannot open %q", path), err)
	}

	ext := constants.NormalizeExt(filepath.Ext(path))
	format := constants.MapExtToFormat(ext)
	l.logger.Debug("document.load.start", "path", path, "ext", ext, "format", format)

	var doc *Document
	switch format {
	case constants.PDF:
		doc, err = l.loadPDF(ctx, path)
	case constants.DOCX:
		doc, err = l.loadDOCX(path)
	default:
		return nil, common.InputError(fmt.Sprintf("unsupported file format: %q", ext), nil)
	}
	if err != nil {
		return nil, err
	}

	doc.Path = path
	doc.Format = format
	doc.SizeBytes = st.Size()
	doc.Duration = time.Since(start)

	l.logger.Info("document.load.ok",
		"path", path,
		"format", format,
		"method", doc.Method,
		"pages", doc.Pages,
		"words", doc.WordCount(),
		"tables", len(doc.Tables),
		"scanned", doc.IsScanned,
		"elapsed_ms", doc.Duration.Milliseconds(),
	)
	return doc, nil
}

// loadPDF validates the file, extracts the text layer, and falls back to OCR
// when the layer is too thin to audit.
func (l *Loader) loadPDF(ctx context.Context, path string) (*Document, error) {
	if err := api.ValidateFile(path, nil); err != nil {
		return nil, common.InputError(fmt.Sprintf("invalid PDF %q", path), err)
	}
	pageCount, err := api.PageCountFile(path)
	if err != nil {
		l.logger.Warn("document.pdf.page_count_failed", "path", path, "error", err)
		pageCount = 0
	}

	text, pages, warns, err := l.pdfToText(ctx, path)
	if err != nil {
		return nil, common.InputError(fmt.Sprintf("pdf text extraction failed for %q", path), err)
	}
	if pageCount > 0 {
		pages = pageCount
	}

	doc := &Document{Method: "pdf-text", Pages: pages, Warnings: warns}
	doc.Text = Normalize(text)
	doc.Tables = tablesFromLayout(text)

	// A near-empty text layer means the PDF is a scan; rasterize and OCR.
	if len(splitWords(doc.Text)) < l.cfg.MinWords {
		l.logger.Warn("document.pdf.low_text", "path", path, "words", len(splitWords(doc.Text)))
		ocrText, ocrPages, ocrWarns, ocrErr := l.pdfToOCR(ctx, path)
		doc.Warnings = append(doc.Warnings, ocrWarns...)
		if ocrErr != nil {
			return nil, common.InputError(fmt.Sprintf("ocr fallback failed for %q", path), ocrErr)
		}
		doc.Text = Normalize(ocrText)
		doc.Method = "pdf-ocr"
		doc.IsScanned = true
		if ocrPages > 0 && pageCount == 0 {
			doc.Pages = ocrPages
		}
	}

	// Fold the table digest into the text stream the way the prompt expects.
	doc.Text = appendTableDigest(doc.Text, doc.Tables)
	return doc, nil
}
