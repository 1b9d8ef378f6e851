package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/sow-auditor/internal/common"
	"github.com/joseph-ayodele/sow-auditor/internal/document"
	"github.com/joseph-ayodele/sow-auditor/internal/history"
	"github.com/joseph-ayodele/sow-auditor/internal/llm"
	"github.com/joseph-ayodele/sow-auditor/internal/mail"
	"github.com/joseph-ayodele/sow-auditor/internal/report"
)

// RunRequest describes one audit run.
type RunRequest struct {
	FilePath string
	Timeline llm.Timeline

	// IncludeSummary adds the structured document digest to the report.
	IncludeSummary bool

	// Email triggers report delivery after export. EmailTo overrides the
	// configured recipient.
	Email   bool
	EmailTo string
}

// RunResult is what one finished run produced.
type RunResult struct {
	RunID      uuid.UUID
	Report     *report.AuditReport
	PDFPath    string
	XLSXPath   string
	JSONPath   string
	EmailSent  bool
	EmailError error // delivery failure is advisory, never fatal

	// HistoryError reports a failed run-history insert; the exported
	// reports remain valid.
	HistoryError error

	Elapsed time.Duration
}

// Processor wires the full audit pipeline: load, analyze, compile, export,
// record, notify. The history store and notifier are optional.
type Processor struct {
	loader     *document.Loader
	analyzer   llm.Analyzer
	notifier   *mail.Notifier
	store      *history.Store
	reportsDir string
	logger     *slog.Logger
}

func NewProcessor(loader *document.Loader, analyzer llm.Analyzer, notifier *mail.Notifier, store *history.Store, reportsDir string, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if reportsDir == "" {
		reportsDir = "reports"
	}
	return &Processor{
		loader:     loader,
		analyzer:   analyzer,
		notifier:   notifier,
		store:      store,
		reportsDir: reportsDir,
		logger:     logger,
	}
}

// Run executes one audit end to end. Each stage either succeeds or aborts the
// run with a categorized error; only email delivery is advisory.
func (p *Processor) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	start := time.Now()
	rid := uuid.NewString()
	log := p.logger.With("req_id", rid, "file", req.FilePath, "project", req.Timeline.ProjectName)
	log.Info("processor.run.start")

	doc, err := p.loader.Load(ctx, req.FilePath)
	if err != nil {
		return nil, err
	}
	log.Info("processor.load.ok", "words", doc.WordCount(), "tables", len(doc.Tables), "scanned", doc.IsScanned)

	analysis, _, err := p.analyzer.Analyze(ctx, llm.AnalyzeRequest{
		DocumentText: doc.Text,
		TableCount:   len(doc.Tables),
		Timeline:     req.Timeline,
	})
	if err != nil {
		return nil, err
	}
	log.Info("processor.analyze.ok", "pillars", len(analysis.Findings), "go_no_go", analysis.GoNoGo)

	rep, err := report.Compile(analysis, doc.Metadata(), req.Timeline)
	if err != nil {
		return nil, err
	}
	log.Info("processor.compile.ok", "score", rep.Score.Score, "risk_rating", rep.Score.RiskRating)

	if req.IncludeSummary {
		summary, err := p.analyzer.Summarize(ctx, doc.Text, len(doc.Tables))
		if err != nil {
			// a failed digest degrades the report, it does not abort the run
			log.Warn("processor.summarize.failed", "error", err.Error())
		} else {
			rep.ContentSummary = summary
		}
	}

	res := &RunResult{Report: rep}
	if res.PDFPath, err = report.WritePDF(rep, p.reportsDir); err != nil {
		return nil, err
	}
	if res.XLSXPath, err = report.WriteXLSX(rep, p.reportsDir); err != nil {
		return nil, err
	}
	if res.JSONPath, err = report.WriteJSON(rep, p.reportsDir); err != nil {
		return nil, err
	}
	log.Info("processor.export.ok", "pdf", res.PDFPath, "xlsx", res.XLSXPath, "json", res.JSONPath)

	if p.store != nil {
		// the reports on disk are the deliverable; a failed history insert
		// must not discard their paths
		id, herr := p.store.Record(ctx, history.Run{
			SourceFile: req.FilePath,
			Project:    req.Timeline.ProjectName,
			Score:      rep.Score.Score,
			RiskRating: rep.Score.RiskRating,
			GoNoGo:     rep.GoNoGo,
			ReportPath: res.PDFPath,
		})
		if herr != nil {
			res.HistoryError = herr
			log.Warn("processor.history.failed", "error", herr.Error())
		} else {
			res.RunID = id
		}
	}

	if req.Email {
		if p.notifier == nil {
			res.EmailError = common.ConfigError("email requested but SMTP is not configured")
		} else if err := p.notifier.SendReport(ctx, rep, res.PDFPath, req.EmailTo); err != nil {
			res.EmailError = err
		} else {
			res.EmailSent = true
		}
		if res.EmailError != nil {
			log.Warn("processor.email.failed", "error", res.EmailError.Error())
		}
	}

	res.Elapsed = time.Since(start)
	log.Info("processor.run.ok",
		"score", rep.Score.Score,
		"decision", rep.GoNoGo,
		"email_sent", res.EmailSent,
		"elapsed_ms", res.Elapsed.Milliseconds(),
	)
	return res, nil
}
