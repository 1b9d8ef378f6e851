package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joseph-ayodele/sow-auditor/internal/common"
	"github.com/joseph-ayodele/sow-auditor/internal/document"
	"github.com/joseph-ayodele/sow-auditor/internal/history"
	"github.com/joseph-ayodele/sow-auditor/internal/llm"
	"github.com/joseph-ayodele/sow-auditor/internal/llm/deepseek"
	"github.com/joseph-ayodele/sow-auditor/internal/mail"
	"github.com/joseph-ayodele/sow-auditor/internal/pipeline"
)

func main() {
	var (
		file       = flag.String("file", "", "SOW document to audit (.pdf or .docx)")
		project    = flag.String("project", "", "project name")
		buildEnd   = flag.String("build-end", "", "build phase end date (YYYY-MM-DD)")
		testEnd    = flag.String("test-end", "", "test phase end date (YYYY-MM-DD)")
		cutoverEnd = flag.String("cutover-end", "", "cutover end date (YYYY-MM-DD)")
		configPath = flag.String("config", "", "optional YAML config file")
		summary    = flag.Bool("summary", false, "append a document content summary to the report")
		email      = flag.Bool("email", false, "email the report after export")
		emailTo    = flag.String("email-to", "", "override the configured recipient")
		noHistory  = flag.Bool("no-history", false, "skip recording the run in the local history db")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: sow-audit -file <sow.pdf> -project <name> -build-end YYYY-MM-DD -test-end YYYY-MM-DD -cutover-end YYYY-MM-DD")
		flag.PrintDefaults()
		os.Exit(2)
	}

	timeline, err := llm.ParseTimeline(*project, *buildEnd, *testEnd, *cutoverEnd)
	if err != nil {
		logger.Error("invalid run parameters", "error", err)
		os.Exit(2)
	}

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration incomplete", "error", err)
		os.Exit(1)
	}

	client, err := deepseek.NewClient(deepseek.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
	if err != nil {
		logger.Error("analysis client setup", "error", err)
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

	var notifier *mail.Notifier
	if cfg.EmailConfigured() {
		notifier = mail.NewNotifier(cfg.SMTP, logger)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	var store *history.Store
	if !*noHistory {
		store, err = history.Open(ctx, cfg.History.Path, logger)
		if err != nil {
			logger.Error("open history db", "error", err)
			os.Exit(1)
		}
		defer func() {
			if cerr := store.Close(); cerr != nil {
				logger.Error("close history db", "error", cerr)
			}
		}()
	}

	p := pipeline.NewProcessor(loader, client, notifier, store, cfg.Reports.Dir, logger)
	res, err := p.Run(ctx, pipeline.RunRequest{
		FilePath:       *file,
		Timeline:       timeline,
		IncludeSummary: *summary,
		Email:          *email,
		EmailTo:        *emailTo,
	})
	if err != nil {
		logger.Error("audit failed", "error", err)
		os.Exit(1)
	}

	printScorecard(res)
	if res.EmailError != nil {
		fmt.Printf("\nEmail delivery failed: %v\n", res.EmailError)
	}
	if res.HistoryError != nil {
		fmt.Printf("\nRun not recorded in history: %v\n", res.HistoryError)
	}
}

func printScorecard(res *pipeline.RunResult) {
	rep := res.Report
	fmt.Printf("\nSOW Audit: %s\n", rep.ProjectName)
	fmt.Printf("Score:    %.1f / 100 (%s)\n", rep.Score.Score, rep.Score.RiskRating)
	fmt.Printf("Decision: %s\n", rep.GoNoGo)
	fmt.Printf("Criteria: %d met, %d partial, %d not met\n\n",
		rep.Score.Met, rep.Score.Partial, rep.Score.NotMet)
	for _, f := range rep.Findings {
		fmt.Printf("  %-28s %-8s %s\n", f.Name, f.Status, f.RiskLevel)
	}
	if len(rep.Escalations) > 0 {
		fmt.Println("\nEscalations:")
		for _, e := range rep.Escalations {
			marker := ""
			if e.RequiresEscalation {
				marker = " [BLOCKS DIVESTMENT]"
			}
			fmt.Printf("  - %s (%s, %s)%s\n", e.Pillar, e.Status, e.Risk, marker)
		}
	}
	fmt.Printf("\nReport: %s\n", res.PDFPath)
	printCheck("Pricing language", rep.Pricing.Compliant, rep.Pricing.Issues)
	printCheck("Delivery phases", rep.Schedule.Compliant, rep.Schedule.Issues)
}

func printCheck(label string, ok bool, issues []string) {
	verdict := "PASS"
	if !ok {
		verdict = "FAIL"
	}
	fmt.Printf("%s: %s\n", label, verdict)
	for _, is := range issues {
		fmt.Printf("  - %s\n", is)
	}
}
