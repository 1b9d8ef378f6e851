package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joseph-ayodele/sow-auditor/constants"
	"github.com/joseph-ayodele/sow-auditor/internal/common"
	"github.com/joseph-ayodele/sow-auditor/internal/llm/deepseek"
)

// redline proposes contract language fixes for a single clause against one
// compliance pillar. The clause comes from -clause or stdin.
func main() {
	var (
		pillar     = flag.String("pillar", "", "pillar to redline against (e.g. \"Pricing Model\")")
		clause     = flag.String("clause", "", "clause text; reads stdin when omitted")
		configPath = flag.String("config", "", "optional YAML config file")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if *pillar == "" {
		fmt.Fprintln(os.Stderr, "usage: redline -pillar <name> [-clause <text>]")
		fmt.Fprintf(os.Stderr, "pillars: %s\n", strings.Join(constants.PillarNames(), ", "))
		os.Exit(2)
	}

	text := *clause
	if text == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			logger.Error("read stdin", "error", err)
			os.Exit(1)
		}
		text = strings.TrimSpace(string(data))
	}
	if text == "" {
		logger.Error("no clause text provided")
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
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	}, logger)
	if err != nil {
		logger.Error("analysis client setup", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	suggestions, err := client.SuggestRedlines(ctx, *pillar, text)
	if err != nil {
		logger.Error("redline failed", "error", err)
		os.Exit(1)
	}

	for i, s := range suggestions {
		fmt.Printf("Suggestion %d\n", i+1)
		fmt.Printf("  Original: %s\n", s.Original)
		fmt.Printf("  Redlined: %s\n", s.Redlined)
		fmt.Printf("  Reason:   %s\n\n", s.Reason)
	}
	if len(suggestions) == 0 {
		fmt.Println("No changes suggested.")
	}
}
