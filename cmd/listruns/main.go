package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joseph-ayodele/sow-auditor/internal/common"
	"github.com/joseph-ayodele/sow-auditor/internal/history"
)

// listruns prints the local audit run history, newest first.
func main() {
	var (
		limit      = flag.Int("limit", 20, "max runs to show (0 = all)")
		configPath = flag.String("config", "", "optional YAML config file")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := history.Open(ctx, cfg.History.Path, logger)
	if err != nil {
		logger.Error("open history db", "path", cfg.History.Path, "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("close history db", "error", cerr)
		}
	}()

	runs, err := store.List(ctx, *limit)
	if err != nil {
		logger.Error("list runs", "error", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Println("No audit runs recorded yet.")
		return
	}

	fmt.Printf("%-20s %-24s %6s  %-11s %-6s %s\n",
		"DATE", "PROJECT", "SCORE", "RATING", "GO?", "REPORT")
	for _, r := range runs {
		fmt.Printf("%-20s %-24s %6.1f  %-11s %-6s %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			clip(r.Project, 24), r.Score, r.RiskRating, r.GoNoGo, r.ReportPath)
	}
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
