package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/joseph-ayodele/sow-auditor/internal/common"
)

// checkenv verifies the runtime prerequisites without touching any document:
// credentials, the external extraction tools, and the SMTP settings.
func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	probe := flag.Bool("probe", false, "actually connect to the SMTP server")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("FAIL  config: %v\n", err)
		os.Exit(1)
	}

	failed := false
	check := func(label string, ok bool, detail string) {
		verdict := "ok  "
		if !ok {
			verdict = "FAIL"
			failed = true
		}
		fmt.Printf("%s  %-22s %s\n", verdict, label, detail)
	}
	optional := func(label string, ok bool, detail string) {
		verdict := "ok  "
		if !ok {
			verdict = "skip"
		}
		fmt.Printf("%s  %-22s %s\n", verdict, label, detail)
	}

	check("DEEPSEEK_API_KEY", cfg.LLM.APIKey != "", mask(cfg.LLM.APIKey))
	check("DEEPSEEK_BASE_URL", cfg.LLM.BaseURL != "", cfg.LLM.BaseURL)
	check("model", cfg.LLM.Model != "", cfg.LLM.Model)

	for _, tool := range []struct{ label, bin string }{
		{"pdftotext", cfg.Parser.Pdftotext},
		{"pdftoppm", cfg.Parser.Pdftoppm},
		{"tesseract", cfg.Parser.Tesseract},
	} {
		path, err := exec.LookPath(tool.bin)
		if err != nil {
			check(tool.label, false, tool.bin+" not found in PATH")
			continue
		}
		check(tool.label, true, path)
	}

	if cfg.EmailConfigured() {
		optional("smtp", true, fmt.Sprintf("%s:%d as %s", cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username))
		optional("recipient", cfg.SMTP.Recipient != "", cfg.SMTP.Recipient)
		if *probe {
			if err := probeSMTP(cfg); err != nil {
				check("smtp probe", false, err.Error())
			} else {
				check("smtp probe", true, "STARTTLS handshake and auth succeeded")
			}
		}
	} else {
		optional("smtp", false, "SMTP_EMAIL / SMTP_PASSWORD not set; email delivery disabled")
	}

	fmt.Printf("\nreports dir: %s\nhistory db:  %s\n", cfg.Reports.Dir, cfg.History.Path)
	if failed {
		os.Exit(1)
	}
}

func probeSMTP(cfg *common.Config) error {
	client, err := gomail.NewClient(cfg.SMTP.Host,
		gomail.WithPort(cfg.SMTP.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.SMTP.Username),
		gomail.WithPassword(cfg.SMTP.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := client.DialWithContext(ctx); err != nil {
		return err
	}
	return client.Close()
}

func mask(s string) string {
	if len(s) <= 8 {
		if s == "" {
			return "(unset)"
		}
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
