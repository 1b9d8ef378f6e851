package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	// getEnv treats empty as unset, so blanking shields against ambient env
	for _, key := range []string{
		"DEEPSEEK_BASE_URL", "DEEPSEEK_MODEL", "DEEPSEEK_MAX_TOKENS",
		"DEEPSEEK_TIMEOUT", "SMTP_SERVER", "SMTP_PORT",
		"OCR_DPI", "MIN_TEXT_WORDS", "REPORTS_DIR",
	} {
		t.Setenv(key, "")
	}
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLM.BaseURL != "https://api.deepseek.com/v1" {
		t.Errorf("base url = %q", cfg.LLM.BaseURL)
	}
	if cfg.LLM.Model != "deepseek-chat" {
		t.Errorf("model = %q", cfg.LLM.Model)
	}
	if cfg.LLM.MaxTokens != 4000 || cfg.LLM.Timeout != 120*time.Second {
		t.Errorf("llm defaults = %+v", cfg.LLM)
	}
	if cfg.SMTP.Host != "smtp.gmail.com" || cfg.SMTP.Port != 587 {
		t.Errorf("smtp defaults = %+v", cfg.SMTP)
	}
	if cfg.Parser.MinWords != 50 || cfg.Parser.DPI != 300 {
		t.Errorf("parser defaults = %+v", cfg.Parser)
	}
	if cfg.Reports.Dir != "reports" {
		t.Errorf("reports dir = %q", cfg.Reports.Dir)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")
	t.Setenv("DEEPSEEK_MODEL", "deepseek-reasoner")
	t.Setenv("DEEPSEEK_TIMEOUT", "30s")
	t.Setenv("OCR_DPI", "150")
	t.Setenv("REPORTS_DIR", "/tmp/out")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLM.APIKey != "sk-test" || cfg.LLM.Model != "deepseek-reasoner" {
		t.Errorf("env overrides lost: %+v", cfg.LLM)
	}
	if cfg.LLM.Timeout != 30*time.Second {
		t.Errorf("timeout = %v", cfg.LLM.Timeout)
	}
	if cfg.Parser.DPI != 150 {
		t.Errorf("dpi = %d", cfg.Parser.DPI)
	}
	if cfg.Reports.Dir != "/tmp/out" {
		t.Errorf("reports dir = %q", cfg.Reports.Dir)
	}
}

func TestLoadConfigYAMLThenEnvWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
llm:
  model: from-yaml
  maxTokens: 1000
smtp:
  host: mail.example.com
  recipient: audits@example.com
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DEEPSEEK_MODEL", "from-env")
	t.Setenv("SMTP_SERVER", "")
	t.Setenv("RECIPIENT_EMAIL", "")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLM.Model != "from-env" {
		t.Errorf("env must win over yaml: %q", cfg.LLM.Model)
	}
	if cfg.LLM.MaxTokens != 1000 {
		t.Errorf("yaml value lost: %d", cfg.LLM.MaxTokens)
	}
	if cfg.SMTP.Host != "mail.example.com" || cfg.SMTP.Recipient != "audits@example.com" {
		t.Errorf("yaml smtp lost: %+v", cfg.SMTP)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("want error for missing config file")
	}
}

func TestValidateRequiresAPIKey(t *testing.T) {
	cfg := &Config{}
	cfg.LLM.BaseURL = "https://api.deepseek.com/v1"
	if err := cfg.Validate(); err == nil {
		t.Fatal("missing API key must fail validation")
	}
	cfg.LLM.APIKey = "sk-test"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestEmailConfigured(t *testing.T) {
	cfg := &Config{}
	if cfg.EmailConfigured() {
		t.Error("empty credentials must not count as configured")
	}
	cfg.SMTP.Username = "a@b.c"
	cfg.SMTP.Password = "pw"
	if !cfg.EmailConfigured() {
		t.Error("credentials present, want configured")
	}
}
