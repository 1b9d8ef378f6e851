package common

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	LLM     LLMConfig     `yaml:"llm"`
	SMTP    SMTPConfig    `yaml:"smtp"`
	Parser  ParserConfig  `yaml:"parser"`
	Reports ReportsConfig `yaml:"reports"`
	History HistoryConfig `yaml:"history"`
}

// LLMConfig holds the analysis endpoint configuration. The endpoint is any
// OpenAI-compatible chat/completions API; DeepSeek is the default.
type LLMConfig struct {
	APIKey      string        `yaml:"apiKey"`
	BaseURL     string        `yaml:"baseURL"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	MaxTokens   int           `yaml:"maxTokens"`
	Timeout     time.Duration `yaml:"timeout"`
}

// SMTPConfig holds outbound email settings. Optional; when credentials are
// absent the email feature is disabled but audits still run.
type SMTPConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	Recipient string `yaml:"recipient"`
}

// ParserConfig holds the external extraction tool settings.
type ParserConfig struct {
	Pdftotext     string `yaml:"pdftotext"`
	Pdftoppm      string `yaml:"pdftoppm"`
	Tesseract     string `yaml:"tesseract"`
	TesseractLang string `yaml:"tesseractLang"`
	DPI           int    `yaml:"dpi"`
	MaxPages      int    `yaml:"maxPages"`
	MinWords      int    `yaml:"minWords"`
}

// ReportsConfig holds output locations.
type ReportsConfig struct {
	Dir string `yaml:"dir"`
}

// HistoryConfig holds the local run-history database location.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// LoadConfig loads configuration from an optional YAML file and environment
// variables; env vars win. A .env file next to the binary is honored.
func LoadConfig(yamlPath string) (*Config, error) {
	_ = godotenv.Load() // missing .env is fine

	cfg := &Config{}
	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		if err != nil {
			return nil, ConfigError("read config file " + yamlPath)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, NewAppError("CONFIG_ERROR", "parse config file "+yamlPath, err)
		}
	}

	cfg.LLM = LLMConfig{
		APIKey:      getEnv("DEEPSEEK_API_KEY", cfg.LLM.APIKey),
		BaseURL:     getEnv("DEEPSEEK_BASE_URL", defaultStr(cfg.LLM.BaseURL, "https://api.deepseek.com/v1")),
		Model:       getEnv("DEEPSEEK_MODEL", defaultStr(cfg.LLM.Model, "deepseek-chat")),
		Temperature: getEnvAsFloat32("DEEPSEEK_TEMPERATURE", defaultF32(cfg.LLM.Temperature, 0.3)),
		MaxTokens:   getEnvAsInt("DEEPSEEK_MAX_TOKENS", defaultInt(cfg.LLM.MaxTokens, 4000)),
		Timeout:     getEnvAsDuration("DEEPSEEK_TIMEOUT", defaultDur(cfg.LLM.Timeout, 120*time.Second)),
	}
	cfg.SMTP = SMTPConfig{
		Host:      getEnv("SMTP_SERVER", defaultStr(cfg.SMTP.Host, "smtp.gmail.com")),
		Port:      getEnvAsInt("SMTP_PORT", defaultInt(cfg.SMTP.Port, 587)),
		Username:  getEnv("SMTP_EMAIL", cfg.SMTP.Username),
		Password:  getEnv("SMTP_PASSWORD", cfg.SMTP.Password),
		Recipient: getEnv("RECIPIENT_EMAIL", cfg.SMTP.Recipient),
	}
	cfg.Parser = ParserConfig{
		Pdftotext:     getEnv("PDFTOTEXT_BIN", defaultStr(cfg.Parser.Pdftotext, "pdftotext")),
		Pdftoppm:      getEnv("PDFTOPPM_BIN", defaultStr(cfg.Parser.Pdftoppm, "pdftoppm")),
		Tesseract:     getEnv("TESSERACT_BIN", defaultStr(cfg.Parser.Tesseract, "tesseract")),
		TesseractLang: getEnv("TESSERACT_LANG", defaultStr(cfg.Parser.TesseractLang, "eng")),
		DPI:           getEnvAsInt("OCR_DPI", defaultInt(cfg.Parser.DPI, 300)),
		MaxPages:      getEnvAsInt("OCR_MAX_PAGES", cfg.Parser.MaxPages),
		MinWords:      getEnvAsInt("MIN_TEXT_WORDS", defaultInt(cfg.Parser.MinWords, 50)),
	}
	cfg.Reports = ReportsConfig{
		Dir: getEnv("REPORTS_DIR", defaultStr(cfg.Reports.Dir, "reports")),
	}
	cfg.History = HistoryConfig{
		Path: getEnv("HISTORY_DB", defaultStr(cfg.History.Path, "sow-auditor.db")),
	}
	return cfg, nil
}

// Validate checks configuration required before any audit run; the API key is
// enforced here so a missing key fails before any network call is attempted.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return ConfigError("DEEPSEEK_API_KEY is required")
	}
	if c.LLM.BaseURL == "" {
		return ConfigError("DEEPSEEK_BASE_URL is required")
	}
	return nil
}

// EmailConfigured reports whether SMTP credentials are present.
func (c *Config) EmailConfigured() bool {
	return c.SMTP.Username != "" && c.SMTP.Password != ""
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func defaultStr(v, d string) string {
	if v != "" {
		return v
	}
	return d
}

func defaultInt(v, d int) int {
	if v != 0 {
		return v
	}
	return d
}

func defaultF32(v, d float32) float32 {
	if v != 0 {
		return v
	}
	return d
}

func defaultDur(v, d time.Duration) time.Duration {
	if v != 0 {
		return v
	}
	return d
}
