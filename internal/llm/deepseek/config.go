package deepseek

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/joseph-ayodele/sow-auditor/internal/common"
)

// Config for the DeepSeek client. The API is OpenAI-compatible, so any
// chat/completions endpoint works by pointing BaseURL elsewhere.
type Config struct {
	APIKey      string        // if empty, falls back to env DEEPSEEK_API_KEY
	BaseURL     string        // default https://api.deepseek.com/v1
	Model       string        // e.g., "deepseek-chat"
	Temperature float32       // 0..2
	MaxTokens   int
	Timeout     time.Duration // http client timeout
}

type Client struct {
	cfg    Config
	api    *openai.Client
	logger *slog.Logger
}

// NewClient validates credentials up front so a missing API key fails before
// any network call is attempted.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("DEEPSEEK_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, common.ConfigError("DEEPSEEK_API_KEY is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.deepseek.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "deepseek-chat"
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.3
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4000
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = cfg.BaseURL
	apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		cfg:    cfg,
		api:    openai.NewClientWithConfig(apiCfg),
		logger: logger,
	}, nil
}
