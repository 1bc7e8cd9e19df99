package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix = "SPEC2ISSUES"

	defaultAddr             = ":3001"
	defaultFrontendURL      = "http://localhost:5173"
	defaultMaxTokens        = 8192
	defaultMaxDocumentChars = 15000
	defaultMaxBatch         = 50
	defaultPublishDelay     = 200 * time.Millisecond
	defaultGenerateLimit    = 10
	defaultGenerateWindow   = time.Hour
)

type (
	Config struct {
		Language  string          `mapstructure:"language" yaml:"language"`
		Server    ServerConfig    `mapstructure:"server" yaml:"server"`
		Auth      AuthConfig      `mapstructure:"auth" yaml:"auth"`
		AI        AIConfig        `mapstructure:"ai" yaml:"ai"`
		Anthropic ProviderConfig  `mapstructure:"anthropic" yaml:"anthropic"`
		Gemini    ProviderConfig  `mapstructure:"gemini" yaml:"gemini"`
		GitHub    GitHubConfig    `mapstructure:"github" yaml:"github"`
		Publish   PublishConfig   `mapstructure:"publish" yaml:"publish"`
		RateLimit RateLimitConfig `mapstructure:"ratelimit" yaml:"ratelimit"`

		// PathFile is the config file actually read, empty when none was found.
		PathFile string `mapstructure:"-" yaml:"-"`
	}

	ServerConfig struct {
		Addr        string `mapstructure:"addr" yaml:"addr"`
		FrontendURL string `mapstructure:"frontend_url" yaml:"frontend_url"`
	}

	AuthConfig struct {
		JWTSecret string `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	}

	AIConfig struct {
		Provider         AI    `mapstructure:"provider" yaml:"provider"`
		Model            Model `mapstructure:"model" yaml:"model"`
		MaxTokens        int   `mapstructure:"max_tokens" yaml:"max_tokens"`
		MaxDocumentChars int   `mapstructure:"max_document_chars" yaml:"max_document_chars"`
	}

	ProviderConfig struct {
		APIKey  string `mapstructure:"api_key" yaml:"api_key"`
		BaseURL string `mapstructure:"base_url" yaml:"base_url,omitempty"`
	}

	GitHubConfig struct {
		Token   string `mapstructure:"token" yaml:"token"`
		BaseURL string `mapstructure:"base_url" yaml:"base_url,omitempty"`
	}

	PublishConfig struct {
		MaxBatch int           `mapstructure:"max_batch" yaml:"max_batch"`
		Delay    time.Duration `mapstructure:"delay" yaml:"delay"`
	}

	RateLimitConfig struct {
		Generate WindowConfig `mapstructure:"generate" yaml:"generate"`
	}

	WindowConfig struct {
		Limit  int           `mapstructure:"limit" yaml:"limit"`
		Window time.Duration `mapstructure:"window" yaml:"window"`
	}
)

// Surface names the entry point a configuration is validated for.
type Surface string

const (
	SurfaceServer   Surface = "serve"
	SurfaceGenerate Surface = "generate"
	SurfacePublish  Surface = "publish"
	SurfaceMCP      Surface = "mcp"
)

// DefaultConfigPath is ~/.config/spec-to-issues/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "spec-to-issues", "config.yaml")
}

// Load reads path (or the default location when empty) and the environment.
// A missing file is not an error; defaults and env still apply.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		v.SetConfigFile(path)
	} else if def := DefaultConfigPath(); def != "" {
		v.AddConfigPath(filepath.Dir(def))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	cfg.PathFile = v.ConfigFileUsed()
	cfg.applyDerived()

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("language", LangFR)
	v.SetDefault("server.addr", defaultAddr)
	v.SetDefault("server.frontend_url", defaultFrontendURL)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("ai.provider", string(AIAnthropic))
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.max_tokens", defaultMaxTokens)
	v.SetDefault("ai.max_document_chars", defaultMaxDocumentChars)
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.base_url", "")
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.base_url", "")
	v.SetDefault("github.token", "")
	v.SetDefault("github.base_url", "")
	v.SetDefault("publish.max_batch", defaultMaxBatch)
	v.SetDefault("publish.delay", defaultPublishDelay)
	v.SetDefault("ratelimit.generate.limit", defaultGenerateLimit)
	v.SetDefault("ratelimit.generate.window", defaultGenerateWindow)

	// Conventional variable names used by the hosting platform and SDKs.
	bindings := map[string][]string{
		"anthropic.api_key":   {"SPEC2ISSUES_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"},
		"gemini.api_key":      {"SPEC2ISSUES_GEMINI_API_KEY", "GEMINI_API_KEY"},
		"github.token":        {"SPEC2ISSUES_GITHUB_TOKEN", "GITHUB_TOKEN"},
		"auth.jwt_secret":     {"SPEC2ISSUES_AUTH_JWT_SECRET", "JWT_SECRET"},
		"server.frontend_url": {"SPEC2ISSUES_SERVER_FRONTEND_URL", "FRONTEND_URL"},
	}
	for key, envs := range bindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
	if port := os.Getenv("PORT"); port != "" {
		v.SetDefault("server.addr", ":"+port)
	}

	return v
}

func (c *Config) applyDerived() {
	c.Language = GetLocaleConfig(c.Language)
	if c.AI.Model == "" {
		c.AI.Model = DefaultModelForAI(c.AI.Provider)
	}
}

// ProviderAPIKey returns the key of the configured AI provider.
func (c *Config) ProviderAPIKey() string {
	switch c.AI.Provider {
	case AIGemini:
		return c.Gemini.APIKey
	default:
		return c.Anthropic.APIKey
	}
}

// ProviderBaseURL returns the endpoint override of the configured AI provider.
func (c *Config) ProviderBaseURL() string {
	switch c.AI.Provider {
	case AIGemini:
		return c.Gemini.BaseURL
	default:
		return c.Anthropic.BaseURL
	}
}

// Missing lists the configuration keys the given surface needs but lacks.
func (c *Config) Missing(surface Surface) []string {
	var missing []string
	needsAI := surface != SurfacePublish
	if needsAI && c.ProviderAPIKey() == "" {
		missing = append(missing, string(c.AI.Provider)+".api_key")
	}
	switch surface {
	case SurfaceServer:
		if c.Auth.JWTSecret == "" {
			missing = append(missing, "auth.jwt_secret")
		}
	case SurfacePublish, SurfaceMCP:
		if c.GitHub.Token == "" {
			missing = append(missing, "github.token")
		}
	}
	return missing
}

func validateConfig(config *Config) error {
	if !IsSupportedAI(config.AI.Provider) {
		return fmt.Errorf("ai provider not supported: %s", config.AI.Provider)
	}
	if config.AI.MaxTokens <= 0 {
		return errors.New("ai.max_tokens must be greater than 0")
	}
	if config.AI.MaxDocumentChars <= 0 {
		return errors.New("ai.max_document_chars must be greater than 0")
	}
	if config.Publish.MaxBatch <= 0 {
		return errors.New("publish.max_batch must be greater than 0")
	}
	if config.Publish.Delay < 0 {
		return errors.New("publish.delay cannot be negative")
	}
	if config.RateLimit.Generate.Limit <= 0 || config.RateLimit.Generate.Window <= 0 {
		return errors.New("ratelimit.generate needs a positive limit and window")
	}
	return nil
}
