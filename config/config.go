// Package config loads the tool configuration: a YAML file layered over
// defaults, with credentials overridable from the environment.
package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

// Config holds all settings for one run.
type Config struct {
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	WordPress WordPressConfig `mapstructure:"wordpress"`
	Output    OutputConfig    `mapstructure:"output"`
	CTA       CTAConfig       `mapstructure:"cta"`
	Prompt    PromptConfig    `mapstructure:"prompt"`
	History   HistoryConfig   `mapstructure:"history"`
	Log       LogConfig       `mapstructure:"log"`
}

// GeminiConfig configures the structuring backend.
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	BaseURL     string  `mapstructure:"base_url"`
}

// WordPressConfig configures the content API.
type WordPressConfig struct {
	SiteURL         string          `mapstructure:"site_url"`
	Username        string          `mapstructure:"username"`
	AppPassword     string          `mapstructure:"app_password"`
	DefaultCategory string          `mapstructure:"default_category"`
	DefaultStatus   string          `mapstructure:"default_status"`
	BasicAuth       BasicAuthConfig `mapstructure:"basic_auth"`
}

// BasicAuthConfig is the optional server Basic credential in front of the
// content API.
type BasicAuthConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// OutputConfig controls the optional on-disk artifacts.
type OutputConfig struct {
	SaveJSON bool   `mapstructure:"save_json"`
	SaveHTML bool   `mapstructure:"save_html"`
	JSONDir  string `mapstructure:"json_dir"`
	HTMLDir  string `mapstructure:"html_dir"`
}

// CTAConfig points at the call-to-action fragment appended to renders.
type CTAConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	TemplateFile string `mapstructure:"template_file"`
}

// PromptConfig points at the operator-supplied instruction template.
type PromptConfig struct {
	TemplateFile string `mapstructure:"template_file"`
}

// HistoryConfig locates the publish history store.
type HistoryConfig struct {
	File string `mapstructure:"file"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// Load reads configuration from path (or the default search locations when
// path is empty). A missing config file is fine; defaults and environment
// variables still apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.temperature", 0.3)
	v.SetDefault("wordpress.default_category", "コラム")
	v.SetDefault("wordpress.default_status", "draft")
	v.SetDefault("output.save_json", true)
	v.SetDefault("output.save_html", true)
	v.SetDefault("output.json_dir", "output/json")
	v.SetDefault("output.html_dir", "output/html")
	v.SetDefault("cta.enabled", true)
	v.SetDefault("cta.template_file", "block-html/posts/cta.txt")
	v.SetDefault("prompt.template_file", "docs/prompts/article_structure.md")
	v.SetDefault("history.file", "output/post_history.yaml")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	// Credentials come from the environment when the file omits them; the
	// variable names predate this config layer.
	v.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	v.BindEnv("wordpress.site_url", "WP_SITE_URL")
	v.BindEnv("wordpress.username", "WP_USERNAME")
	v.BindEnv("wordpress.app_password", "WP_APP_PASSWORD")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
