package cli

import (
	"os"

	"github.com/rs/zerolog"

	"auto_wp_article_publisher/blocks"
	"auto_wp_article_publisher/config"
	"auto_wp_article_publisher/history"
	"auto_wp_article_publisher/loader"
	"auto_wp_article_publisher/pipeline"
	"auto_wp_article_publisher/publisher"
	"auto_wp_article_publisher/structurer"
	"auto_wp_article_publisher/validator"
)

// buildRunner assembles the full pipeline from configuration.
func buildRunner(cfg *config.Config, log zerolog.Logger, confirm func(string) bool) (*pipeline.Runner, error) {
	llm, err := structurer.NewGeminiLLM(&structurer.Settings{
		APIKey:      cfg.Gemini.APIKey,
		Model:       cfg.Gemini.Model,
		BaseURL:     cfg.Gemini.BaseURL,
		Temperature: cfg.Gemini.Temperature,
	})
	if err != nil {
		return nil, err
	}

	pub, err := buildPublisher(cfg, log)
	if err != nil {
		return nil, err
	}

	return pipeline.NewRunner(pipeline.Params{
		Loader:          loader.New(),
		Structurer:      structurer.New(llm, readOptionalFile(cfg.Prompt.TemplateFile, log), log),
		Validator:       validator.New(),
		Generator:       blocks.New(ctaTemplate(cfg, log)),
		Publisher:       pub,
		History:         history.New(cfg.History.File, log),
		Output:          cfg.Output,
		DefaultCategory: cfg.WordPress.DefaultCategory,
		DefaultStatus:   cfg.WordPress.DefaultStatus,
		CTAEnabled:      cfg.CTA.Enabled,
		Confirm:         confirm,
		Log:             log,
	}), nil
}

func buildPublisher(cfg *config.Config, log zerolog.Logger) (*publisher.Publisher, error) {
	pubCfg := publisher.Config{
		SiteURL:     cfg.WordPress.SiteURL,
		Username:    cfg.WordPress.Username,
		AppPassword: cfg.WordPress.AppPassword,
	}
	if cfg.WordPress.BasicAuth.Enabled {
		pubCfg.BasicAuthUser = cfg.WordPress.BasicAuth.Username
		pubCfg.BasicAuthPass = cfg.WordPress.BasicAuth.Password
	}
	return publisher.New(pubCfg, nil, log)
}

func ctaTemplate(cfg *config.Config, log zerolog.Logger) string {
	if !cfg.CTA.Enabled {
		return ""
	}
	return readOptionalFile(cfg.CTA.TemplateFile, log)
}

// readOptionalFile returns the file's contents, or "" when the path is empty
// or the file is absent. Template files are optional; the built-in defaults
// take over.
func readOptionalFile(path string, log zerolog.Logger) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("template file unreadable, using default")
		}
		return ""
	}
	return string(data)
}
