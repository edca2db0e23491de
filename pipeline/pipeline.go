// Package pipeline sequences one manuscript through load, structuring,
// validation, rendering, and publication.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"auto_wp_article_publisher/article"
	"auto_wp_article_publisher/blocks"
	"auto_wp_article_publisher/config"
	"auto_wp_article_publisher/loader"
	"auto_wp_article_publisher/publisher"
	"auto_wp_article_publisher/validator"
)

// ErrAborted is returned when the operator declines a confirmation prompt.
var ErrAborted = errors.New("aborted by operator")

// Structurer produces a structured document from a manuscript body.
type Structurer interface {
	Structure(ctx context.Context, content, title string) (*article.Document, error)
}

// Publisher is the content API surface the pipeline needs.
type Publisher interface {
	FindPostBySlug(ctx context.Context, slug string) (int, bool)
	CreatePost(ctx context.Context, params publisher.PostParams) (*publisher.PostResult, error)
	UpdatePost(ctx context.Context, postID int, params publisher.UpdateParams) (*publisher.PostResult, error)
	GetCategoryID(ctx context.Context, name string) (int, bool)
	GetTagIDs(ctx context.Context, names []string) []int
}

// History is the publish history surface the pipeline needs.
type History interface {
	FindBySlug(slug string) (int, bool)
	SaveCreated(slug string, postID int, title, sourceFile string)
	SaveUpdated(slug, title string)
}

// Options are the per-invocation operator switches.
type Options struct {
	DryRun         bool
	Publish        bool
	Confirm        bool
	ForceUpdate    bool
	ForceNew       bool
	NoCTA          bool
	SkipValidation bool
}

// Params wires a Runner.
type Params struct {
	Loader          *loader.Loader
	Structurer      Structurer
	Validator       *validator.Validator
	Generator       *blocks.Generator
	Publisher       Publisher
	History         History
	Output          config.OutputConfig
	DefaultCategory string
	DefaultStatus   string
	CTAEnabled      bool
	// Confirm asks the operator a yes/no question. Nil declines everything.
	Confirm func(prompt string) bool
	Log     zerolog.Logger
}

// Runner processes manuscripts one at a time; a failure on one document
// never aborts later documents.
type Runner struct {
	p Params
}

func NewRunner(p Params) *Runner {
	if p.Confirm == nil {
		p.Confirm = func(string) bool { return false }
	}
	return &Runner{p: p}
}

// Run processes each file in input order and reports how many succeeded and
// failed.
func (r *Runner) Run(ctx context.Context, files []string, opts Options) (succeeded, failed int) {
	for _, file := range files {
		if err := r.ProcessFile(ctx, file, opts); err != nil {
			r.p.Log.Error().Err(err).Str("file", file).Msg("document failed")
			failed++
			continue
		}
		succeeded++
	}
	return succeeded, failed
}

// ProcessFile runs the full pipeline for one manuscript.
func (r *Runner) ProcessFile(ctx context.Context, path string, opts Options) error {
	log := r.p.Log.With().Str("file", path).Logger()

	log.Info().Msg("loading manuscript")
	draft, err := r.p.Loader.Load(path)
	if err != nil {
		return err
	}
	log = log.With().Str("slug", draft.Slug).Logger()
	log.Info().Str("title", draft.Title).Msg("manuscript loaded")

	log.Info().Msg("structuring")
	doc, err := r.p.Structurer.Structure(ctx, draft.Content, draft.Title)
	if err != nil {
		return err
	}

	if r.p.Output.SaveJSON {
		if err := r.saveJSON(draft.Slug, doc); err != nil {
			return err
		}
	}

	if !opts.SkipValidation {
		result := r.p.Validator.Validate(doc)
		log.Info().Msg(result.Report())
		if !result.IsValid() {
			return fmt.Errorf("validation failed: %d error(s)", len(result.Errors))
		}
	}

	if opts.Confirm && !r.p.Confirm("Structuring complete. Continue? [y/n]: ") {
		return ErrAborted
	}

	log.Info().Msg("rendering blocks")
	includeCta := !opts.NoCTA && r.p.CTAEnabled
	markup := r.p.Generator.Generate(doc, includeCta)
	log.Info().Int("blocks", strings.Count(markup, "<!-- wp:")).Msg("blocks rendered")

	if r.p.Output.SaveHTML {
		if err := r.saveHTML(draft.Slug, markup); err != nil {
			return err
		}
	}

	if opts.DryRun {
		log.Info().Msg("dry run complete, publish skipped")
		return nil
	}

	return r.publish(ctx, log, draft, markup, opts)
}

func (r *Runner) publish(ctx context.Context, log zerolog.Logger, draft *loader.Draft, markup string, opts Options) error {
	existingID := 0
	if !opts.ForceNew {
		if id, ok := r.p.History.FindBySlug(draft.Slug); ok {
			existingID = id
		} else if id, ok := r.p.Publisher.FindPostBySlug(ctx, draft.Slug); ok {
			existingID = id
		}
	}

	status := r.resolveStatus(draft, opts)

	var result *publisher.PostResult
	var err error
	if existingID != 0 {
		if !opts.ForceUpdate {
			prompt := fmt.Sprintf("Existing post found (ID: %d). Update? [y/n]: ", existingID)
			if !r.p.Confirm(prompt) {
				return ErrAborted
			}
		}
		log.Info().Int("post_id", existingID).Msg("updating existing post")
		result, err = r.p.Publisher.UpdatePost(ctx, existingID, publisher.UpdateParams{
			Title:           draft.Title,
			Content:         markup,
			Status:          status,
			MetaDescription: draft.Description,
		})
		if err != nil {
			return err
		}
		r.p.History.SaveUpdated(draft.Slug, draft.Title)
	} else {
		categoryID := 0
		categoryName := draft.Category
		if categoryName == "" {
			categoryName = r.p.DefaultCategory
		}
		if categoryName != "" {
			if id, ok := r.p.Publisher.GetCategoryID(ctx, categoryName); ok {
				categoryID = id
			}
		}

		var tagIDs []int
		if len(draft.Tags) > 0 {
			tagIDs = r.p.Publisher.GetTagIDs(ctx, draft.Tags)
		}

		log.Info().Msg("creating post")
		result, err = r.p.Publisher.CreatePost(ctx, publisher.PostParams{
			Title:           draft.Title,
			Content:         markup,
			Slug:            draft.Slug,
			Status:          status,
			CategoryID:      categoryID,
			TagIDs:          tagIDs,
			MetaDescription: draft.Description,
		})
		if err != nil {
			return err
		}
		r.p.History.SaveCreated(draft.Slug, result.PostID, draft.Title, draft.SourceFile)
	}

	log.Info().
		Int("post_id", result.PostID).
		Str("action", result.Action).
		Str("status", result.Status).
		Str("edit_url", result.EditURL).
		Msg("publish complete")
	return nil
}

// resolveStatus picks the post status: the --publish switch wins, then the
// manuscript's own status, then the configured default.
func (r *Runner) resolveStatus(draft *loader.Draft, opts Options) string {
	if opts.Publish {
		return "publish"
	}
	if draft.Status != "" {
		return draft.Status
	}
	if r.p.DefaultStatus != "" {
		return r.p.DefaultStatus
	}
	return "draft"
}

func (r *Runner) saveJSON(slug string, doc *article.Document) error {
	data, err := doc.MarshalRaw()
	if err != nil {
		return fmt.Errorf("failed to save JSON artifact: %w", err)
	}
	path := filepath.Join(r.p.Output.JSONDir, slug+".json")
	if err := writeArtifact(path, data); err != nil {
		return err
	}
	r.p.Log.Info().Str("path", path).Msg("JSON artifact saved")
	return nil
}

func (r *Runner) saveHTML(slug, markup string) error {
	path := filepath.Join(r.p.Output.HTMLDir, slug+".txt")
	if err := writeArtifact(path, []byte(markup)); err != nil {
		return err
	}
	r.p.Log.Info().Str("path", path).Msg("HTML artifact saved")
	return nil
}

func writeArtifact(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to save artifact: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save artifact: %w", err)
	}
	return nil
}
