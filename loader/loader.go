// Package loader reads manuscript files: a YAML frontmatter header followed
// by the Markdown body.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Draft is one parsed manuscript. Built once per Load call and not mutated
// afterwards.
type Draft struct {
	Title         string
	Slug          string
	Description   string
	Content       string
	Category      string
	Tags          []string
	Status        string
	FeaturedImage string
	ScheduledAt   string
	SourceFile    string
}

// LoadError is returned for any manuscript that cannot be turned into a
// Draft: missing file, missing or invalid frontmatter, missing required
// fields. Always fatal for that manuscript, never retried.
type LoadError struct {
	msg string
}

func (e *LoadError) Error() string { return e.msg }

func loadErrorf(format string, args ...any) *LoadError {
	return &LoadError{msg: fmt.Sprintf(format, args...)}
}

type frontmatter struct {
	Title         string   `yaml:"title"`
	Slug          string   `yaml:"slug"`
	Description   string   `yaml:"description"`
	Category      string   `yaml:"category"`
	Tags          []string `yaml:"tags"`
	Status        string   `yaml:"status"`
	FeaturedImage string   `yaml:"featured_image"`
	ScheduledAt   string   `yaml:"scheduled_at"`
}

func (fm frontmatter) validate() error {
	return validation.ValidateStruct(&fm,
		validation.Field(&fm.Title, validation.Required),
		validation.Field(&fm.Slug, validation.Required),
		validation.Field(&fm.Description, validation.Required),
	)
}

// Loader parses manuscript files into Drafts. No network access, no writes.
type Loader struct{}

func New() *Loader {
	return &Loader{}
}

// Load reads the manuscript at path and returns the parsed Draft.
func (l *Loader) Load(path string) (*Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, loadErrorf("file not found: %s", path)
		}
		return nil, loadErrorf("failed to read file: %v", err)
	}

	meta, body, err := splitFrontmatter(string(data))
	if err != nil {
		return nil, err
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(meta), &fm); err != nil {
		return nil, loadErrorf("invalid frontmatter: %v", err)
	}
	if err := fm.validate(); err != nil {
		return nil, loadErrorf("missing required field: %v", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	return &Draft{
		Title:         fm.Title,
		Slug:          fm.Slug,
		Description:   fm.Description,
		Content:       strings.TrimRight(body, " \t\r\n"),
		Category:      fm.Category,
		Tags:          fm.Tags,
		Status:        fm.Status,
		FeaturedImage: fm.FeaturedImage,
		ScheduledAt:   fm.ScheduledAt,
		SourceFile:    abs,
	}, nil
}

const sentinel = "---"

// splitFrontmatter separates the YAML header from the body. The header must
// open the file with a sentinel line and close with a matching one.
func splitFrontmatter(content string) (meta, body string, err error) {
	lines := strings.SplitAfter(content, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t\r\n") != sentinel {
		return "", "", loadErrorf("invalid frontmatter: missing YAML header (%s)", sentinel)
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t\r\n") == sentinel {
			meta = strings.Join(lines[1:i], "")
			body = strings.Join(lines[i+1:], "")
			return meta, body, nil
		}
	}
	return "", "", loadErrorf("invalid frontmatter: missing closing %s", sentinel)
}
