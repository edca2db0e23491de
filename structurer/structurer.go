// Package structurer turns a manuscript body into a structured document by
// calling the text-generation backend, repairing and decoding its JSON
// response, and retrying with a linear back-off.
package structurer

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"auto_wp_article_publisher/article"
)

const (
	maxRetries = 3
	retryDelay = 2 * time.Second

	// snippetLimit bounds how much of an unparsable response is surfaced in
	// the final error.
	snippetLimit = 500
)

// StructuringError is returned once every attempt has failed.
type StructuringError struct {
	msg string
}

func (e *StructuringError) Error() string { return e.msg }

// Structurer wraps an LLMClient with prompt assembly, response repair, and
// retry. The instruction template defines the required output shape and is
// included verbatim at the front of every prompt.
type Structurer struct {
	llm            LLMClient
	promptTemplate string
	log            zerolog.Logger
	sleep          func(time.Duration)
}

func New(llm LLMClient, promptTemplate string, log zerolog.Logger) *Structurer {
	if promptTemplate == "" {
		promptTemplate = defaultPromptTemplate
	}
	return &Structurer{
		llm:            llm,
		promptTemplate: promptTemplate,
		log:            log,
		sleep:          time.Sleep,
	}
}

// Structure converts the manuscript body into a Document. It retries up to 3
// times with a linearly increasing delay (base × attempt number) before
// giving up with the last error.
func (s *Structurer) Structure(ctx context.Context, content, title string) (*article.Document, error) {
	var prompt strings.Builder
	prompt.WriteString(s.promptTemplate)
	if title != "" {
		prompt.WriteString("\n### Title: " + title + "\n")
	}
	prompt.WriteString("\n" + content)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		raw, err := s.llm.Generate(ctx, prompt.String())
		if err == nil {
			doc, parseErr := parseResponse(raw)
			if parseErr == nil {
				return doc, nil
			}
			err = parseErr
		}
		lastErr = err
		s.log.Warn().Err(err).Int("attempt", attempt).Msg("structuring attempt failed")
		if attempt < maxRetries {
			s.sleep(retryDelay * time.Duration(attempt))
		}
	}
	return nil, &StructuringError{
		msg: fmt.Sprintf("structuring backend failed after %d retries: %v", maxRetries, lastErr),
	}
}

var (
	fenceOpen     = regexp.MustCompile("^```(?:json)?\\s*\\n?")
	fenceClose    = regexp.MustCompile("\\n?```\\s*$")
	trailingComma = regexp.MustCompile(`,(\s*[\]}])`)
)

// parseResponse repairs and decodes one backend response: a surrounding
// fenced code block is stripped, and trailing commas before a closing
// delimiter are removed. Anything still undecodable fails the attempt.
func parseResponse(raw string) (*article.Document, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = fenceOpen.ReplaceAllString(text, "")
		text = fenceClose.ReplaceAllString(text, "")
	}
	text = trailingComma.ReplaceAllString(text, "$1")

	doc, err := article.Decode([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %v\nraw text: %s", err, snippet(text))
	}
	return doc, nil
}

func snippet(text string) string {
	if len(text) <= snippetLimit {
		return text
	}
	return text[:snippetLimit] + "..."
}
