// Package validator is the editorial quality gate over a structured
// document. Errors block publication, warnings do not.
package validator

import (
	"fmt"
	"strings"

	"auto_wp_article_publisher/article"
)

// Rule thresholds. Fixed constants of the engine, not configurable per call.
const (
	MinH2Count         = 3
	MaxH2Count         = 5
	RequiredPointItems = 3
	MinSummaryItems    = 4
	MinFAQItems        = 2
)

// Issue is one recorded finding.
type Issue struct {
	Code    string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s", i.Code, i.Message)
}

// Result collects the findings of one validation pass.
type Result struct {
	Errors   []Issue
	Warnings []Issue
}

func (r *Result) addError(code, message string) {
	r.Errors = append(r.Errors, Issue{Code: code, Message: message})
}

func (r *Result) addWarning(code, message string) {
	r.Warnings = append(r.Warnings, Issue{Code: code, Message: message})
}

// IsValid reports whether the document may proceed to rendering.
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}

func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Report renders a human-readable summary of the findings.
func (r *Result) Report() string {
	lines := []string{"[Validation]"}
	for _, e := range r.Errors {
		lines = append(lines, fmt.Sprintf("  ✗ Error: %s", e))
	}
	for _, w := range r.Warnings {
		lines = append(lines, fmt.Sprintf("  ⚠ Warning: %s", w))
	}
	if len(r.Errors) == 0 && len(r.Warnings) == 0 {
		lines = append(lines, "  ✓ all checks passed")
	}
	switch {
	case !r.IsValid():
		lines = append(lines, fmt.Sprintf("\nresult: %d error(s), cannot continue", len(r.Errors)))
	case r.HasWarnings():
		lines = append(lines, fmt.Sprintf("\nresult: %d warning(s), continuing", len(r.Warnings)))
	default:
		lines = append(lines, "\nresult: ok")
	}
	return strings.Join(lines, "\n")
}

// Validator checks a structured document against the editorial rules.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// Validate evaluates every rule independently; it never short-circuits and
// never fails.
func (v *Validator) Validate(doc *article.Document) *Result {
	result := &Result{}
	v.checkRequiredFields(doc, result)
	v.checkHeadings(doc, result)
	v.checkBlockTypes(doc, result)
	v.checkPoints(doc, result)
	v.checkSummary(doc, result)
	return result
}

func (v *Validator) checkRequiredFields(doc *article.Document, result *Result) {
	if doc.Lead == "" {
		result.addError("ERR-003", "lead is missing")
	}
	if len(doc.Sections) == 0 {
		result.addError("ERR-001", "sections is missing")
	}
	if doc.Summary.Empty() {
		result.addError("ERR-002", "summary is missing")
	}
}

func (v *Validator) checkHeadings(doc *article.Document, result *Result) {
	h2Count := 0
	for _, s := range doc.Sections {
		if h, ok := s.(article.Heading); ok && h.Level == 2 {
			h2Count++
		}
	}
	if h2Count == 0 {
		result.addError("ERR-001", "document has no h2 headings")
	} else if h2Count < MinH2Count || h2Count > MaxH2Count {
		result.addWarning("WRN-001", fmt.Sprintf("%d h2 headings (recommended: %d-%d)", h2Count, MinH2Count, MaxH2Count))
	}
}

func (v *Validator) checkBlockTypes(doc *article.Document, result *Result) {
	hasTable := false
	hasWarning := false
	faqItems := 0
	for _, s := range doc.Sections {
		switch sec := s.(type) {
		case article.Table:
			hasTable = true
		case article.Warning:
			hasWarning = true
		case article.FAQ:
			faqItems += len(sec.Items)
		}
	}
	if !hasTable && !hasWarning {
		result.addWarning("WRN-002", "neither a table nor a warning section (one of them recommended)")
	}
	if faqItems < MinFAQItems {
		result.addWarning("WRN-003", fmt.Sprintf("%d FAQ items (at least %d recommended)", faqItems, MinFAQItems))
	}
}

func (v *Validator) checkPoints(doc *article.Document, result *Result) {
	count := 0
	if doc.Points != nil {
		count = len(doc.Points.Items)
	}
	if count != RequiredPointItems {
		result.addWarning("WRN-004", fmt.Sprintf("points has %d items (%d recommended)", count, RequiredPointItems))
	}
}

func (v *Validator) checkSummary(doc *article.Document, result *Result) {
	count := 0
	if doc.Summary != nil {
		count = len(doc.Summary.Items)
	}
	if count < MinSummaryItems {
		result.addWarning("WRN-005", fmt.Sprintf("summary has %d items (at least %d recommended)", count, MinSummaryItems))
	}
}
