// Package article defines the structured document produced by the AI
// structuring step and consumed by validation and block rendering.
package article

import "encoding/json"

// Document is a structured article. Raw keeps the decoded JSON object as-is
// for persistence and debugging; the typed fields are derived from it once at
// decode time.
type Document struct {
	Lead       string
	Points     *Callout
	Conclusion *Callout // legacy key, only honored when Points is absent
	Sections   []Section
	Summary    *Callout
	Raw        map[string]any
}

// Callout is a titled bullet list (points, summary, legacy conclusion).
type Callout struct {
	Title string
	Items []string
}

// Decode parses a JSON object into a Document. Section entries with an
// unknown or missing type decode as paragraphs rather than failing.
func Decode(data []byte) (*Document, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	doc := &Document{
		Lead: asString(raw["lead"]),
		Raw:  raw,
	}
	if v, ok := raw["points"]; ok {
		doc.Points = decodeCallout(v)
	}
	if v, ok := raw["conclusion"]; ok {
		doc.Conclusion = decodeCallout(v)
	}
	if v, ok := raw["summary"]; ok {
		doc.Summary = decodeCallout(v)
	}
	if sections, ok := raw["sections"].([]any); ok {
		for _, s := range sections {
			doc.Sections = append(doc.Sections, decodeSection(s))
		}
	}
	return doc, nil
}

// MarshalRaw renders the original decoded object as indented JSON, for the
// on-disk artifact.
func (d *Document) MarshalRaw() ([]byte, error) {
	return json.MarshalIndent(d.Raw, "", "  ")
}

// Empty reports whether the callout carries no usable content.
func (c *Callout) Empty() bool {
	return c == nil || (c.Title == "" && len(c.Items) == 0)
}

// decodeCallout accepts the shapes the model has been observed to emit: a
// bare string, a list of strings, or an object with title/items (falling back
// to a single text field).
func decodeCallout(v any) *Callout {
	switch t := v.(type) {
	case string:
		return &Callout{Items: []string{t}}
	case []any:
		return &Callout{Items: asStringSlice(t)}
	case map[string]any:
		c := &Callout{Title: asString(t["title"])}
		if items, ok := t["items"].([]any); ok {
			c.Items = asStringSlice(items)
		} else {
			c.Items = []string{asString(t["text"])}
		}
		return c
	default:
		return &Callout{}
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asStringSlice(items []any) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, asString(it))
	}
	return out
}

func asInt(v any, fallback int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return fallback
	}
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}
