package article

// Section is a closed set of block kinds in document reading order. The
// renderer switches over the concrete types; anything the decoder does not
// recognize becomes a Paragraph.
type Section interface {
	section()
}

type Heading struct {
	Level int
	Text  string
}

type Paragraph struct {
	Text string
}

type List struct {
	Items   []string
	Ordered bool
}

// QA is a single question/answer pair inside an FAQ section.
type QA struct {
	Question string
	Answer   string
}

// FAQ carries either one inline pair or a batched Items list.
type FAQ struct {
	Question string
	Answer   string
	Items    []QA
}

type Box struct {
	Title   string
	Content string
	Style   string // info, success, warning
}

type Warning struct {
	Content string
}

type Table struct {
	Headers []string
	Rows    [][]string
	Caption string
}

type Spacer struct {
	Height string
}

func (Heading) section()   {}
func (Paragraph) section() {}
func (List) section()      {}
func (FAQ) section()       {}
func (Box) section()       {}
func (Warning) section()   {}
func (Table) section()     {}
func (Spacer) section()    {}

func decodeSection(v any) Section {
	// A bare string is shorthand for a paragraph.
	if s, ok := v.(string); ok {
		return Paragraph{Text: s}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return Paragraph{}
	}

	switch asString(m["type"]) {
	case "heading":
		return Heading{
			Level: asInt(m["level"], 2),
			Text:  asString(m["text"]),
		}
	case "list":
		items, _ := m["items"].([]any)
		return List{
			Items:   asStringSlice(items),
			Ordered: asBool(m["ordered"]),
		}
	case "faq":
		return decodeFAQ(m)
	case "box":
		return Box{
			Title:   asString(m["title"]),
			Content: asString(m["content"]),
			Style:   asString(m["style"]),
		}
	case "warning":
		content := asString(m["content"])
		if content == "" {
			content = asString(m["text"])
		}
		return Warning{Content: content}
	case "table":
		headers, _ := m["headers"].([]any)
		return Table{
			Headers: asStringSlice(headers),
			Rows:    decodeRows(m["rows"]),
			Caption: asString(m["caption"]),
		}
	case "spacer":
		return Spacer{Height: asString(m["height"])}
	default:
		return Paragraph{Text: asString(m["text"])}
	}
}

func decodeFAQ(m map[string]any) FAQ {
	faq := FAQ{
		Question: firstString(m, "q", "question"),
		Answer:   firstString(m, "a", "answer"),
	}
	if items, ok := m["items"].([]any); ok {
		for _, it := range items {
			pair, ok := it.(map[string]any)
			if !ok {
				continue
			}
			faq.Items = append(faq.Items, QA{
				Question: firstString(pair, "q", "question"),
				Answer:   firstString(pair, "a", "answer"),
			})
		}
	}
	return faq
}

func decodeRows(v any) [][]string {
	rows, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells, ok := r.([]any)
		if !ok {
			continue
		}
		out = append(out, asStringSlice(cells))
	}
	return out
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := asString(m[k]); s != "" {
			return s
		}
	}
	return ""
}
