package blocks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"auto_wp_article_publisher/article"
)

type tableCell struct {
	Content string `json:"content"`
	Tag     string `json:"tag"`
}

// tableAttrs is the block descriptor emitted in the wp:table comment. Head
// and body enumerate every cell so platform tooling can rebuild the table
// without scraping the HTML.
type tableAttrs struct {
	HasFixedLayout bool            `json:"hasFixedLayout"`
	ClassName      string          `json:"className"`
	Style          json.RawMessage `json:"style"`
	BorderColor    string          `json:"borderColor"`
	Head           [][]tableCell   `json:"head,omitempty"`
	Body           [][]tableCell   `json:"body,omitempty"`
}

func (g *Generator) table(t article.Table) string {
	attrs := tableAttrs{
		HasFixedLayout: false,
		ClassName:      "post-table is-style-regular",
		Style:          json.RawMessage(`{"border":{"width":"1px"}}`),
		BorderColor:    "black",
	}
	if len(t.Headers) > 0 {
		row := make([]tableCell, 0, len(t.Headers))
		for _, h := range t.Headers {
			row = append(row, tableCell{Content: h, Tag: "th"})
		}
		attrs.Head = [][]tableCell{row}
	}
	for _, r := range t.Rows {
		row := make([]tableCell, 0, len(r))
		for _, cell := range r {
			row = append(row, tableCell{Content: cell, Tag: "td"})
		}
		attrs.Body = append(attrs.Body, row)
	}

	var headerHTML string
	if len(t.Headers) > 0 {
		var cells strings.Builder
		for _, h := range t.Headers {
			fmt.Fprintf(&cells, "<th>%s</th>", h)
		}
		headerHTML = fmt.Sprintf("<thead><tr>%s</tr></thead>", cells.String())
	}

	var bodyRows strings.Builder
	for _, r := range t.Rows {
		bodyRows.WriteString("<tr>")
		for _, cell := range r {
			fmt.Fprintf(&bodyRows, "<td>%s</td>", cell)
		}
		bodyRows.WriteString("</tr>")
	}
	bodyHTML := fmt.Sprintf("<tbody>%s</tbody>", bodyRows.String())

	var captionHTML string
	if t.Caption != "" {
		captionHTML = fmt.Sprintf(`<figcaption class="wp-element-caption">%s</figcaption>`, t.Caption)
	}

	return fmt.Sprintf(`<!-- wp:table %s -->
<figure class="wp-block-table post-table is-style-regular"><table class="has-border-color has-black-border-color" style="border-width:1px">%s%s</table>%s</figure>
<!-- /wp:table -->`, marshalAttrs(attrs), headerHTML, bodyHTML, captionHTML)
}

// marshalAttrs serializes block attributes without HTML escaping; Gutenberg
// comments carry literal angle brackets in cell content.
func marshalAttrs(attrs tableAttrs) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(attrs); err != nil {
		return "{}"
	}
	return strings.TrimRight(buf.String(), "\n")
}
