// Package blocks renders a structured document into WordPress block markup
// (Gutenberg serialization, VK Blocks flavored). Rendering is deterministic
// and touches no network.
package blocks

import (
	"fmt"
	"strings"

	"auto_wp_article_publisher/article"
)

const (
	defaultPointsTitle  = "この記事のポイント"
	defaultSummaryTitle = "まとめ"
	defaultSpacerHeight = "2rem"
)

// Generator renders documents. The h2 counter supports downstream numbering
// and resets at the start of every Generate call.
type Generator struct {
	ctaTemplate string
	h2Counter   int
}

// New creates a Generator. ctaTemplate, when non-empty, is appended verbatim
// as the final fragment of renders that ask for it.
func New(ctaTemplate string) *Generator {
	return &Generator{ctaTemplate: ctaTemplate}
}

// H2Count reports how many level-2 headings the last Generate call emitted.
func (g *Generator) H2Count() int {
	return g.h2Counter
}

// Generate renders the document in assembly order: lead, points, sections,
// summary. The legacy conclusion field is spliced at the very front of the
// output, but only when points is absent; this mirrors the long-standing
// behavior and is intentionally not unified with the points position.
func (g *Generator) Generate(doc *article.Document, includeCta bool) string {
	g.h2Counter = 0

	var fragments []string
	if doc.Lead != "" {
		fragments = append(fragments, g.paragraph(article.Paragraph{Text: doc.Lead}))
	}
	if doc.Points != nil {
		fragments = append(fragments, borderBox(doc.Points, defaultPointsTitle, "fa-circle-info"))
	}
	for _, section := range doc.Sections {
		if fragment := g.renderSection(section); fragment != "" {
			fragments = append(fragments, fragment)
		}
	}
	if doc.Summary != nil {
		fragments = append(fragments, borderBox(doc.Summary, defaultSummaryTitle, "fa-check"))
	}
	if doc.Conclusion != nil && doc.Points == nil {
		fragments = append([]string{borderBox(doc.Conclusion, defaultPointsTitle, "fa-circle-info")}, fragments...)
	}

	markup := strings.Join(fragments, "\n\n")
	if includeCta && g.ctaTemplate != "" {
		markup = markup + "\n\n" + g.ctaTemplate
	}
	return markup
}

func (g *Generator) renderSection(s article.Section) string {
	switch sec := s.(type) {
	case article.Heading:
		return g.heading(sec)
	case article.Paragraph:
		return g.paragraph(sec)
	case article.List:
		return g.list(sec)
	case article.FAQ:
		return g.faq(sec)
	case article.Box:
		return g.box(sec)
	case article.Warning:
		return g.warning(sec)
	case article.Table:
		return g.table(sec)
	case article.Spacer:
		return g.spacer(sec)
	default:
		// The decoder already folds unknown kinds into paragraphs; this arm
		// keeps the switch total if a new variant is added without a template.
		return g.paragraph(article.Paragraph{})
	}
}

func (g *Generator) heading(h article.Heading) string {
	switch h.Level {
	case 2:
		g.h2Counter++
		return fmt.Sprintf(`<!-- wp:heading {"className":"is-style-vk-heading-01 is-style-default","style":{"typography":{"fontSize":"1.625rem","fontStyle":"normal","fontWeight":"700"},"spacing":{"margin":{"top":"30px","bottom":"20px"},"padding":{"bottom":"10px"}},"border":{"bottom":{"color":"var:preset|color|vk-color-primary-dark","width":"2px"},"top":{},"right":{},"left":{}}},"textColor":"vk-color-primary-dark"} -->
<h2 class="wp-block-heading is-style-vk-heading-01 is-style-default has-vk-color-primary-dark-color has-text-color" style="border-bottom-color:var(--wp--preset--color--vk-color-primary-dark);border-bottom-width:2px;margin-top:30px;margin-bottom:20px;padding-bottom:10px;font-size:1.625rem;font-style:normal;font-weight:700">%s</h2>
<!-- /wp:heading -->`, h.Text)
	case 3:
		return fmt.Sprintf(`<!-- wp:heading {"level":3,"style":{"border":{"left":{"color":"#1a365d","width":"6px"},"top":{},"right":{},"bottom":{}},"spacing":{"padding":{"left":"10px","top":"5px","bottom":"5px"},"margin":{"left":"0","top":"30px","bottom":"20px"}},"typography":{"fontWeight":"700","fontStyle":"normal","fontSize":"1.25rem"}}} -->
<h3 class="wp-block-heading" style="border-left-color:#1a365d;border-left-width:6px;margin-top:30px;margin-bottom:20px;margin-left:0;padding-top:5px;padding-bottom:5px;padding-left:10px;font-size:1.25rem;font-style:normal;font-weight:700">%s</h3>
<!-- /wp:heading -->`, h.Text)
	default:
		return fmt.Sprintf(`<!-- wp:heading {"level":%d,"className":"vk_block-margin-sm\u002d\u002dmargin-bottom","style":{"typography":{"fontWeight":"600","fontStyle":"normal"}},"fontSize":"regular"} -->
<h%d class="wp-block-heading vk_block-margin-sm--margin-bottom has-regular-font-size" style="font-style:normal;font-weight:600">%s</h%d>
<!-- /wp:heading -->`, h.Level, h.Level, h.Text, h.Level)
	}
}

func (g *Generator) paragraph(p article.Paragraph) string {
	return fmt.Sprintf(`<!-- wp:paragraph {"style":{"typography":{"lineHeight":"1.8"}}} -->
<p style="line-height:1.8">%s</p>
<!-- /wp:paragraph -->`, p.Text)
}

func (g *Generator) list(l article.List) string {
	tag := "ul"
	if l.Ordered {
		tag = "ol"
	}
	return fmt.Sprintf(`<!-- wp:list -->
<%s class="wp-block-list">
%s
</%s>
<!-- /wp:list -->`, tag, listItems(l.Items), tag)
}

func (g *Generator) spacer(s article.Spacer) string {
	height := s.Height
	if height == "" {
		height = defaultSpacerHeight
	}
	return fmt.Sprintf(`<!-- wp:spacer {"height":"%s"} -->
<div style="height:%s" aria-hidden="true" class="wp-block-spacer"></div>
<!-- /wp:spacer -->`, height, height)
}

func (g *Generator) warning(w article.Warning) string {
	return fmt.Sprintf(`<!-- wp:vk-blocks/alert {"style":"warning","icon":"\u003ci class=\u0022fa-solid fa-triangle-exclamation\u0022\u003e\u003c/i\u003e","iconText":"Warning"} -->
<div class="wp-block-vk-blocks-alert vk_alert alert alert-warning has-alert-icon"><div class="vk_alert_icon"><div class="vk_alert_icon_icon"><i class="fa-solid fa-triangle-exclamation"></i></div><div class="vk_alert_icon_text"><span>Warning</span></div></div><div class="vk_alert_content"><!-- wp:paragraph {"fontSize":"regular"} -->
<p class="has-regular-font-size">%s</p>
<!-- /wp:paragraph --></div></div>
<!-- /wp:vk-blocks/alert -->`, w.Content)
}

func (g *Generator) faq(f article.FAQ) string {
	if len(f.Items) == 0 {
		return faqBlock(f.Question, f.Answer)
	}
	fragments := make([]string, 0, len(f.Items))
	for _, pair := range f.Items {
		fragments = append(fragments, faqBlock(pair.Question, pair.Answer))
	}
	return strings.Join(fragments, "\n\n")
}

func faqBlock(question, answer string) string {
	return fmt.Sprintf(`<!-- wp:vk-blocks/faq2 {"className":"is-style-vk_faq-bgfill-rounded"} -->
<div class="wp-block-vk-blocks-faq2 vk_faq  [accordion_trigger_switch] is-style-vk_faq-bgfill-rounded"><div class="vk_faq-header"></div><dl class="vk_faq-body"><!-- wp:vk-blocks/faq2-q -->
<dt class="wp-block-vk-blocks-faq2-q vk_faq_title" aria-label="質問"><!-- wp:paragraph {"fontSize":"regular"} -->
<p class="has-regular-font-size">%s</p>
<!-- /wp:paragraph --></dt>
<!-- /wp:vk-blocks/faq2-q -->

<!-- wp:vk-blocks/faq2-a -->
<dd class="wp-block-vk-blocks-faq2-a vk_faq_content" aria-label="回答"><!-- wp:paragraph {"fontSize":"regular"} -->
<p class="has-regular-font-size">%s</p>
<!-- /wp:paragraph --></dd>
<!-- /wp:vk-blocks/faq2-a --></dl><div class="vk_faq-footer"></div></div>
<!-- /wp:vk-blocks/faq2 -->`, question, answer)
}

var boxColors = map[string]string{
	"info":    "#1a365d",
	"success": "#5a7a54",
	"warning": "#c9a227",
}

func (g *Generator) box(b article.Box) string {
	border, ok := boxColors[b.Style]
	if !ok {
		border = boxColors["info"]
	}

	titleBlock := ""
	if b.Title != "" {
		titleBlock = fmt.Sprintf(`<!-- wp:heading {"level":4,"className":"vk_block-margin-sm\u002d\u002dmargin-bottom","style":{"typography":{"fontWeight":"600"}}} -->
<h4 class="wp-block-heading vk_block-margin-sm--margin-bottom" style="font-weight:600">%s</h4>
<!-- /wp:heading -->

`, b.Title)
	}

	return fmt.Sprintf(`<!-- wp:group {"style":{"border":{"width":"1px","color":"%s"},"spacing":{"padding":{"top":"1.5rem","right":"1.5rem","bottom":"1.5rem","left":"1.5rem"}}},"backgroundColor":"white","layout":{"type":"constrained"}} -->
<div class="wp-block-group has-white-background-color has-background" style="border:1px solid %s;padding:1.5rem">%s<!-- wp:paragraph -->
<p>%s</p>
<!-- /wp:paragraph --></div>
<!-- /wp:group -->`, border, border, titleBlock, b.Content)
}

func borderBox(c *article.Callout, defaultTitle, icon string) string {
	title := c.Title
	if title == "" {
		title = defaultTitle
	}
	return fmt.Sprintf(`<!-- wp:vk-blocks/border-box {"headingTag":"h3","includeInToc":false,"faIcon":"\u003ci class=\u0022fa-solid %s\u0022\u003e\u003c/i\u003e","className":"is-style-vk_borderBox-style-solid-kado-tit-banner"} -->
<div class="wp-block-vk-blocks-border-box vk_borderBox vk_borderBox-background-transparent is-style-vk_borderBox-style-solid-kado-tit-banner"><div class="vk_borderBox_title_container"><i class="fa-solid %s"></i><h3 class="vk_borderBox_title">%s</h3></div><div class="vk_borderBox_body"><!-- wp:list -->
<ul class="wp-block-list">
%s
</ul>
<!-- /wp:list --></div></div>
<!-- /wp:vk-blocks/border-box -->`, icon, icon, title, listItems(c.Items))
}

func listItems(items []string) string {
	rendered := make([]string, 0, len(items))
	for _, item := range items {
		rendered = append(rendered, fmt.Sprintf(`<!-- wp:list-item -->
<li>%s</li>
<!-- /wp:list-item -->`, item))
	}
	return strings.Join(rendered, "\n")
}
