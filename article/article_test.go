package article

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		doc, err := Decode([]byte(`{
			"lead": "導入文",
			"points": {"title": "ポイント", "items": ["一", "二", "三"]},
			"summary": ["まとめ一", "まとめ二"],
			"sections": [
				{"type": "heading", "level": 2, "text": "見出し"},
				{"type": "paragraph", "text": "本文"},
				{"type": "list", "items": ["a", "b"], "ordered": true},
				{"type": "table", "headers": ["列1", "列2"], "rows": [["x", "y"]], "caption": "表"},
				{"type": "spacer", "height": "3rem"}
			]
		}`))
		require.NoError(t, err)

		assert.Equal(t, "導入文", doc.Lead)
		require.NotNil(t, doc.Points)
		assert.Equal(t, "ポイント", doc.Points.Title)
		assert.Equal(t, []string{"一", "二", "三"}, doc.Points.Items)
		require.NotNil(t, doc.Summary)
		assert.Equal(t, []string{"まとめ一", "まとめ二"}, doc.Summary.Items)
		assert.Nil(t, doc.Conclusion)

		require.Len(t, doc.Sections, 5)
		assert.Equal(t, Heading{Level: 2, Text: "見出し"}, doc.Sections[0])
		assert.Equal(t, Paragraph{Text: "本文"}, doc.Sections[1])
		assert.Equal(t, List{Items: []string{"a", "b"}, Ordered: true}, doc.Sections[2])
		assert.Equal(t, Table{Headers: []string{"列1", "列2"}, Rows: [][]string{{"x", "y"}}, Caption: "表"}, doc.Sections[3])
		assert.Equal(t, Spacer{Height: "3rem"}, doc.Sections[4])
	})

	t.Run("unknown section kind decodes as paragraph", func(t *testing.T) {
		doc, err := Decode([]byte(`{"sections": [{"type": "carousel", "text": "fallback"}]}`))
		require.NoError(t, err)
		require.Len(t, doc.Sections, 1)
		assert.Equal(t, Paragraph{Text: "fallback"}, doc.Sections[0])
	})

	t.Run("bare string section is a paragraph", func(t *testing.T) {
		doc, err := Decode([]byte(`{"sections": ["そのまま本文"]}`))
		require.NoError(t, err)
		assert.Equal(t, Paragraph{Text: "そのまま本文"}, doc.Sections[0])
	})

	t.Run("heading without level defaults to h2", func(t *testing.T) {
		doc, err := Decode([]byte(`{"sections": [{"type": "heading", "text": "x"}]}`))
		require.NoError(t, err)
		assert.Equal(t, Heading{Level: 2, Text: "x"}, doc.Sections[0])
	})

	t.Run("faq accepts short and long keys", func(t *testing.T) {
		doc, err := Decode([]byte(`{"sections": [
			{"type": "faq", "q": "短い質問", "a": "短い回答"},
			{"type": "faq", "items": [
				{"question": "長い質問", "answer": "長い回答"},
				{"q": "q2", "a": "a2"}
			]}
		]}`))
		require.NoError(t, err)

		assert.Equal(t, FAQ{Question: "短い質問", Answer: "短い回答"}, doc.Sections[0])
		faq := doc.Sections[1].(FAQ)
		require.Len(t, faq.Items, 2)
		assert.Equal(t, QA{Question: "長い質問", Answer: "長い回答"}, faq.Items[0])
		assert.Equal(t, QA{Question: "q2", Answer: "a2"}, faq.Items[1])
	})

	t.Run("warning falls back to text key", func(t *testing.T) {
		doc, err := Decode([]byte(`{"sections": [{"type": "warning", "text": "注意"}]}`))
		require.NoError(t, err)
		assert.Equal(t, Warning{Content: "注意"}, doc.Sections[0])
	})

	t.Run("callout shapes", func(t *testing.T) {
		doc, err := Decode([]byte(`{"points": "一行だけ", "conclusion": {"text": "締め"}}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"一行だけ"}, doc.Points.Items)
		assert.Equal(t, []string{"締め"}, doc.Conclusion.Items)
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := Decode([]byte(`[1, 2, 3]`))
		assert.Error(t, err)
	})
}

func TestCalloutEmpty(t *testing.T) {
	var nilCallout *Callout
	assert.True(t, nilCallout.Empty())
	assert.True(t, (&Callout{}).Empty())
	assert.False(t, (&Callout{Items: []string{"x"}}).Empty())
	assert.False(t, (&Callout{Title: "t"}).Empty())
}
