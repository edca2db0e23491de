package structurer

// defaultPromptTemplate is used when no operator-supplied instruction
// template is configured. It describes the JSON shape the validator and
// renderer expect.
const defaultPromptTemplate = "You are an expert at structuring articles.\n" +
	"Convert the manuscript below into the following JSON shape. Output JSON only.\n" +
	"\n" +
	"## Output format\n" +
	"```json\n" +
	"{\n" +
	"  \"lead\": \"lead paragraph (150-200 characters)\",\n" +
	"  \"points\": {\n" +
	"    \"title\": \"この記事のポイント\",\n" +
	"    \"items\": [\"point 1\", \"point 2\", \"point 3\"]\n" +
	"  },\n" +
	"  \"sections\": [\n" +
	"    {\"type\": \"heading\", \"level\": 2, \"text\": \"heading\"},\n" +
	"    {\"type\": \"paragraph\", \"text\": \"paragraph text\"},\n" +
	"    {\"type\": \"list\", \"items\": [\"item 1\", \"item 2\"]},\n" +
	"    {\"type\": \"warning\", \"text\": \"caution text\"},\n" +
	"    {\"type\": \"table\", \"headers\": [\"col 1\", \"col 2\"], \"rows\": [[\"cell 1\", \"cell 2\"]]},\n" +
	"    {\"type\": \"faq\", \"items\": [{\"q\": \"question?\", \"a\": \"answer.\"}]}\n" +
	"  ],\n" +
	"  \"summary\": {\n" +
	"    \"title\": \"まとめ\",\n" +
	"    \"items\": [\"summary 1\", \"summary 2\", \"summary 3\", \"summary 4\"]\n" +
	"  }\n" +
	"}\n" +
	"```\n" +
	"\n" +
	"## Rules\n" +
	"- 3 to 5 h2 headings\n" +
	"- a paragraph directly after every h2\n" +
	"- use at least 2 of list/table/warning/faq\n" +
	"- points.items is exactly 3 items\n" +
	"- summary.items is 4 or more items\n" +
	"\n" +
	"## Manuscript\n"
