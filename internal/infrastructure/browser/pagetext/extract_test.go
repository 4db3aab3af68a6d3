package pagetext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_DropsNonVisibleContent(t *testing.T) {
	raw := `
<html>
<head><title>Site Title</title><style>.x { color: red; }</style></head>
<body>
    <script>var tracking = true;</script>
    <nav>Home About Contact</nav>
    <p>Welcome to the site</p>
    <noscript>enable javascript</noscript>
</body>
</html>`

	out := Extract(raw)

	assert.Contains(t, out, "Home About Contact")
	assert.Contains(t, out, "Welcome to the site")
	assert.NotContains(t, out, "tracking")
	assert.NotContains(t, out, "color: red")
	assert.NotContains(t, out, "Site Title")
	assert.NotContains(t, out, "enable javascript")
}

func TestExtract_CollapsesWhitespace(t *testing.T) {
	out := Extract("<body><p>one\n\n   two</p>\t<p>three</p></body>")
	assert.Equal(t, "one two three", out)
}

func TestExtract_TruncatesLongDocuments(t *testing.T) {
	raw := "<body><p>" + strings.Repeat("word ", 10_000) + "</p></body>"
	out := Extract(raw)
	assert.LessOrEqual(t, len(out), maxTextSize)
}

func TestExtract_InvalidInputIsEmpty(t *testing.T) {
	assert.Equal(t, "", Extract(""))
}
