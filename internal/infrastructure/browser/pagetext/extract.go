// Package pagetext extracts the visible text of an HTML document for
// the heuristic navigation signal.
package pagetext

import (
	"strings"

	"golang.org/x/net/html"
)

var skipTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"svg":      true,
	"iframe":   true,
	"head":     true,
	"title":    true,
}

const maxTextSize = 20_000

// Extract returns the whitespace-collapsed visible text of rawHTML,
// truncated to a fixed size. Parse failures yield an empty string.
func Extract(rawHTML string) string {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	collectText(doc, &sb)

	text := strings.Join(strings.Fields(sb.String()), " ")
	if len(text) > maxTextSize {
		text = text[:maxTextSize]
	}
	return text
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode && skipTags[n.Data] {
		return
	}
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteString(" ")
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
