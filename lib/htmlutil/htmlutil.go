// Package htmlutil extracts plain text from the HTML fragments
// storefront APIs embed in product descriptions.
package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// CleanText drops non-printable runes and collapses runs of
// whitespace.
func CleanText(s string) string {
	var out strings.Builder
	for _, c := range s {
		if unicode.IsPrint(c) {
			out.WriteRune(c)
		} else {
			out.WriteRune(' ')
		}
	}
	cleaned := innerWhitespace.ReplaceAllString(out.String(), " ")
	return strings.TrimSpace(cleaned)
}

// StripTags renders an HTML fragment down to its readable text. A
// fragment that fails to parse comes back cleaned but otherwise as-is.
func StripTags(fragment string) string {
	if !strings.Contains(fragment, "<") {
		return CleanText(fragment)
	}
	node, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return CleanText(fragment)
	}
	return CleanText(GetText(node))
}
