// Package strutil provides the string transforms shared by the template
// filters and the renderer: HTML stripping and escaping, Markdown escaping,
// and whitespace normalization.
package strutil

import (
	"html"
	"regexp"
	"strings"

	xhtml "golang.org/x/net/html"
)

var (
	brRe        = regexp.MustCompile(`(?i)<br\s*/?>`)
	blankLineRe = regexp.MustCompile(`\n[ \t]*\n`)
	spaceRunRe  = regexp.MustCompile(`[ \t]+`)
	mdSpecialRe = regexp.MustCompile("([\\\\`*_{}\\[\\]()#+.!|>~-])")
)

// StripHTML removes all tags from s and decodes HTML entities in the
// remaining text. Malformed markup never fails; whatever the tokenizer
// recognizes as text is kept.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	tok := xhtml.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	b.Grow(len(s))
	for {
		switch tok.Next() {
		case xhtml.ErrorToken:
			return b.String()
		case xhtml.TextToken:
			b.Write(tok.Text())
		}
	}
}

// EscapeHTML escapes the five HTML special characters.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// UnescapeHTML decodes HTML entities, named and numeric.
func UnescapeHTML(s string) string {
	return html.UnescapeString(s)
}

// EscapeMarkdown backslash-escapes every Markdown-significant character.
func EscapeMarkdown(s string) string {
	return mdSpecialRe.ReplaceAllString(s, `\$1`)
}

// Br2NL replaces HTML line-break tags with newlines.
func Br2NL(s string) string {
	return brRe.ReplaceAllString(s, "\n")
}

// QuoteLines turns s into a Markdown blockquote: non-blank lines are
// prefixed with "> ", blank lines become a bare ">".
func QuoteLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + line
		}
	}
	return strings.Join(lines, "\n")
}

// NormalizeWhitespace collapses runs of spaces and tabs to a single space
// and trims surrounding whitespace.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(spaceRunRe.ReplaceAllString(s, " "))
}

// Paragraphs splits s on blank lines and rejoins the HTML-escaped
// paragraphs with double line breaks. Empty paragraphs are dropped.
func Paragraphs(s string) string {
	parts := blankLineRe.Split(s, -1)
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, EscapeHTML(p))
	}
	return strings.Join(out, "\n\n")
}
