package render

import "strings"

// StyleHighlight wraps highlight text in the Markdown styling matching
// the reader's decoration. The drawer wins over color for strikeout
// and underline decorations; a known color yields a <mark> span with a
// theme class; plain highlights pass through unstyled.
func StyleHighlight(text, color, drawer string) string {
	switch strings.ToLower(strings.TrimSpace(drawer)) {
	case "strikeout":
		return "~~" + text + "~~"
	case "underscore", "underline":
		return "<u>" + text + "</u>"
	}
	if cls := ColorClass(color); cls != "" {
		return `<mark class="` + cls + `">` + text + `</mark>`
	}
	return text
}

// ColorClass derives the CSS theme token for a highlight color, e.g.
// "sky blue" becomes "kohl-sky-blue". Empty colors have no class.
func ColorClass(color string) string {
	c := strings.ToLower(strings.TrimSpace(color))
	if c == "" {
		return ""
	}
	return "kohl-" + strings.ReplaceAll(c, " ", "-")
}
