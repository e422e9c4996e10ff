// Package models defines the domain types for kohl.
package models

// Annotation represents one highlight captured from a source document.
// Annotations are produced by the device import stage; the rendering
// engine only reads them.
type Annotation struct {
	Text     string `json:"text"`
	Note     string `json:"note,omitempty"`
	Color    string `json:"color,omitempty"`
	Drawer   string `json:"drawer,omitempty"`
	Chapter  string `json:"chapter,omitempty"`
	PageNo   int    `json:"pageno,omitempty"`
	PageRef  string `json:"pageref,omitempty"`
	Datetime string `json:"datetime,omitempty"`
}

// Separator markers between two adjacent annotations of a highlight group.
const (
	// SeparatorTight joins two highlights taken from the same position.
	SeparatorTight = " "
	// SeparatorGap joins two highlights with skipped text between them.
	SeparatorGap = " [...] "
)

// HighlightGroup is a run of annotations merged into a single rendered
// block under the gap policy. Separators holds exactly one entry per
// adjacent annotation pair (len(Annotations)-1), each either
// SeparatorTight or SeparatorGap.
type HighlightGroup struct {
	Annotations []Annotation
	Separators  []string
}

// DocProps identifies the source document of a set of annotations.
type DocProps struct {
	Title   string `json:"title"`
	Authors string `json:"authors,omitempty"`
	MD5     string `json:"md5,omitempty"`
}

// CommentStyle selects the provenance marker syntax emitted before each
// rendered block.
type CommentStyle string

// Supported comment styles.
const (
	CommentNone     CommentStyle = "none"
	CommentHTML     CommentStyle = "html"
	CommentMarkdown CommentStyle = "md"
)
