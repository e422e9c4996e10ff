package template

// Data is the flat record a compiled template is evaluated against.
// It is built once per highlight group and never mutated during
// evaluation, so a single record may back concurrent renders.
type Data struct {
	PageNo           int
	PageRef          string
	Date             string // locale-formatted reader timestamp
	Datetime         string // raw reader timestamp
	Highlight        string // merged, styled highlight text
	HighlightPlain   string // merged, HTML-safe paragraphs
	Note             string // merged annotation notes
	Notes            []string
	Chapter          string
	IsFirstInChapter bool
	Color            string
	Drawer           string
	ColorClass       string // theme token derived from Color
	UID              string // short random hex fragment for disambiguation
}

// Lookup resolves a template key against the record. The second result
// reports whether the key names a known field.
func (d *Data) Lookup(key string) (any, bool) {
	switch key {
	case "pageno":
		return d.PageNo, true
	case "pageref":
		return d.PageRef, true
	case "date":
		return d.Date, true
	case "datetime":
		return d.Datetime, true
	case "highlight":
		return d.Highlight, true
	case "highlightPlain":
		return d.HighlightPlain, true
	case "note":
		return d.Note, true
	case "notes":
		return d.Notes, true
	case "chapter":
		return d.Chapter, true
	case "isFirstInChapter":
		return d.IsFirstInChapter, true
	case "color":
		return d.Color, true
	case "drawer":
		return d.Drawer, true
	case "colorClass":
		return d.ColorClass, true
	case "uid":
		return d.UID, true
	}
	return nil, false
}

// DataKeys lists every key a template may reference, for validation
// messages and the preview API.
func DataKeys() []string {
	return []string{
		"chapter", "color", "colorClass", "date", "datetime", "drawer",
		"highlight", "highlightPlain", "isFirstInChapter", "note",
		"notes", "pageno", "pageref", "uid",
	}
}
