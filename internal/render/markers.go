package render

import (
	"encoding/json"
	"strings"

	"github.com/voss/kohl/internal/models"
)

// markerPayload identifies one source annotation inside a provenance
// comment, small enough to round-trip a re-import match.
type markerPayload struct {
	V    int    `json:"v"`
	Page int    `json:"p,omitempty"`
	Ref  string `json:"r,omitempty"`
	Time string `json:"t,omitempty"`
}

// CreateKohlMarkers renders the provenance comment block preceding a
// rendered group: one marker line per annotation in the requested
// style, or the empty string for CommentNone.
func CreateKohlMarkers(anns []models.Annotation, style models.CommentStyle) string {
	if style == models.CommentNone || len(anns) == 0 {
		return ""
	}
	var b strings.Builder
	for _, a := range anns {
		payload, err := json.Marshal(markerPayload{V: 1, Page: a.PageNo, Ref: a.PageRef, Time: a.Datetime})
		if err != nil {
			continue
		}
		switch style {
		case models.CommentHTML:
			b.WriteString("<!-- KOHL ")
			b.Write(payload)
			b.WriteString(" -->\n")
		case models.CommentMarkdown:
			b.WriteString("%%KOHL ")
			b.Write(payload)
			b.WriteString("%%\n")
		}
	}
	return b.String()
}
