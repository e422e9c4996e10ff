package render

import (
	"strings"

	"github.com/voss/kohl/internal/models"
	"github.com/voss/kohl/internal/template"
)

// Renderer renders a document's annotations into Markdown through a
// compiled template. A Renderer is immutable and safe for concurrent
// use across documents.
type Renderer struct {
	tmpl         *template.Template
	commentStyle models.CommentStyle
	maxGap       int
}

// NewRenderer wires a compiled template to the grouping policy.
// maxGap is the page distance beyond which successive highlights are
// not merged into one block.
func NewRenderer(tmpl *template.Template, commentStyle models.CommentStyle, maxGap int) *Renderer {
	return &Renderer{tmpl: tmpl, commentStyle: commentStyle, maxGap: maxGap}
}

// RenderAnnotations renders all annotations of one document. Chapter
// buckets are ordered by their start page, highlights inside a chapter
// are gap-grouped, and each group yields one Markdown block, optionally
// prefixed with provenance markers. Blocks are joined by blank lines.
func (r *Renderer) RenderAnnotations(anns []models.Annotation) string {
	buckets := bucketByChapter(anns)
	sortBuckets(buckets)

	var blocks []string
	for _, bkt := range buckets {
		if len(bkt.anns) == 0 {
			continue
		}
		first := true
		for _, grp := range GroupSuccessiveHighlights(bkt.anns, r.maxGap) {
			data := BuildData(grp, bkt.name, first)
			first = false
			block := r.tmpl.Render(data)
			if r.commentStyle != models.CommentNone {
				block = CreateKohlMarkers(grp.Annotations, r.commentStyle) + block
			}
			blocks = append(blocks, block)
		}
	}
	return strings.Join(blocks, "\n\n")
}
