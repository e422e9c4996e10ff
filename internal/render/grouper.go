// Package render turns a document's annotations into Markdown blocks:
// it buckets them by chapter, merges successive highlights under the
// gap policy, and evaluates the compiled template once per group.
package render

import (
	"cmp"
	"slices"
	"strings"

	"github.com/voss/kohl/internal/models"
)

// ChapterUnknown labels annotations that carry no chapter metadata.
const ChapterUnknown = "Chapter Unknown"

// CompareAnnotations is the total order used for in-chapter sorting:
// page ascending, then position reference, then timestamp.
func CompareAnnotations(a, b models.Annotation) int {
	if c := cmp.Compare(a.PageNo, b.PageNo); c != 0 {
		return c
	}
	if c := strings.Compare(a.PageRef, b.PageRef); c != 0 {
		return c
	}
	return strings.Compare(a.Datetime, b.Datetime)
}

// GroupSuccessiveHighlights partitions sorted annotations into
// highlight groups. An annotation joins the current group when its
// page delta to the previous one is within maxGap; a larger delta
// starts a new group. Within a group, same-page neighbours join with a
// tight separator and neighbours across pages with a gap marker.
func GroupSuccessiveHighlights(anns []models.Annotation, maxGap int) []models.HighlightGroup {
	if len(anns) == 0 {
		return nil
	}
	var groups []models.HighlightGroup
	cur := models.HighlightGroup{Annotations: []models.Annotation{anns[0]}}
	for _, a := range anns[1:] {
		prev := cur.Annotations[len(cur.Annotations)-1]
		delta := a.PageNo - prev.PageNo
		if delta < 0 {
			delta = -delta
		}
		if delta > maxGap {
			groups = append(groups, cur)
			cur = models.HighlightGroup{Annotations: []models.Annotation{a}}
			continue
		}
		sep := models.SeparatorTight
		if delta > 0 {
			sep = models.SeparatorGap
		}
		cur.Annotations = append(cur.Annotations, a)
		cur.Separators = append(cur.Separators, sep)
	}
	return append(groups, cur)
}

// chapterBucket holds the annotations of one chapter. startPage is the
// first sorted annotation's page and only orders buckets relative to
// each other; buckets are rebuilt on every render.
type chapterBucket struct {
	name      string
	startPage int
	anns      []models.Annotation
}

// bucketByChapter groups annotations by chapter label, preserving
// first-seen chapter order and annotation order inside each bucket.
func bucketByChapter(anns []models.Annotation) []*chapterBucket {
	index := map[string]*chapterBucket{}
	var buckets []*chapterBucket
	for _, a := range anns {
		name := strings.TrimSpace(a.Chapter)
		if name == "" {
			name = ChapterUnknown
		}
		b, ok := index[name]
		if !ok {
			b = &chapterBucket{name: name}
			index[name] = b
			buckets = append(buckets, b)
		}
		b.anns = append(b.anns, a)
	}
	return buckets
}

// sortBuckets sorts each bucket's annotations, computes start pages,
// and orders the buckets by ascending start page.
func sortBuckets(buckets []*chapterBucket) {
	for _, b := range buckets {
		slices.SortStableFunc(b.anns, CompareAnnotations)
		if len(b.anns) > 0 {
			b.startPage = b.anns[0].PageNo
		}
	}
	slices.SortStableFunc(buckets, func(a, b *chapterBucket) int {
		return cmp.Compare(a.startPage, b.startPage)
	})
}
