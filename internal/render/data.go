package render

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/voss/kohl/internal/dateutil"
	"github.com/voss/kohl/internal/models"
	"github.com/voss/kohl/internal/strutil"
	"github.com/voss/kohl/internal/template"
)

// BuildData assembles the flat record one highlight group exposes to
// template evaluation. The group's annotations are merged here: styled
// and plain highlight variants joined along the separator list, notes
// joined with a rule.
func BuildData(grp models.HighlightGroup, chapter string, firstInChapter bool) *template.Data {
	first := grp.Annotations[0]

	styled := make([]string, len(grp.Annotations))
	plain := make([]string, len(grp.Annotations))
	var notes []string
	for i, a := range grp.Annotations {
		styled[i] = StyleHighlight(a.Text, a.Color, a.Drawer)
		plain[i] = strutil.Paragraphs(a.Text)
		if note := strings.TrimSpace(a.Note); note != "" {
			notes = append(notes, note)
		}
	}

	return &template.Data{
		PageNo:           first.PageNo,
		PageRef:          first.PageRef,
		Date:             dateutil.Format(first.Datetime, dateutil.ModeLocale),
		Datetime:         first.Datetime,
		Highlight:        joinWithSeparators(styled, grp.Separators),
		HighlightPlain:   joinWithSeparators(plain, grp.Separators),
		Note:             strings.Join(notes, "\n---\n"),
		Notes:            notes,
		Chapter:          chapter,
		IsFirstInChapter: firstInChapter,
		Color:            first.Color,
		Drawer:           first.Drawer,
		ColorClass:       ColorClass(first.Color),
		UID:              shortHex(),
	}
}

// joinWithSeparators merges per-annotation text blocks along the
// group's separator list. A tight separator concatenates with a single
// space. A gap separator closes the accumulated text with a double
// line break, inserts the literal gap marker, and opens the next block
// after another double line break.
func joinWithSeparators(parts, seps []string) string {
	if len(parts) == 0 {
		return ""
	}
	acc := parts[0]
	for i := 1; i < len(parts); i++ {
		sep := models.SeparatorTight
		if i-1 < len(seps) {
			sep = seps[i-1]
		}
		if sep == models.SeparatorGap {
			for !strings.HasSuffix(acc, "\n\n") {
				acc += "\n"
			}
			acc += "[...]\n\n" + parts[i]
		} else {
			acc += " " + parts[i]
		}
	}
	return acc
}

// shortHex returns a low-entropy hex fragment used to disambiguate
// otherwise identical blocks. Not an identifier, just a tiebreaker.
func shortHex() string {
	return fmt.Sprintf("%06x", rand.Uint32()&0xffffff)
}
