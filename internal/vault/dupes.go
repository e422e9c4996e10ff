package vault

import (
	"fmt"
	"strings"

	"github.com/voss/kohl/internal/apperr"
)

// Section markers fencing the importer-owned part of a note. Text the
// user adds outside the fence survives re-imports.
const (
	SectionBegin = "<!-- kohl:begin -->"
	SectionEnd   = "<!-- kohl:end -->"
)

// FindByUID scans the vault for the note whose frontmatter UIDKey
// matches uid. Returns apperr.ErrNotFound when no note matches.
func FindByUID(store Provider, dir, uid string) (string, error) {
	metas, err := store.List(dir)
	if err != nil {
		return "", err
	}
	for _, m := range metas {
		data, err := store.Read(m.Path)
		if err != nil {
			continue
		}
		fm, _ := SplitFrontmatter(data)
		if fm == nil {
			continue
		}
		if v, ok := fm[UIDKey].(string); ok && v == uid {
			return m.Path, nil
		}
	}
	return "", fmt.Errorf("vault: no note with %s=%s: %w", UIDKey, uid, apperr.ErrNotFound)
}

// WrapSection fences rendered highlight content for later replacement.
func WrapSection(rendered string) string {
	return SectionBegin + "\n" + rendered + "\n" + SectionEnd
}

// ReplaceSection swaps the fenced highlights section of body for the
// freshly rendered content. A body without a fence gets the section
// appended, so notes predating the markers still update.
func ReplaceSection(body, rendered string) string {
	begin := strings.Index(body, SectionBegin)
	end := strings.Index(body, SectionEnd)
	if begin < 0 || end < 0 || end < begin {
		if strings.TrimSpace(body) == "" {
			return WrapSection(rendered)
		}
		return strings.TrimRight(body, "\n") + "\n\n" + WrapSection(rendered)
	}
	return body[:begin] + WrapSection(rendered) + body[end+len(SectionEnd):]
}
