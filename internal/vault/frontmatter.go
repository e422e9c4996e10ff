package vault

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// UIDKey is the importer-owned frontmatter key linking a note to its
// source book. User edits to other keys are preserved on re-import.
const UIDKey = "kohl-uid"

// SplitFrontmatter separates YAML frontmatter (between leading ---
// delimiters) from the Markdown body. Missing or invalid frontmatter
// is not an error: the entire content is returned as body.
func SplitFrontmatter(data []byte) (map[string]any, string) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data)
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, string(data)
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm map[string]any
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		return nil, string(data)
	}
	return fm, body
}

// MergeFrontmatter overlays updates onto existing without touching
// keys the user may have added or edited: only keys present in
// updates are written. A nil existing map is allocated.
func MergeFrontmatter(existing, updates map[string]any) map[string]any {
	if existing == nil {
		existing = make(map[string]any, len(updates))
	}
	for k, v := range updates {
		existing[k] = v
	}
	return existing
}

// RenderNote serializes frontmatter and body back into note bytes.
// Keys are emitted in sorted order so re-imports produce stable diffs.
func RenderNote(fm map[string]any, body string) ([]byte, error) {
	var b bytes.Buffer
	if len(fm) > 0 {
		b.WriteString("---\n")
		keys := make([]string, 0, len(fm))
		for k := range fm {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			entry, err := yaml.Marshal(map[string]any{k: fm[k]})
			if err != nil {
				return nil, fmt.Errorf("vault: encode frontmatter key %q: %w", k, err)
			}
			b.Write(entry)
		}
		b.WriteString("---\n\n")
	}
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteString("\n")
	}
	return b.Bytes(), nil
}
