package vault

import (
	"strings"
	"testing"
)

func TestSplitFrontmatter(t *testing.T) {
	note := "---\nkohl-uid: abc123\ntitle: A Book\n---\n\n# A Book\n\nbody\n"
	fm, body := SplitFrontmatter([]byte(note))
	if fm == nil {
		t.Fatal("frontmatter should parse")
	}
	if fm["kohl-uid"] != "abc123" || fm["title"] != "A Book" {
		t.Errorf("fm = %v", fm)
	}
	if !strings.HasPrefix(body, "# A Book") {
		t.Errorf("body = %q", body)
	}
}

func TestSplitFrontmatter_NoDelimiter(t *testing.T) {
	note := "# Plain note\n"
	fm, body := SplitFrontmatter([]byte(note))
	if fm != nil {
		t.Errorf("fm = %v, want nil", fm)
	}
	if body != note {
		t.Errorf("body = %q", body)
	}
}

func TestSplitFrontmatter_InvalidYAML(t *testing.T) {
	note := "---\n: [not yaml\n---\nbody\n"
	fm, body := SplitFrontmatter([]byte(note))
	if fm != nil {
		t.Errorf("invalid yaml should yield nil fm, got %v", fm)
	}
	if body != note {
		t.Errorf("invalid yaml should keep whole content as body")
	}
}

func TestSplitFrontmatter_Unterminated(t *testing.T) {
	note := "---\nkey: value\nno closing delimiter\n"
	fm, body := SplitFrontmatter([]byte(note))
	if fm != nil || body != note {
		t.Errorf("unterminated frontmatter should be treated as body")
	}
}

func TestMergeFrontmatter_PreservesUserKeys(t *testing.T) {
	existing := map[string]any{"tags": []any{"reading"}, "title": "Old"}
	merged := MergeFrontmatter(existing, map[string]any{"title": "New", UIDKey: "u1"})
	if merged["title"] != "New" {
		t.Errorf("title = %v, want New", merged["title"])
	}
	if _, ok := merged["tags"]; !ok {
		t.Error("user key tags should survive merge")
	}
	if merged[UIDKey] != "u1" {
		t.Errorf("uid = %v", merged[UIDKey])
	}
}

func TestMergeFrontmatter_NilExisting(t *testing.T) {
	merged := MergeFrontmatter(nil, map[string]any{UIDKey: "u1"})
	if merged[UIDKey] != "u1" {
		t.Errorf("merged = %v", merged)
	}
}

func TestRenderNote_RoundTrip(t *testing.T) {
	fm := map[string]any{UIDKey: "u1", "title": "A Book", "highlights": 3}
	data, err := RenderNote(fm, "# A Book\n\nbody")
	if err != nil {
		t.Fatalf("RenderNote: %v", err)
	}
	fm2, body := SplitFrontmatter(data)
	if fm2 == nil {
		t.Fatal("rendered note should split again")
	}
	if fm2[UIDKey] != "u1" || fm2["title"] != "A Book" || fm2["highlights"] != 3 {
		t.Errorf("fm2 = %v", fm2)
	}
	if !strings.HasPrefix(body, "# A Book") {
		t.Errorf("body = %q", body)
	}
}

func TestRenderNote_StableKeyOrder(t *testing.T) {
	fm := map[string]any{"zebra": 1, "alpha": 2, UIDKey: "u1"}
	a, err := RenderNote(fm, "body")
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderNote(fm, "body")
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("repeated renders should be byte-identical")
	}
	if strings.Index(string(a), "alpha") > strings.Index(string(a), "zebra") {
		t.Error("keys should be emitted in sorted order")
	}
}

func TestRenderNote_NoFrontmatter(t *testing.T) {
	data, err := RenderNote(nil, "just body")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "just body\n" {
		t.Errorf("data = %q", data)
	}
}
