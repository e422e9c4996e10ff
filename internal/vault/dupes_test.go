package vault

import (
	"errors"
	"strings"
	"testing"

	"github.com/voss/kohl/internal/apperr"
)

func writeNote(t *testing.T, f *FS, path, uid, body string) {
	t.Helper()
	data, err := RenderNote(map[string]any{UIDKey: uid}, body)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Write(path, data); err != nil {
		t.Fatal(err)
	}
}

func TestFindByUID(t *testing.T) {
	f, _ := newTestFS(t)
	writeNote(t, f, "highlights/one.md", "uid-1", "one")
	writeNote(t, f, "highlights/two.md", "uid-2", "two")

	path, err := FindByUID(f, "highlights", "uid-2")
	if err != nil {
		t.Fatalf("FindByUID: %v", err)
	}
	if path != "highlights/two.md" {
		t.Errorf("path = %q", path)
	}
}

func TestFindByUID_NotFound(t *testing.T) {
	f, _ := newTestFS(t)
	writeNote(t, f, "highlights/one.md", "uid-1", "one")

	_, err := FindByUID(f, "highlights", "uid-missing")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestFindByUID_SkipsNotesWithoutFrontmatter(t *testing.T) {
	f, _ := newTestFS(t)
	if err := f.Write("highlights/plain.md", []byte("no frontmatter")); err != nil {
		t.Fatal(err)
	}
	writeNote(t, f, "highlights/real.md", "uid-1", "x")

	path, err := FindByUID(f, "highlights", "uid-1")
	if err != nil {
		t.Fatalf("FindByUID: %v", err)
	}
	if path != "highlights/real.md" {
		t.Errorf("path = %q", path)
	}
}

func TestReplaceSection(t *testing.T) {
	body := "intro kept\n\n" + WrapSection("old highlights") + "\n\nuser notes kept\n"
	out := ReplaceSection(body, "new highlights")
	if !strings.Contains(out, "new highlights") {
		t.Error("new content missing")
	}
	if strings.Contains(out, "old highlights") {
		t.Error("old content should be replaced")
	}
	if !strings.Contains(out, "intro kept") || !strings.Contains(out, "user notes kept") {
		t.Error("text outside the fence must survive")
	}
}

func TestReplaceSection_NoFence(t *testing.T) {
	out := ReplaceSection("existing text\n", "highlights")
	if !strings.Contains(out, "existing text") {
		t.Error("existing text must survive")
	}
	if !strings.Contains(out, SectionBegin) || !strings.Contains(out, SectionEnd) {
		t.Error("fence should be appended")
	}
	if strings.Index(out, "existing text") > strings.Index(out, SectionBegin) {
		t.Error("fence should come after existing text")
	}
}

func TestReplaceSection_EmptyBody(t *testing.T) {
	out := ReplaceSection("", "highlights")
	if out != WrapSection("highlights") {
		t.Errorf("out = %q", out)
	}
}
