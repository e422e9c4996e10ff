package device

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleExport = `{
	"title": "The Book",
	"author": "A. Writer",
	"md5": "d41d8cd98f00b204e9800998ecf8427e",
	"entries": [
		{"text": "First passage.", "chapter": "One", "page": 3, "datetime": "2024-03-09 21:14:05"},
		{"text": "Second passage.", "note": "interesting", "chapter": "One", "page": 5, "time": 1709999999},
		{"text": "  ", "page": 6}
	]
}`

func TestParseExport(t *testing.T) {
	book, err := ParseExport([]byte(sampleExport))
	if err != nil {
		t.Fatalf("ParseExport: %v", err)
	}
	if book.Props.Title != "The Book" || book.Props.Authors != "A. Writer" {
		t.Errorf("props = %+v", book.Props)
	}
	if len(book.Annotations) != 2 {
		t.Fatalf("annotations = %d, want 2 (blank text skipped)", len(book.Annotations))
	}
	if book.Annotations[0].Datetime != "2024-03-09 21:14:05" {
		t.Errorf("datetime passthrough = %q", book.Annotations[0].Datetime)
	}
	// Unix timestamps are normalized to the preformatted shape.
	if book.Annotations[1].Datetime == "" || book.Annotations[1].Datetime == "1709999999" {
		t.Errorf("unix time not normalized: %q", book.Annotations[1].Datetime)
	}
	if book.Annotations[1].Note != "interesting" {
		t.Errorf("note = %q", book.Annotations[1].Note)
	}
}

func TestParseExport_Rejections(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", "{nope"},
		{"no title", `{"entries": [{"text": "x"}]}`},
		{"no entries", `{"title": "T", "entries": []}`},
		{"only blank entries", `{"title": "T", "entries": [{"text": "  "}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseExport([]byte(tc.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "exports")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeScanFile(t, filepath.Join(sub, "book.json"), sampleExport)
	writeScanFile(t, filepath.Join(root, "broken.json"), "{not valid")
	writeScanFile(t, filepath.Join(root, "readme.txt"), "not an export")

	books, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("books = %d, want 1", len(books))
	}
	if books[0].Props.Title != "The Book" {
		t.Errorf("title = %q", books[0].Props.Title)
	}
	if books[0].Path == "" {
		t.Error("source path should be recorded")
	}
}

func TestScan_MissingRoot(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func writeScanFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
