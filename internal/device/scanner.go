// Package device finds and parses the highlight exports a reader
// leaves on its storage. Each export file holds the annotations of
// one book as JSON.
package device

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/voss/kohl/internal/models"
)

// Book is one parsed per-book export.
type Book struct {
	Props       models.DocProps
	Annotations []models.Annotation
	Path        string // source file, for logging
}

// exportFile mirrors the JSON written by the reader's exporter.
type exportFile struct {
	Title   string        `json:"title"`
	Author  string        `json:"author"`
	MD5     string        `json:"md5"`
	Entries []exportEntry `json:"entries"`
}

type exportEntry struct {
	Text     string `json:"text"`
	Note     string `json:"note"`
	Chapter  string `json:"chapter"`
	Page     int    `json:"page"`
	PageRef  string `json:"pageref"`
	Time     int64  `json:"time"`     // unix seconds, newer exports
	Datetime string `json:"datetime"` // preformatted timestamp, older exports
	Color    string `json:"color"`
	Drawer   string `json:"drawer"`
}

// datetime normalizes the two timestamp shapes exports carry.
func (e exportEntry) datetime() string {
	if e.Time > 0 {
		return time.Unix(e.Time, 0).Format("2006-01-02 15:04:05")
	}
	return e.Datetime
}

// Scan walks root for .json exports and parses each into a Book.
// Files that do not parse as an export are skipped, not fatal.
func Scan(root string) ([]Book, error) {
	var books []Book
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		book, err := ParseExport(data)
		if err != nil {
			return nil
		}
		book.Path = p
		books = append(books, *book)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("device: scan %s: %w", root, err)
	}
	return books, nil
}

// ParseExport decodes one export file into a Book. An export without
// a title or without entries is rejected.
func ParseExport(data []byte) (*Book, error) {
	var ef exportFile
	if err := json.Unmarshal(data, &ef); err != nil {
		return nil, fmt.Errorf("device: decode export: %w", err)
	}
	if strings.TrimSpace(ef.Title) == "" || len(ef.Entries) == 0 {
		return nil, fmt.Errorf("device: export has no title or entries")
	}

	book := &Book{
		Props: models.DocProps{
			Title:   ef.Title,
			Authors: ef.Author,
			MD5:     ef.MD5,
		},
	}
	for _, e := range ef.Entries {
		if strings.TrimSpace(e.Text) == "" {
			continue
		}
		book.Annotations = append(book.Annotations, models.Annotation{
			Text:     e.Text,
			Note:     e.Note,
			Chapter:  e.Chapter,
			PageNo:   e.Page,
			PageRef:  e.PageRef,
			Datetime: e.datetime(),
			Color:    e.Color,
			Drawer:   e.Drawer,
		})
	}
	if len(book.Annotations) == 0 {
		return nil, fmt.Errorf("device: export has no usable entries")
	}
	return book, nil
}
