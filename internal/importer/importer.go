// Package importer drives one import run: scan the device for
// highlight exports, render each book through the template engine,
// and write or update the matching vault notes.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/voss/kohl/internal/apperr"
	"github.com/voss/kohl/internal/checksum"
	"github.com/voss/kohl/internal/device"
	"github.com/voss/kohl/internal/models"
	"github.com/voss/kohl/internal/render"
	"github.com/voss/kohl/internal/stats"
	"github.com/voss/kohl/internal/vault"
)

// maxWorkers bounds the per-book rendering fan-out.
const maxWorkers = 4

// Importer renders device exports into vault notes. Stats is optional;
// without it notes simply omit the reading-statistics keys.
type Importer struct {
	Store    vault.Provider
	Stats    stats.Provider
	Renderer *render.Renderer
	Logger   *slog.Logger
	Folder   string // vault subfolder receiving highlight notes
}

// Run imports every book found under mount and reports how many notes
// were written. A failing book is logged and skipped; only scan
// failures abort the batch.
func (im *Importer) Run(ctx context.Context, mount string) (int, error) {
	books, err := device.Scan(mount)
	if err != nil {
		return 0, err
	}
	if len(books) == 0 {
		return 0, fmt.Errorf("importer: %s: %w", mount, apperr.ErrNoBooks)
	}

	var written atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)
	for _, book := range books {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := im.importBook(book); err != nil {
				im.Logger.Warn("import: book failed",
					slog.String("title", book.Props.Title),
					slog.String("error", err.Error()))
				return nil
			}
			written.Add(1)
			im.Logger.Info("import: book written",
				slog.String("title", book.Props.Title),
				slog.Int("annotations", len(book.Annotations)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(written.Load()), err
	}
	return int(written.Load()), nil
}

// importBook renders one book and creates or updates its vault note.
func (im *Importer) importBook(book device.Book) error {
	rendered := im.Renderer.RenderAnnotations(book.Annotations)
	uid := checksum.BookUID(book.Props.Title, book.Props.Authors, book.Props.MD5)

	path, err := vault.FindByUID(im.Store, im.Folder, uid)
	switch {
	case err == nil:
		return im.updateNote(path, book, uid, rendered)
	case errors.Is(err, apperr.ErrNotFound):
		return im.createNote(book, uid, rendered)
	default:
		return err
	}
}

// createNote writes a fresh note with importer-owned frontmatter and
// the fenced highlights section.
func (im *Importer) createNote(book device.Book, uid, rendered string) error {
	body := "# " + book.Props.Title + "\n\n" + vault.WrapSection(rendered)
	data, err := vault.RenderNote(im.frontmatter(book, uid), body)
	if err != nil {
		return err
	}
	return im.Store.Write(notePath(im.Folder, book.Props), data)
}

// updateNote refreshes the importer-owned keys and the fenced section
// of an existing note, leaving user edits intact.
func (im *Importer) updateNote(path string, book device.Book, uid, rendered string) error {
	data, err := im.Store.Read(path)
	if err != nil {
		return err
	}
	fm, body := vault.SplitFrontmatter(data)
	fm = vault.MergeFrontmatter(fm, im.frontmatter(book, uid))
	merged, err := vault.RenderNote(fm, vault.ReplaceSection(body, rendered))
	if err != nil {
		return err
	}
	return im.Store.Write(path, merged)
}

// frontmatter builds the importer-owned keys for a note. Reading
// statistics are included when the statistics database knows the book.
func (im *Importer) frontmatter(book device.Book, uid string) map[string]any {
	fm := map[string]any{
		vault.UIDKey:  uid,
		"title":       book.Props.Title,
		"highlights":  len(book.Annotations),
		"imported-at": time.Now().Format("2006-01-02 15:04"),
	}
	if book.Props.Authors != "" {
		fm["authors"] = book.Props.Authors
	}
	if im.Stats == nil {
		return fm
	}
	bs, err := im.Stats.BookStats(book.Props.Title, book.Props.Authors)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			im.Logger.Warn("import: statistics lookup failed",
				slog.String("title", book.Props.Title),
				slog.String("error", err.Error()))
		}
		return fm
	}
	fm["read-time"] = bs.TotalReadTime.Round(time.Minute).String()
	fm["read-pages"] = bs.ReadPages
	if bs.Pages > 0 {
		fm["pages"] = bs.Pages
	}
	if !bs.LastOpen.IsZero() {
		fm["last-read"] = bs.LastOpen.Format("2006-01-02")
	}
	return fm
}

// notePath derives the vault path for a book's note.
func notePath(folder string, props models.DocProps) string {
	name := safeFileName(props.Title)
	if name == "" {
		name = "Untitled"
	}
	if folder == "" {
		return name + ".md"
	}
	return folder + "/" + name + ".md"
}

// safeFileName strips the characters vaults and file systems reject.
func safeFileName(s string) string {
	repl := strings.NewReplacer(
		"/", "-", "\\", "-", ":", " -", "*", "", "?", "",
		"\"", "'", "<", "", ">", "", "|", "-", "#", "", "^", "",
	)
	return strings.TrimSpace(repl.Replace(s))
}
