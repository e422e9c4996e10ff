// Package vault handles the Markdown vault the importer writes into:
// safe file access, frontmatter handling, and duplicate-note lookup.
package vault

// NoteMeta is a lightweight listing entry for one vault note.
type NoteMeta struct {
	Path string // relative to the vault root
}

// Provider is the interface for vault file operations. Paths are
// always relative to the vault root.
type Provider interface {
	// List returns metadata for every .md file under dir.
	List(dir string) ([]NoteMeta, error)
	// Read returns the raw bytes of the note at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path, creating directories
	// as needed.
	Write(path string, content []byte) error
	// Exists reports whether a note exists at path.
	Exists(path string) (bool, error)
}
