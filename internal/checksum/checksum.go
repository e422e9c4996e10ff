// Package checksum derives the stable identifiers that link vault
// notes back to their source books.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// BookUID derives the identifier stored in a note's frontmatter. The
// reader's partial MD5 wins when present; otherwise a digest of title
// and authors keeps the identifier stable across imports.
func BookUID(title, authors, md5 string) string {
	if md5 != "" {
		return md5
	}
	return Sum([]byte(title + "\x00" + authors))[:16]
}
