package utils

import (
	"crypto/md5"
	"encoding/hex"
	"io"
)

// GenerateID derives a stable 16 hex character id from keys, prefixed with
// pre. The same keys always give the same id, so re-running an import or an
// enrichment does not create duplicates.
func GenerateID(pre string, keys ...string) string {
	h := md5.New()
	for _, key := range keys {
		io.WriteString(h, key)
		// Separator so ("ab", "c") and ("a", "bc") differ.
		h.Write([]byte{0})
	}
	return pre + hex.EncodeToString(h.Sum(nil))[:16]
}
