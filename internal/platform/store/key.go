package store

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Key joins namespace with a sha256 of parts so raw values never become key text
func Key(namespace string, parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return namespace + ":" + hex.EncodeToString(h[:])
}
