package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Key is the fingerprint of a translation input.
type Key string

// NormalizeText returns the form of text used for fingerprinting:
// Unicode NFC with surrounding whitespace trimmed.
func NormalizeText(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}

// NewKey derives the cache key for a translation of text from sourceLang to
// targetLang. Language codes must already be validated.
func NewKey(text, sourceLang, targetLang string) Key {
	h := sha256.New()
	h.Write([]byte(NormalizeText(text)))
	h.Write([]byte{0})
	h.Write([]byte(sourceLang))
	h.Write([]byte{0})
	h.Write([]byte(targetLang))
	return Key(hex.EncodeToString(h.Sum(nil)))
}
