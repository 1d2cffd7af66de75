package room

import (
	"crypto/rand"
	"strings"
	"time"
)

// codeAlphabet excludes visually ambiguous characters (0/O, 1/I) so a
// code can be read aloud or typed by a human.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CodeLength is the fixed length of a room code. 32^5 ≈ 33.5M codes,
// which makes accidental collisions negligible at casual-game scale;
// the controller still regenerates on collision.
const CodeLength = 5

// GenerateCode creates a random room code from the restricted alphabet.
func GenerateCode() string {
	b := make([]byte, CodeLength)
	if _, err := rand.Read(b); err != nil {
		// Timestamp-based fallback, still within the alphabet.
		n := time.Now().UnixNano()
		for i := range b {
			b[i] = codeAlphabet[n%int64(len(codeAlphabet))]
			n /= int64(len(codeAlphabet))
		}
		return string(b)
	}
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return string(b)
}

// NormalizeCode uppercases user-entered codes so "a7k2p" joins "A7K2P".
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
