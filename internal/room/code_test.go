package room

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCodeShape(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := GenerateCode()
		assert.Len(t, code, CodeLength)
		for _, r := range code {
			assert.Contains(t, codeAlphabet, string(r))
		}
	}
}

func TestGenerateCodeExcludesAmbiguousCharacters(t *testing.T) {
	for _, forbidden := range []string{"0", "O", "1", "I"} {
		assert.NotContains(t, codeAlphabet, forbidden)
	}
}

func TestGenerateCodeUniqueness(t *testing.T) {
	// 100 codes over a 32^5 space: a duplicate here is overwhelmingly
	// unlikely and would indicate a broken generator.
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateCode()
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "A7K2P", NormalizeCode("a7k2p"))
	assert.Equal(t, "A7K2P", NormalizeCode("  A7k2P \n"))
	assert.Equal(t, "", NormalizeCode(strings.Repeat(" ", 3)))
}
