package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exact", Truncate("exact", 5))
	assert.Equal(t, "clipp...", Truncate("clipped off", 5))
	assert.Equal(t, "", Truncate("", 5))
}

func TestTruncateMultiByte(t *testing.T) {
	// Counts runes, not bytes
	assert.Equal(t, "café", Truncate("café", 4))
	assert.Equal(t, "caf...", Truncate("café latte", 3))
}

func TestWrapText(t *testing.T) {
	assert.Nil(t, WrapText("", 10))
	assert.Equal(t, []string{"one"}, WrapText("one", 10))
	assert.Equal(t,
		[]string{"the quick", "brown fox"},
		WrapText("the quick brown fox", 10))
}

func TestWrapTextLongWordGetsOwnLine(t *testing.T) {
	assert.Equal(t,
		[]string{"a", "supercalifragilistic", "b"},
		WrapText("a supercalifragilistic b", 5))
}

func TestWrapTextCollapsesWhitespace(t *testing.T) {
	assert.Equal(t,
		[]string{"spaced out"},
		WrapText("  spaced   out  ", 20))
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "Spring_2024", SanitizeFileName("Spring 2024"))
	assert.Equal(t, "a_b_c", SanitizeFileName("a/b\\c"))
	assert.Equal(t, "plain", SanitizeFileName("plain"))
	assert.Equal(t, "___", SanitizeFileName("???"))
}
