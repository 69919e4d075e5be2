package stringutils_test

import (
	"testing"

	"github.com/habiliai/searchchat/internal/stringutils"
	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "control characters",
			input:    "test\u0000\u0001\u001f\u007fstring",
			expected: "teststring",
		},
		{
			name:     "whitespace runs",
			input:    "  normal\tstring\n\nwith \r whitespace  ",
			expected: "normal string with whitespace",
		},
		{
			name:     "html entities",
			input:    "Tom &amp; Jerry &quot;cartoon&quot;",
			expected: `Tom & Jerry "cartoon"`,
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, stringutils.Clean(tc.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", stringutils.Truncate("hello world", 5))
	assert.Equal(t, "héllo", stringutils.Truncate("héllo wörld", 5), "counts runes, not bytes")
	assert.Equal(t, "short", stringutils.Truncate("short", 200))
	assert.Equal(t, "no cap", stringutils.Truncate("no cap", 0))
}
