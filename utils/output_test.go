package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFilename(t *testing.T) {
	tests := []struct {
		name     string
		parts    []string
		expected string
	}{
		{
			name:     "simple parts",
			parts:    []string{"golang", "hot_posts"},
			expected: "golang_hot_posts.json",
		},
		{
			name:     "query with spaces",
			parts:    []string{"python", "search", "machine learning"},
			expected: "python_search_machine_learning.json",
		},
		{
			name:     "empty parts dropped",
			parts:    []string{"golang", "", "stats"},
			expected: "golang_stats.json",
		},
		{
			name:     "surrounding whitespace trimmed",
			parts:    []string{" golang ", "top posts"},
			expected: "golang_top_posts.json",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, OutputFilename(tc.parts...))
		})
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	value := map[string]string{
		"title": "héllo wörld & <friends>",
	}
	require.NoError(t, WriteJSON(path, value))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// 2-space indentation, non-ASCII preserved, no HTML escaping
	assert.Contains(t, string(data), "  \"title\"")
	assert.Contains(t, string(data), "héllo wörld & <friends>")
	assert.NotContains(t, string(data), "\\u")
}
