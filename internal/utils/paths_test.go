package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		baseDir  string
		expected string
	}{
		{"empty", "", "/project", ""},
		{"absolute unchanged", "/var/decks", "/project", "/var/decks"},
		{"relative joined", "decks/", "/project", "/project/decks"},
		{"parent reference", "../shared/results", "/project/sub", "/project/shared/results"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ResolvePath(tt.path, tt.baseDir)
			assert.Equal(t, filepath.Clean(tt.expected), filepath.Clean(result))
		})
	}
}

func TestResolvePaths(t *testing.T) {
	tests := []struct {
		name     string
		paths    []string
		baseDir  string
		expected []string
	}{
		{
			name:     "empty list",
			paths:    []string{},
			baseDir:  "/project",
			expected: nil,
		},
		{
			name:     "nil list",
			paths:    nil,
			baseDir:  "/project",
			expected: nil,
		},
		{
			name:     "mixed paths",
			paths:    []string{"/abs/decks", "results", "../weights.yaml"},
			baseDir:  "/project/sub",
			expected: []string{"/abs/decks", "/project/sub/results", "/project/weights.yaml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ResolvePaths(tt.paths, tt.baseDir)

			if tt.expected == nil {
				assert.Nil(t, result)
				return
			}
			cleanExpected := make([]string, len(tt.expected))
			for i, p := range tt.expected {
				cleanExpected[i] = filepath.Clean(p)
			}
			cleanResult := make([]string, len(result))
			for i, p := range result {
				cleanResult[i] = filepath.Clean(p)
			}
			assert.Equal(t, cleanExpected, cleanResult)
		})
	}
}
