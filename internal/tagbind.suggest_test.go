package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditDistance(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{"empty strings", "", "", 0},
		{"empty a", "", "hello", 5},
		{"empty b", "hello", "", 5},
		{"identical", "hello", "hello", 0},
		{"one char diff", "hello", "hallo", 1},
		{"completely different", "abc", "xyz", 3},
		{"insertion", "test", "tests", 1},
		{"deletion", "tests", "test", 1},
		{"substitution", "test", "tent", 1},
		{"case sensitive", "Hello", "hello", 1},
		{"longer strings", "username", "userName", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := editDistance(tt.a, tt.b)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFindSimilar(t *testing.T) {
	t.Run("finds similar names", func(t *testing.T) {
		candidates := []string{"limit", "limits", "limited", "offset", "order"}
		result := FindSimilar("limt", candidates, 3)

		assert.Contains(t, result, "limit")
		assert.LessOrEqual(t, len(result), 3)
	})

	t.Run("returns empty for no matches", func(t *testing.T) {
		candidates := []string{"xyz", "abc", "def"}
		result := FindSimilar("username", candidates, 3)

		assert.Empty(t, result)
	})

	t.Run("respects max", func(t *testing.T) {
		candidates := []string{"name", "names", "named", "nam", "namex"}
		result := FindSimilar("name", candidates, 2)

		assert.LessOrEqual(t, len(result), 2)
	})

	t.Run("empty candidates", func(t *testing.T) {
		result := FindSimilar("name", nil, 3)
		assert.Empty(t, result)
	})

	t.Run("zero max", func(t *testing.T) {
		candidates := []string{"name", "names"}
		result := FindSimilar("name", candidates, 0)
		assert.Empty(t, result)
	})

	t.Run("case insensitive matching", func(t *testing.T) {
		candidates := []string{"UserName", "USERNAME", "username"}
		result := FindSimilar("userName", candidates, 3)

		// Should find all three due to case-insensitive matching
		assert.NotEmpty(t, result)
	})

	t.Run("sorts by similarity", func(t *testing.T) {
		candidates := []string{"names", "nam", "name", "namex"}
		result := FindSimilar("name", candidates, 4)

		// "name" should be first (distance 0)
		if len(result) > 0 {
			assert.Equal(t, "name", result[0])
		}
	})
}

func TestFormatSuggestions(t *testing.T) {
	tests := []struct {
		name     string
		names    []string
		expected string
	}{
		{"no suggestions", nil, ""},
		{"one suggestion", []string{"limit"}, ". Did you mean 'limit'?"},
		{"two suggestions", []string{"limit", "offset"}, ". Did you mean 'limit' or 'offset'?"},
		{"three suggestions", []string{"a", "b", "c"}, ". Did you mean 'a', 'b' or 'c'?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatSuggestions(tt.names))
		})
	}
}
