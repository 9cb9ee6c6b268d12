package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSearchTerms(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"simple", "tomato,pasta", []string{"tomato", "pasta"}},
		{"mixed case", "Tomato,PASTA", []string{"tomato", "pasta"}},
		{"whitespace trimmed", " tomato ,  pasta ", []string{"tomato", "pasta"}},
		{"empty terms dropped", "tomato, ,pasta", []string{"tomato", "pasta"}},
		{"duplicates removed", "tomato,Tomato,tomato", []string{"tomato"}},
		{"empty query", "", nil},
		{"only separators", " , ,, ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSearchTerms(tt.query))
		})
	}
}

func TestMatchesIngredients(t *testing.T) {
	ingredients := []string{"Tomato", "pasta", "Olive Oil"}

	t.Run("case-insensitive match", func(t *testing.T) {
		assert.True(t, MatchesIngredients([]string{"tomato"}, ingredients))
	})

	t.Run("all terms required", func(t *testing.T) {
		assert.True(t, MatchesIngredients([]string{"tomato", "pasta"}, ingredients))
		assert.False(t, MatchesIngredients([]string{"tomato", "pasta", "cheese"}, ingredients))
	})

	t.Run("exact token not substring", func(t *testing.T) {
		assert.False(t, MatchesIngredients([]string{"tom"}, ingredients))
		assert.False(t, MatchesIngredients([]string{"olive"}, ingredients))
		assert.True(t, MatchesIngredients([]string{"olive oil"}, ingredients))
	})

	t.Run("no terms matches everything", func(t *testing.T) {
		assert.True(t, MatchesIngredients(nil, ingredients))
		assert.True(t, MatchesIngredients(nil, nil))
	})
}
