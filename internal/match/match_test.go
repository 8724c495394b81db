package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"len", "lenght", 3},
		{"upper", "upper", 0},
		{"flaw", "lawn", 2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestNormalizeIdent(t *testing.T) {
	assert.Equal(t, "unixmilli", NormalizeIdent("Unix_Milli"))
	assert.Equal(t, "timeduration", NormalizeIdent("time.Duration"))
	assert.Equal(t, "abc", NormalizeIdent("a-b c"))
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("UnixMilli", "unix_milli"), 1e-9)
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
}

func TestSuggest(t *testing.T) {
	candidates := []string{"len", "lower", "upper", "trim", "unixmilli"}

	assert.Equal(t, []string{"upper"}, Suggest("uper", candidates, DefaultMinScore, 0))
	assert.Equal(t, []string{"unixmilli"}, Suggest("unix_mili", candidates, DefaultMinScore, 0))
	assert.Empty(t, Suggest("completelydifferent", candidates, DefaultMinScore, 0))
	assert.Len(t, Suggest("l", []string{"la", "lb", "lc", "ld"}, 0.1, 2), 2)
}
