package normalize

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "blank", input: "   \t\n ", expected: ""},
		{name: "lowercases", input: "HAMLET", expected: "hamlet"},
		{name: "folds accented vowels", input: "Ángel Ganivet", expected: "angel ganivet"},
		{name: "folds all vowel variants", input: "áàäâ éèëê íìïî óòöô úùüû", expected: "aaaa eeee iiii oooo uuuu"},
		{name: "keeps other diacritics", input: "Año Señor", expected: "año señor"},
		{name: "collapses inner whitespace", input: "Don   Quijote \t de la  Mancha", expected: "don quijote de la mancha"},
		{name: "trims", input: "  la regenta  ", expected: "la regenta"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, input := range []string{"Ángel", "  Doña   PERFECTA ", "Crónica de una muerte anunciada"} {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestNormalizeInsensitive(t *testing.T) {
	assert.Equal(t, Normalize("angel"), Normalize("Ángel"))
	assert.Equal(t, Normalize("angel"), Normalize("ANGEL "))
}

func TestKeyCapsLength(t *testing.T) {
	long := strings.Repeat("a", KeyMaxLen+100)
	assert.Len(t, Key(long), KeyMaxLen)

	short := "El Aleph"
	assert.Equal(t, Normalize(short), Key(short))
}

func TestKeyCountsCharactersNotBytes(t *testing.T) {
	// "ñ" is two bytes but one character; a 300-character title is
	// under the cap and must keep its full key
	whole := strings.Repeat("ñ", 300)
	assert.Equal(t, whole, Key(whole))

	long := strings.Repeat("ñ", KeyMaxLen+10)
	key := Key(long)
	assert.Equal(t, KeyMaxLen, utf8.RuneCountInString(key))
	assert.True(t, strings.HasPrefix(long, key))
}

func TestKeyDistinctWithinCap(t *testing.T) {
	// Titles that differ before character 500 must get distinct keys
	a := strings.Repeat("ñ", 300)
	b := strings.Repeat("ñ", 259) + "x" + strings.Repeat("ñ", 40)
	assert.NotEqual(t, Key(a), Key(b))
}
