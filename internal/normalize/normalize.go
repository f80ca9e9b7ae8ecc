// Package normalize produces the canonical matching keys used to
// deduplicate titles and author names. Displayed values are never
// normalized, only the lookup keys are.
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// KeyMaxLen caps lookup keys, in characters, to the width of the key
// columns in the store.
const KeyMaxLen = 500

// Folds a fixed set of accented Latin vowels. Diacritics outside this
// set are left as-is, so e.g. "ñ" stays distinct from "n".
var foldVowels = map[rune]rune{
	'á': 'a', 'à': 'a', 'ä': 'a', 'â': 'a',
	'é': 'e', 'è': 'e', 'ë': 'e', 'ê': 'e',
	'í': 'i', 'ì': 'i', 'ï': 'i', 'î': 'i',
	'ó': 'o', 'ò': 'o', 'ö': 'o', 'ô': 'o',
	'ú': 'u', 'ù': 'u', 'ü': 'u', 'û': 'u',
}

// Normalize lowercases, folds the fixed accented-vowel set, collapses
// whitespace runs to a single space and trims. Empty or blank input
// yields "". Idempotent.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(s))

	space := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) {
			space = true
			continue
		}

		if space {
			if sb.Len() > 0 {
				sb.WriteRune(' ')
			}
			space = false
		}

		if folded, ok := foldVowels[r]; ok {
			r = folded
		}
		sb.WriteRune(r)
	}

	return sb.String()
}

// Key returns the normalized form truncated to KeyMaxLen characters.
func Key(s string) string {
	key := Normalize(s)
	if utf8.RuneCountInString(key) <= KeyMaxLen {
		return key
	}

	return string([]rune(key)[:KeyMaxLen])
}
