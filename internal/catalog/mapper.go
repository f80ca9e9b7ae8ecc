// Package catalog turns raw search results into deduplicated, persisted
// Author and Book entities.
package catalog

import (
	"libroteca/internal/gutendex"
)

// LanguageUnknown is stored when the source reports no language.
const LanguageUnknown = "Desconocido"

// ValidLanguages is the allow-list for the by-language report. Callers
// reject anything else before the store is queried.
var ValidLanguages = []string{"es", "it", "en", "ja", "fr", "pt", "ru", "zh", "de", "ar"}

func IsValidLanguage(code string) bool {
	for _, valid := range ValidLanguages {
		if code == valid {
			return true
		}
	}

	return false
}

// Candidate is one mapped search-result record, ready for ingestion.
// Title and author fields are kept verbatim; normalization happens at
// lookup time.
type Candidate struct {
	Title     string
	Downloads int
	Language  string
	Author    *AuthorPayload
}

// AuthorPayload nil on a Candidate means the book stands alone.
type AuthorPayload struct {
	Name      string
	BirthYear *int
	DeathYear *int
}

// FirstCandidate maps the first record of a search result. Returns nil
// when there is nothing to ingest. Records past the first are discarded
// on purpose.
func FirstCandidate(res *gutendex.SearchResult) *Candidate {
	if res == nil || len(res.Results) == 0 {
		return nil
	}

	raw := res.Results[0]

	language := LanguageUnknown
	if len(raw.Languages) > 0 {
		language = raw.Languages[0]
	}

	downloads := raw.Downloads
	if downloads < 0 {
		downloads = 0
	}

	var author *AuthorPayload
	if len(raw.Authors) > 0 {
		author = &AuthorPayload{
			Name:      raw.Authors[0].Name,
			BirthYear: raw.Authors[0].BirthYear,
			DeathYear: raw.Authors[0].DeathYear,
		}
	}

	return &Candidate{
		Title:     raw.Title,
		Downloads: downloads,
		Language:  language,
		Author:    author,
	}
}
