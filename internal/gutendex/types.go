package gutendex

// SearchResult is the parsed shape of a Gutendex search response.
// Unknown fields are ignored.
type SearchResult struct {
	Results []Candidate `json:"results"`
}

// Candidate is one raw search-result record, before it is mapped into
// catalog entities.
type Candidate struct {
	Title     string   `json:"title"`
	Downloads int      `json:"download_count"`
	Languages []string `json:"languages"`
	Authors   []Person `json:"authors"`
}

type Person struct {
	Name      string `json:"name"`
	BirthYear *int   `json:"birth_year"`
	DeathYear *int   `json:"death_year"`
}
