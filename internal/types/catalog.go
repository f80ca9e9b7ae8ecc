package types

type Author struct {
	Id        int64  `json:"id"`
	Name      string `json:"name"`
	BirthYear *int   `json:"birth_year"`
	// DeathYear nil means the author is presumed living
	DeathYear *int `json:"death_year"`
}

type Book struct {
	Id        int64  `json:"id"`
	Title     string `json:"title"`
	Downloads int    `json:"downloads"`
	Language  string `json:"language"`
	AuthorId  *int64 `json:"author_id"`
}

// AuthorBooks is an author together with their eagerly loaded books.
// Books is always non-nil.
type AuthorBooks struct {
	Author *Author `json:"author"`
	Books  []*Book `json:"books"`
}
