package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libroteca/internal/gutendex"
)

func intPtr(v int) *int { return &v }

func TestFirstCandidateEmpty(t *testing.T) {
	assert.Nil(t, FirstCandidate(nil))
	assert.Nil(t, FirstCandidate(&gutendex.SearchResult{}))
	assert.Nil(t, FirstCandidate(&gutendex.SearchResult{Results: []gutendex.Candidate{}}))
}

func TestFirstCandidateTakesFirstOnly(t *testing.T) {
	res := &gutendex.SearchResult{Results: []gutendex.Candidate{
		{Title: "Hamlet", Downloads: 42, Languages: []string{"en", "fr"},
			Authors: []gutendex.Person{
				{Name: "William Shakespeare", BirthYear: intPtr(1564), DeathYear: intPtr(1616)},
				{Name: "Someone Else"},
			}},
		{Title: "Macbeth"},
	}}

	c := FirstCandidate(res)
	require.NotNil(t, c)
	assert.Equal(t, "Hamlet", c.Title)
	assert.Equal(t, 42, c.Downloads)
	assert.Equal(t, "en", c.Language)
	require.NotNil(t, c.Author)
	assert.Equal(t, "William Shakespeare", c.Author.Name)
	assert.Equal(t, 1564, *c.Author.BirthYear)
	assert.Equal(t, 1616, *c.Author.DeathYear)
}

func TestFirstCandidateDefaults(t *testing.T) {
	res := &gutendex.SearchResult{Results: []gutendex.Candidate{
		{Title: "Anónimo", Downloads: -5},
	}}

	c := FirstCandidate(res)
	require.NotNil(t, c)
	assert.Equal(t, LanguageUnknown, c.Language)
	assert.Equal(t, 0, c.Downloads)
	assert.Nil(t, c.Author)
}
