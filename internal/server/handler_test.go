package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libroteca/internal/response"
	"libroteca/internal/storage/storagetest"
	"libroteca/internal/types"
)

func intPtr(v int) *int { return &v }

func seed(t *testing.T) (*storagetest.Books, *storagetest.Authors) {
	t.Helper()

	bookRepo := &storagetest.Books{}
	authorRepo := &storagetest.Authors{Books: bookRepo}

	cervantes := &types.Author{Name: "Miguel de Cervantes", BirthYear: intPtr(1547), DeathYear: intPtr(1616)}
	require.NoError(t, authorRepo.Save(context.Background(), cervantes))

	require.NoError(t, bookRepo.Save(context.Background(), &types.Book{
		Title: "Don Quijote", Downloads: 100, Language: "es", AuthorId: &cervantes.Id,
	}))
	require.NoError(t, bookRepo.Save(context.Background(), &types.Book{
		Title: "Novelas ejemplares", Downloads: 20, Language: "es", AuthorId: &cervantes.Id,
	}))
	require.NoError(t, bookRepo.Save(context.Background(), &types.Book{
		Title: "Beowulf", Downloads: 50, Language: "en",
	}))

	return bookRepo, authorRepo
}

func get(t *testing.T, h http.Handler, target string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := rec.Result()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res, body
}

func TestBooksReport(t *testing.T) {
	bookRepo, authorRepo := seed(t)
	h := Handler(authorRepo, bookRepo, &response.Responder{DebugMode: true})

	res, body := get(t, h, "/books")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var got struct {
		Books   []*types.Book            `json:"books"`
		Authors map[string]*types.Author `json:"authors"`
	}
	require.NoError(t, json.Unmarshal(body, &got))

	assert.Len(t, got.Books, 3)
	require.Len(t, got.Authors, 1)
	assert.Equal(t, "Miguel de Cervantes", got.Authors["1"].Name)
}

func TestBooksByLanguage(t *testing.T) {
	bookRepo, authorRepo := seed(t)
	h := Handler(authorRepo, bookRepo, &response.Responder{DebugMode: true})

	res, body := get(t, h, "/books?language=en")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var got struct {
		Books []*types.Book `json:"books"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got.Books, 1)
	assert.Equal(t, "Beowulf", got.Books[0].Title)
}

func TestBooksByLanguageRejectsUnknownCode(t *testing.T) {
	bookRepo, authorRepo := seed(t)
	h := Handler(authorRepo, bookRepo, &response.Responder{DebugMode: true})

	res, body := get(t, h, "/books?language=tlh")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	// Debug-mode error bodies echo the message with the first rune
	// uppercased
	assert.Contains(t, string(body), "Unknown language code: tlh")
}

func TestTopBooks(t *testing.T) {
	bookRepo, authorRepo := seed(t)
	h := Handler(authorRepo, bookRepo, &response.Responder{DebugMode: true})

	res, body := get(t, h, "/books/top?limit=2")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var got struct {
		Books []*types.Book `json:"books"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got.Books, 2)
	assert.Equal(t, "Don Quijote", got.Books[0].Title)
	assert.Equal(t, "Beowulf", got.Books[1].Title)
}

func TestTopBooksRejectsNonPositiveLimit(t *testing.T) {
	bookRepo, authorRepo := seed(t)
	h := Handler(authorRepo, bookRepo, &response.Responder{DebugMode: true})

	res, _ := get(t, h, "/books/top?limit=0")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestAuthorsAlive(t *testing.T) {
	bookRepo, authorRepo := seed(t)
	h := Handler(authorRepo, bookRepo, &response.Responder{DebugMode: true})

	res, body := get(t, h, "/authors/alive?min=1500&max=1600")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var got struct {
		Authors []*types.AuthorBooks `json:"authors"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got.Authors, 1)
	assert.Equal(t, "Miguel de Cervantes", got.Authors[0].Author.Name)
	assert.Len(t, got.Authors[0].Books, 2)
}

func TestAuthorsAliveParamValidation(t *testing.T) {
	bookRepo, authorRepo := seed(t)
	h := Handler(authorRepo, bookRepo, &response.Responder{DebugMode: true})

	for _, target := range []string{
		"/authors/alive",
		"/authors/alive?min=abc&max=1600",
		"/authors/alive?min=1700&max=1600",
	} {
		res, _ := get(t, h, target)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, target)
	}
}

func TestOPDSCatalog(t *testing.T) {
	bookRepo, authorRepo := seed(t)

	h := OPDSCatalog(authorRepo, bookRepo, &response.Responder{DebugMode: true})
	res, body := get(t, http.HandlerFunc(h), "/opds/catalog")

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, strings.HasPrefix(res.Header.Get("Content-Type"), "application/atom+xml"))

	got := string(body)
	assert.Contains(t, got, "<title>Don Quijote</title>")
	assert.Contains(t, got, "Miguel de Cervantes")
	assert.Contains(t, got, "tag:libroteca:book:1")
}
