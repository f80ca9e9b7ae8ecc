// Package server exposes the catalog's reports over a read-only HTTP
// API. All ingestion happens through the CLI.
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"libroteca/internal/catalog"
	"libroteca/internal/response"
	"libroteca/internal/storage/authors"
	"libroteca/internal/storage/books"
	"libroteca/internal/types"
)

func Handler(ar authors.Repository, br books.Repository, rr *response.Responder) http.Handler {
	r := chi.NewRouter()

	r.Get("/books", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var rows []*types.Book
		var err error

		if language := q.Get("language"); language != "" {
			if !catalog.IsValidLanguage(language) {
				rr.RespondAndLogCustom(w, r.Context(), errors.New("unknown language code: "+language),
					slog.LevelInfo, http.StatusBadRequest)
				return
			}

			rows, err = br.GetByLanguage(r.Context(), language)
		} else {
			rows, err = br.GetAll(r.Context())
		}

		if err != nil {
			rr.RespondAndLogError(w, r.Context(), err)
			return
		}

		sendBooks(w, r, ar, rr, rows)
	})

	r.Get("/books/top", func(w http.ResponseWriter, r *http.Request) {
		limit := getIntOrDefault("limit", r.URL.Query(), 10)
		if limit < 1 {
			rr.RespondAndLogCustom(w, r.Context(), errors.New("limit must be positive"),
				slog.LevelInfo, http.StatusBadRequest)
			return
		}

		rows, err := br.TopByDownloads(r.Context(), limit)
		if err != nil {
			rr.RespondAndLogError(w, r.Context(), err)
			return
		}

		sendBooks(w, r, ar, rr, rows)
	})

	r.Get("/authors", func(w http.ResponseWriter, r *http.Request) {
		rows, err := ar.GetAll(r.Context())
		if err != nil {
			rr.RespondAndLogError(w, r.Context(), err)
			return
		}

		if rows == nil {
			rows = make([]*types.Author, 0)
		}

		rr.SendJson(w, r.Context(), struct {
			Authors []*types.Author `json:"authors"`
		}{Authors: rows})
	})

	r.Get("/authors/alive", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		min, err := strconv.Atoi(q.Get("min"))
		if err != nil {
			rr.RespondAndLogCustom(w, r.Context(), errors.New("min must be an integer"),
				slog.LevelInfo, http.StatusBadRequest)
			return
		}

		max, err := strconv.Atoi(q.Get("max"))
		if err != nil {
			rr.RespondAndLogCustom(w, r.Context(), errors.New("max must be an integer"),
				slog.LevelInfo, http.StatusBadRequest)
			return
		}

		if min > max {
			rr.RespondAndLogCustom(w, r.Context(), fmt.Errorf("min (%d) must not exceed max (%d)", min, max),
				slog.LevelInfo, http.StatusBadRequest)
			return
		}

		rows, err := ar.AliveInRange(r.Context(), min, max)
		if err != nil {
			rr.RespondAndLogError(w, r.Context(), err)
			return
		}

		rr.SendJson(w, r.Context(), struct {
			Authors []*types.AuthorBooks `json:"authors"`
		}{Authors: rows})
	})

	return r
}

func sendBooks(w http.ResponseWriter, r *http.Request,
	ar authors.Repository, rr *response.Responder, rows []*types.Book) {

	var authorIds []int64
	seen := make(map[int64]struct{})
	for _, row := range rows {
		if row.AuthorId == nil {
			continue
		}
		if _, ok := seen[*row.AuthorId]; !ok {
			seen[*row.AuthorId] = struct{}{}
			authorIds = append(authorIds, *row.AuthorId)
		}
	}

	as, err := ar.GetByIds(r.Context(), authorIds...)
	if err != nil {
		rr.RespondAndLogError(w, r.Context(), err)
		return
	}

	if rows == nil {
		rows = make([]*types.Book, 0)
	}

	authorsById := make(map[string]*types.Author, len(as))
	for id, author := range as {
		authorsById[strconv.FormatInt(id, 10)] = author
	}

	rr.SendJson(w, r.Context(), struct {
		Books   []*types.Book            `json:"books"`
		Authors map[string]*types.Author `json:"authors"`
	}{
		Books:   rows,
		Authors: authorsById,
	})
}

func getIntOrDefault(key string, q url.Values, default_ int) int {
	if ls := q.Get(key); ls != "" {
		limit, err := strconv.Atoi(ls)
		if err == nil {
			return limit
		}
	}

	return default_
}
