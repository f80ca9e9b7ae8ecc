package server

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/opds-community/libopds2-go/opds1"

	"libroteca/internal/response"
	"libroteca/internal/storage/authors"
	"libroteca/internal/storage/books"
)

const (
	opdsContentType = "application/atom+xml;profile=opds-catalog"

	feedId        = "tag:libroteca:catalog"
	bookIdPattern = "tag:libroteca:book:%d"
)

// Wraps the opds1 feed so the XML root element is named per Atom.
type atomFeed struct {
	XMLName xml.Name `xml:"feed"`
	opds1.Feed
}

// OPDSCatalog renders the whole catalog as an OPDS 1 acquisition feed.
func OPDSCatalog(ar authors.Repository, br books.Repository, rr *response.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := br.GetAll(r.Context())
		if err != nil {
			rr.RespondAndLogError(w, r.Context(), err)
			return
		}

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

		feed := opds1.Feed{
			ID:      feedId,
			Title:   "Libroteca",
			Updated: time.Now().UTC(),
			Links: []opds1.Link{{
				Rel:      "self",
				Href:     r.URL.Path,
				TypeLink: opdsContentType,
			}},
		}

		for _, row := range rows {
			entry := opds1.Entry{
				ID:       fmt.Sprintf(bookIdPattern, row.Id),
				Title:    row.Title,
				Language: row.Language,
			}
			entry.Content.Content = "Descargas: " + strconv.Itoa(row.Downloads)
			entry.Content.ContentType = "text"

			if row.AuthorId != nil {
				if author := as[*row.AuthorId]; author != nil {
					entry.Author = []opds1.Author{{Name: author.Name}}
				}
			}

			feed.Entries = append(feed.Entries, entry)
		}

		bs, err := xml.Marshal(atomFeed{Feed: feed})
		if err != nil {
			rr.RespondAndLogError(w, r.Context(), err)
			return
		}

		w.Header().Set("Content-Type", opdsContentType)
		_, _ = w.Write([]byte(xml.Header))
		_, _ = w.Write(bs)
	}
}
