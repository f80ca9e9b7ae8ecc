package catalog

import (
	"context"
	"log/slog"

	"libroteca/internal/normalize"
	"libroteca/internal/storage/authors"
	"libroteca/internal/storage/books"
	"libroteca/internal/types"
)

type Status uint8

const (
	StatusInserted Status = iota + 1
	StatusAlreadyExists
	StatusRejected
)

const (
	ReasonNoData     = "no data"
	ReasonEmptyTitle = "empty title"
)

// Outcome of one ingestion. Book is set for Inserted and AlreadyExists,
// Reason for Rejected.
type Outcome struct {
	Status Status
	Book   *types.Book
	Reason string
}

func inserted(b *types.Book) Outcome {
	return Outcome{Status: StatusInserted, Book: b}
}

func alreadyExists(b *types.Book) Outcome {
	return Outcome{Status: StatusAlreadyExists, Book: b}
}

func rejected(reason string) Outcome {
	return Outcome{Status: StatusRejected, Reason: reason}
}

type Ingestor struct {
	Logger  *slog.Logger
	Books   books.Repository
	Authors authors.Repository
}

// Ingest deduplicates and persists one candidate. A candidate whose
// normalized title matches a stored book causes no writes at all, even
// when its author payload differs from what is stored. Author reuse is
// first-write-wins: stored birth/death years are never overwritten.
//
// The author-then-book write pair is not transactional. When the book
// save fails after a new author was persisted, the author stays and is
// reused on a retry.
func (i *Ingestor) Ingest(ctx context.Context, candidate *Candidate) Outcome {
	if candidate == nil {
		return rejected(ReasonNoData)
	}

	titleKey := normalize.Key(candidate.Title)
	if titleKey == "" {
		return rejected(ReasonEmptyTitle)
	}

	existing, err := i.Books.GetByKey(ctx, titleKey)
	if err != nil {
		i.Logger.Error("Failed to look up book by title key: " + err.Error())
		return rejected(err.Error())
	}

	if existing != nil {
		i.Logger.Debug("Book already registered: " + existing.Title)
		return alreadyExists(existing)
	}

	var authorId *int64
	if candidate.Author != nil {
		author, err := i.resolveAuthor(ctx, candidate.Author)
		if err != nil {
			i.Logger.Error("Failed to resolve author: " + err.Error())
			return rejected(err.Error())
		}

		authorId = &author.Id
	}

	book := &types.Book{
		Title:     candidate.Title,
		Downloads: candidate.Downloads,
		Language:  candidate.Language,
		AuthorId:  authorId,
	}

	err = i.Books.Save(ctx, book)
	if err != nil {
		i.Logger.Error("Failed to save book " + candidate.Title + ": " + err.Error())
		return rejected(err.Error())
	}

	i.Logger.Info("Saved book " + book.Title)

	return inserted(book)
}

func (i *Ingestor) resolveAuthor(ctx context.Context, payload *AuthorPayload) (*types.Author, error) {
	existing, err := i.Authors.GetByKey(ctx, normalize.Key(payload.Name))
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return existing, nil
	}

	author := &types.Author{
		Name:      payload.Name,
		BirthYear: payload.BirthYear,
		DeathYear: payload.DeathYear,
	}

	err = i.Authors.Save(ctx, author)
	if err != nil {
		return nil, err
	}

	i.Logger.Info("Saved author " + author.Name)

	return author, nil
}
