package books

import (
	"context"

	"libroteca/internal/types"
)

type Repository interface {
	// GetByKey looks a book up by its normalized title key.
	// Returns nil without error when there is no match.
	GetByKey(ctx context.Context, key string) (*types.Book, error)

	// Save inserts the book and fills in its assigned id.
	Save(ctx context.Context, book *types.Book) error

	GetAll(ctx context.Context) ([]*types.Book, error)

	// GetByLanguage matches the stored language field exactly.
	GetByLanguage(ctx context.Context, code string) ([]*types.Book, error)

	// TopByDownloads returns at most n books, downloads descending.
	TopByDownloads(ctx context.Context, n int) ([]*types.Book, error)

	// GetByAuthorIds shall return map with NON-NULL slices for every
	// author that has books!
	GetByAuthorIds(ctx context.Context, ids ...int64) (map[int64][]*types.Book, error)
}
