package authors

import (
	"context"

	"libroteca/internal/types"
)

type Repository interface {
	// GetByKey looks an author up by their normalized name key.
	// Returns nil without error when there is no match.
	GetByKey(ctx context.Context, key string) (*types.Author, error)

	// GetByIds shall return map with NON-NULLS!
	GetByIds(ctx context.Context, ids ...int64) (map[int64]*types.Author, error)

	// Save inserts the author and fills in their assigned id.
	Save(ctx context.Context, author *types.Author) error

	GetAll(ctx context.Context) ([]*types.Author, error)

	// AliveInRange returns authors with birth_year in [min, max] that
	// were not dead before min, ordered by birth year ascending, with
	// books eagerly resolved (empty slice, never nil). Callers must
	// reject min > max before calling.
	AliveInRange(ctx context.Context, min, max int) ([]*types.AuthorBooks, error)
}
