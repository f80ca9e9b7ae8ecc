package authors

import (
	"context"
	"errors"
	"log/slog"

	"github.com/doug-martin/goqu/v9"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"libroteca/internal/normalize"
	"libroteca/internal/storage/books"
	"libroteca/internal/types"
)

func NewPGXRepository(pg *pgxpool.Pool, br books.Repository, l *slog.Logger) Repository {
	return &pgxRepo{pg: pg, g: goqu.Dialect("postgres"), books: br, l: l}
}

type pgxRepo struct {
	pg    *pgxpool.Pool
	g     goqu.DialectWrapper
	books books.Repository
	l     *slog.Logger
}

type pgxAuthor struct {
	Id        int64  `db:"id"`
	Name      string `db:"name"`
	NameKey   string `db:"name_key"`
	BirthYear *int   `db:"birth_year"`
	DeathYear *int   `db:"death_year"`
}

func (a *pgxAuthor) intoCommon() *types.Author {
	return &types.Author{
		Id:        a.Id,
		Name:      a.Name,
		BirthYear: a.BirthYear,
		DeathYear: a.DeathYear,
	}
}

func (p *pgxRepo) GetByKey(ctx context.Context, key string) (*types.Author, error) {
	sql, params, err := p.g.From("author").
		Where(goqu.C("name_key").Eq(key)).
		ToSQL()
	if err != nil {
		return nil, err
	}

	var row pgxAuthor

	err = pgxscan.Get(ctx, p.pg, &row, sql, params...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = nil
		}
		return nil, err
	}

	return row.intoCommon(), nil
}

func (p *pgxRepo) GetByIds(ctx context.Context, ids ...int64) (map[int64]*types.Author, error) {
	if len(ids) == 0 {
		return make(map[int64]*types.Author), nil
	}

	sql, params, err := p.g.From("author").
		Where(goqu.C("id").In(ids)).
		ToSQL()
	if err != nil {
		return nil, err
	}

	var rows []pgxAuthor

	err = pgxscan.Select(ctx, p.pg, &rows, sql, params...)
	if err != nil {
		return nil, err
	}

	ret := make(map[int64]*types.Author, len(rows))
	for _, row := range rows {
		row := row
		ret[row.Id] = row.intoCommon()
	}

	return ret, nil
}

func (p *pgxRepo) Save(ctx context.Context, author *types.Author) error {
	sql, params, err := p.g.Insert("author").
		Rows(goqu.Record{
			"name":       author.Name,
			"name_key":   normalize.Key(author.Name),
			"birth_year": author.BirthYear,
			"death_year": author.DeathYear,
		}).
		Returning("id").
		ToSQL()
	if err != nil {
		return err
	}

	return pgxscan.Get(ctx, p.pg, &author.Id, sql, params...)
}

func (p *pgxRepo) GetAll(ctx context.Context) ([]*types.Author, error) {
	sql, params, err := p.g.From("author").
		Order(goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, err
	}

	var rows []pgxAuthor

	err = pgxscan.Select(ctx, p.pg, &rows, sql, params...)
	if err != nil {
		return nil, err
	}

	ret := make([]*types.Author, 0, len(rows))
	for _, row := range rows {
		row := row
		ret = append(ret, row.intoCommon())
	}

	return ret, nil
}

func (p *pgxRepo) AliveInRange(ctx context.Context, min, max int) ([]*types.AuthorBooks, error) {
	sql, params, err := p.g.From("author").
		Where(
			goqu.C("birth_year").Between(goqu.Range(min, max)),
			goqu.Or(
				goqu.C("death_year").IsNull(),
				goqu.C("death_year").Gte(min),
			),
		).
		Order(goqu.C("birth_year").Asc()).
		ToSQL()
	if err != nil {
		return nil, err
	}

	var rows []pgxAuthor

	err = pgxscan.Select(ctx, p.pg, &rows, sql, params...)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return []*types.AuthorBooks{}, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.Id)
	}

	// Books are resolved eagerly in one batch, the result never holds
	// anything that requires the connection to stay open.
	byAuthor, err := p.books.GetByAuthorIds(ctx, ids...)
	if err != nil {
		return nil, err
	}

	ret := make([]*types.AuthorBooks, 0, len(rows))
	for _, row := range rows {
		row := row

		bs := byAuthor[row.Id]
		if bs == nil {
			bs = []*types.Book{}
		}

		ret = append(ret, &types.AuthorBooks{
			Author: row.intoCommon(),
			Books:  bs,
		})
	}

	return ret, nil
}
