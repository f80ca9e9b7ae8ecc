package books

import (
	"context"
	"errors"
	"log/slog"

	"github.com/doug-martin/goqu/v9"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"libroteca/internal/normalize"
	"libroteca/internal/types"
)

func NewPGXRepository(pg *pgxpool.Pool, l *slog.Logger) Repository {
	return &pgxRepo{pg: pg, g: goqu.Dialect("postgres"), l: l}
}

type pgxRepo struct {
	pg *pgxpool.Pool
	g  goqu.DialectWrapper
	l  *slog.Logger
}

type pgxBook struct {
	Id        int64  `db:"id"`
	Title     string `db:"title"`
	TitleKey  string `db:"title_key"`
	Downloads int    `db:"downloads"`
	Language  string `db:"language"`
	AuthorId  *int64 `db:"author_id"`
}

func (b *pgxBook) intoCommon() *types.Book {
	return &types.Book{
		Id:        b.Id,
		Title:     b.Title,
		Downloads: b.Downloads,
		Language:  b.Language,
		AuthorId:  b.AuthorId,
	}
}

func (p *pgxRepo) GetByKey(ctx context.Context, key string) (*types.Book, error) {
	sql, params, err := p.g.From("book").
		Where(goqu.C("title_key").Eq(key)).
		ToSQL()
	if err != nil {
		return nil, err
	}

	var row pgxBook

	err = pgxscan.Get(ctx, p.pg, &row, sql, params...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = nil
		}
		return nil, err
	}

	return row.intoCommon(), nil
}

func (p *pgxRepo) Save(ctx context.Context, book *types.Book) error {
	sql, params, err := p.g.Insert("book").
		Rows(goqu.Record{
			"title":     book.Title,
			"title_key": normalize.Key(book.Title),
			"downloads": book.Downloads,
			"language":  book.Language,
			"author_id": book.AuthorId,
		}).
		Returning("id").
		ToSQL()
	if err != nil {
		return err
	}

	return pgxscan.Get(ctx, p.pg, &book.Id, sql, params...)
}

func (p *pgxRepo) GetAll(ctx context.Context) ([]*types.Book, error) {
	return p.selectBooks(ctx, p.g.From("book").
		Order(goqu.C("id").Asc()))
}

func (p *pgxRepo) GetByLanguage(ctx context.Context, code string) ([]*types.Book, error) {
	return p.selectBooks(ctx, p.g.From("book").
		Where(goqu.C("language").Eq(code)).
		Order(goqu.C("id").Asc()))
}

func (p *pgxRepo) TopByDownloads(ctx context.Context, n int) ([]*types.Book, error) {
	return p.selectBooks(ctx, p.g.From("book").
		Order(goqu.C("downloads").Desc(), goqu.C("id").Asc()).
		Limit(uint(n)))
}

func (p *pgxRepo) GetByAuthorIds(ctx context.Context, ids ...int64) (map[int64][]*types.Book, error) {
	if len(ids) == 0 {
		return make(map[int64][]*types.Book), nil
	}

	rows, err := p.selectBooks(ctx, p.g.From("book").
		Where(goqu.C("author_id").In(ids)).
		Order(goqu.C("id").Asc()))
	if err != nil {
		return nil, err
	}

	ret := make(map[int64][]*types.Book, len(ids))
	for _, row := range rows {
		ret[*row.AuthorId] = append(ret[*row.AuthorId], row)
	}

	return ret, nil
}

func (p *pgxRepo) selectBooks(ctx context.Context, qb *goqu.SelectDataset) ([]*types.Book, error) {
	sql, params, err := qb.ToSQL()
	if err != nil {
		return nil, err
	}

	var rows []pgxBook

	err = pgxscan.Select(ctx, p.pg, &rows, sql, params...)
	if err != nil {
		return nil, err
	}

	ret := make([]*types.Book, 0, len(rows))
	for _, row := range rows {
		row := row
		ret = append(ret, row.intoCommon())
	}

	return ret, nil
}
