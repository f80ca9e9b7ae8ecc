// Package storagetest provides in-memory implementations of the storage
// repositories for tests.
package storagetest

import (
	"context"
	"sort"

	"libroteca/internal/normalize"
	"libroteca/internal/types"
)

// Books is an in-memory books.Repository. Set the Err fields to force
// failures.
type Books struct {
	Rows []*types.Book

	GetErr  error
	SaveErr error

	nextId int64
}

func (m *Books) GetByKey(ctx context.Context, key string) (*types.Book, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}

	for _, b := range m.Rows {
		if normalize.Key(b.Title) == key {
			return b, nil
		}
	}

	return nil, nil
}

func (m *Books) Save(ctx context.Context, book *types.Book) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}

	m.nextId++
	book.Id = m.nextId
	m.Rows = append(m.Rows, book)

	return nil
}

func (m *Books) GetAll(ctx context.Context) ([]*types.Book, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}

	return append([]*types.Book{}, m.Rows...), nil
}

func (m *Books) GetByLanguage(ctx context.Context, code string) ([]*types.Book, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}

	ret := []*types.Book{}
	for _, b := range m.Rows {
		if b.Language == code {
			ret = append(ret, b)
		}
	}

	return ret, nil
}

func (m *Books) TopByDownloads(ctx context.Context, n int) ([]*types.Book, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}

	ret := append([]*types.Book{}, m.Rows...)
	sort.SliceStable(ret, func(i, j int) bool {
		if ret[i].Downloads != ret[j].Downloads {
			return ret[i].Downloads > ret[j].Downloads
		}
		return ret[i].Id < ret[j].Id
	})

	if len(ret) > n {
		ret = ret[:n]
	}

	return ret, nil
}

func (m *Books) GetByAuthorIds(ctx context.Context, ids ...int64) (map[int64][]*types.Book, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}

	want := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	ret := make(map[int64][]*types.Book)
	for _, b := range m.Rows {
		if b.AuthorId == nil {
			continue
		}
		if _, ok := want[*b.AuthorId]; ok {
			ret[*b.AuthorId] = append(ret[*b.AuthorId], b)
		}
	}

	return ret, nil
}

// Authors is an in-memory authors.Repository.
type Authors struct {
	Rows  []*types.Author
	Books *Books

	GetErr  error
	SaveErr error

	nextId int64
}

func (m *Authors) GetByKey(ctx context.Context, key string) (*types.Author, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}

	for _, a := range m.Rows {
		if normalize.Key(a.Name) == key {
			return a, nil
		}
	}

	return nil, nil
}

func (m *Authors) GetByIds(ctx context.Context, ids ...int64) (map[int64]*types.Author, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}

	want := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	ret := make(map[int64]*types.Author)
	for _, a := range m.Rows {
		if _, ok := want[a.Id]; ok {
			ret[a.Id] = a
		}
	}

	return ret, nil
}

func (m *Authors) Save(ctx context.Context, author *types.Author) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}

	m.nextId++
	author.Id = m.nextId
	m.Rows = append(m.Rows, author)

	return nil
}

func (m *Authors) GetAll(ctx context.Context) ([]*types.Author, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}

	return append([]*types.Author{}, m.Rows...), nil
}

func (m *Authors) AliveInRange(ctx context.Context, min, max int) ([]*types.AuthorBooks, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}

	matched := []*types.Author{}
	for _, a := range m.Rows {
		if a.BirthYear == nil || *a.BirthYear < min || *a.BirthYear > max {
			continue
		}
		if a.DeathYear != nil && *a.DeathYear < min {
			continue
		}
		matched = append(matched, a)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return *matched[i].BirthYear < *matched[j].BirthYear
	})

	ret := make([]*types.AuthorBooks, 0, len(matched))
	for _, a := range matched {
		bs := []*types.Book{}
		if m.Books != nil {
			byAuthor, err := m.Books.GetByAuthorIds(ctx, a.Id)
			if err != nil {
				return nil, err
			}
			if got := byAuthor[a.Id]; got != nil {
				bs = got
			}
		}

		ret = append(ret, &types.AuthorBooks{Author: a, Books: bs})
	}

	return ret, nil
}
