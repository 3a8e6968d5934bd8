package catalog

import (
	"context"
	"errors"

	"bookcatalog/internal/gutendex"
)

// AuthorResolver maps a raw author record to its single canonical
// persisted Author, creating one only if no author with a
// case-insensitive matching name exists. First write wins: years on a
// later encounter of the same name are discarded.
type AuthorResolver struct {
	repo Repository
}

func NewAuthorResolver(repo Repository) *AuthorResolver {
	return &AuthorResolver{repo: repo}
}

func (r *AuthorResolver) Resolve(ctx context.Context, raw gutendex.Author) (Author, error) {
	existing, err := r.repo.FindAuthorByName(ctx, raw.Name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrAuthorNotFound) {
		return Author{}, err
	}

	author := Author{
		Name:      raw.Name,
		BirthYear: yearOrZero(raw.BirthYear),
		DeathYear: yearOrZero(raw.DeathYear),
	}
	if err := r.repo.CreateAuthor(ctx, &author); err != nil {
		if errors.Is(err, ErrDuplicate) {
			// Lost the insert race; the row exists now.
			return r.repo.FindAuthorByName(ctx, raw.Name)
		}
		return Author{}, err
	}
	return author, nil
}

func yearOrZero(year *int) int {
	if year == nil {
		return 0
	}
	return *year
}
