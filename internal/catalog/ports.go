package catalog

import (
	"context"
)

// Repository defines the contract for catalog storage. All name and
// title lookups are case-insensitive. Create methods assign the ID on
// success and return ErrDuplicate on a unique-key conflict.
type Repository interface {
	FindAuthorByName(ctx context.Context, name string) (Author, error)
	CreateAuthor(ctx context.Context, a *Author) error
	FindBookByTitle(ctx context.Context, title string) (Book, error)
	CreateBook(ctx context.Context, b *Book) error

	AllBooks(ctx context.Context) ([]Book, error)
	AllAuthors(ctx context.Context) ([]Author, error)
	BooksByAuthor(ctx context.Context, authorID int64) ([]Book, error)
	AuthorsAliveDuring(ctx context.Context, lowYear, highYear int) ([]Author, error)
	BooksByLanguage(ctx context.Context, fragment string) ([]Book, error)
}

// RunRepository persists ingestion run bookkeeping.
type RunRepository interface {
	CreateRun(ctx context.Context, run *Run) (string, error)
	UpdateRun(ctx context.Context, run *Run) error
}
