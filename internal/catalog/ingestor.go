package catalog

import (
	"context"
	"errors"
	"strings"

	"bookcatalog/internal/gutendex"
)

type OutcomeStatus string

const (
	OutcomeCreated       OutcomeStatus = "CREATED"
	OutcomeAlreadyExists OutcomeStatus = "ALREADY_EXISTS"
	OutcomeNoAuthor      OutcomeStatus = "NO_AUTHOR"
)

// Outcome reports what happened to one raw book during ingestion.
type Outcome struct {
	Status OutcomeStatus `json:"status"`
	Title  string        `json:"title"`
	Book   *Book         `json:"book,omitempty"`
}

// BookIngestor decides whether a raw book is already cataloged (by
// case-insensitive title) and persists a new entry if not.
type BookIngestor struct {
	repo Repository
}

func NewBookIngestor(repo Repository) *BookIngestor {
	return &BookIngestor{repo: repo}
}

func (i *BookIngestor) Ingest(ctx context.Context, raw gutendex.Book, author Author) (Outcome, error) {
	_, err := i.repo.FindBookByTitle(ctx, raw.Title)
	if err == nil {
		return Outcome{Status: OutcomeAlreadyExists, Title: raw.Title}, nil
	}
	if !errors.Is(err, ErrBookNotFound) {
		return Outcome{}, err
	}

	book := Book{
		Title:         raw.Title,
		Language:      strings.Join(raw.Languages, ","),
		DownloadCount: raw.DownloadCount,
		AuthorID:      author.ID,
		AuthorName:    author.Name,
	}
	if err := i.repo.CreateBook(ctx, &book); err != nil {
		if errors.Is(err, ErrDuplicate) {
			// Lost the insert race; the title is cataloged now.
			return Outcome{Status: OutcomeAlreadyExists, Title: raw.Title}, nil
		}
		return Outcome{}, err
	}
	return Outcome{Status: OutcomeCreated, Title: raw.Title, Book: &book}, nil
}
