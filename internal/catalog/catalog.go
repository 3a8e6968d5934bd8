package catalog

import (
	"time"
)

// Author is a cataloged author. Birth and death years use 0 as the
// "unknown" sentinel; a death year of 0 is rendered as still living.
type Author struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	BirthYear int    `json:"birth_year"`
	DeathYear int    `json:"death_year"`
}

// Book is a catalog entry. AuthorName is a denormalized copy of the
// linked author's name, written once at creation time.
type Book struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Language      string `json:"language"`
	DownloadCount int    `json:"download_count"`
	AuthorID      int64  `json:"author_id"`
	AuthorName    string `json:"author_name"`
}

// AuthorWithBooks is the listing shape for ListAuthors: the author plus
// the titles of the books linked to them.
type AuthorWithBooks struct {
	Author
	BookTitles []string `json:"book_titles"`
}

// Run records one search-and-ingest execution.
type Run struct {
	ID            string
	Query         string
	StartedAt     time.Time
	FinishedAt    *time.Time
	Status        string // RUNNING, COMPLETED, FAILED
	BooksCreated  int
	BooksSkipped  int
	BooksNoAuthor int
	Error         string
}
