package catalog

import (
	"context"
	"strings"
)

// Languages accepted by BooksByLanguage. Anything else is rejected
// before the store is queried.
var supportedLanguages = map[string]bool{
	"es": true,
	"en": true,
	"fr": true,
	"pt": true,
}

// QueryService provides the read-only operations over the catalog. It
// never mutates the store; every call re-reads current state.
type QueryService struct {
	repo Repository
}

func NewQueryService(repo Repository) *QueryService {
	return &QueryService{repo: repo}
}

// ListBooks returns all books sorted ascending by title.
func (s *QueryService) ListBooks(ctx context.Context) ([]Book, error) {
	return s.repo.AllBooks(ctx)
}

// ListAuthors returns all authors sorted ascending by name, each with
// the titles of their linked books.
func (s *QueryService) ListAuthors(ctx context.Context) ([]AuthorWithBooks, error) {
	authors, err := s.repo.AllAuthors(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]AuthorWithBooks, 0, len(authors))
	for _, a := range authors {
		books, err := s.repo.BooksByAuthor(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		titles := make([]string, 0, len(books))
		for _, b := range books {
			titles = append(titles, b.Title)
		}
		out = append(out, AuthorWithBooks{Author: a, BookTitles: titles})
	}
	return out, nil
}

// AuthorsAliveDuring returns authors with birth_year <= year and
// death_year >= year, sorted by name. The 0 sentinel makes an unknown
// birth year satisfy the lower bound for any year >= 0, and an unknown
// death year satisfy the upper bound only for year 0.
func (s *QueryService) AuthorsAliveDuring(ctx context.Context, year int) ([]Author, error) {
	if year < 0 {
		return nil, ErrInvalidYear
	}
	return s.repo.AuthorsAliveDuring(ctx, year, year)
}

// BooksByLanguage returns books whose language field contains code as a
// substring, sorted by title. A two-letter code therefore also matches
// composite values such as "en-GB" or "en,fr".
func (s *QueryService) BooksByLanguage(ctx context.Context, code string) ([]Book, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if !supportedLanguages[code] {
		return nil, ErrUnsupportedLanguage
	}
	return s.repo.BooksByLanguage(ctx, code)
}
