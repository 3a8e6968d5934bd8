package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var errStorage = errors.New("storage unavailable")

// memRepo is an in-memory Repository/RunRepository with the same
// semantics as the Postgres implementation: case-insensitive natural
// keys, ErrDuplicate on conflict, sorted reads.
type memRepo struct {
	authors []Author
	books   []Book
	runs    map[string]*Run

	// Failure injection.
	failCreateAuthor   bool
	failCreateBook     bool
	raceOnCreateAuthor bool
	raceOnCreateBook   bool
}

func newMemRepo() *memRepo {
	return &memRepo{runs: make(map[string]*Run)}
}

func (m *memRepo) FindAuthorByName(_ context.Context, name string) (Author, error) {
	for _, a := range m.authors {
		if strings.EqualFold(a.Name, name) {
			return a, nil
		}
	}
	return Author{}, ErrAuthorNotFound
}

func (m *memRepo) CreateAuthor(_ context.Context, a *Author) error {
	if m.failCreateAuthor {
		return errStorage
	}
	for _, existing := range m.authors {
		if strings.EqualFold(existing.Name, a.Name) {
			return ErrDuplicate
		}
	}
	a.ID = int64(len(m.authors) + 1)
	m.authors = append(m.authors, *a)
	if m.raceOnCreateAuthor {
		// Pretend a concurrent session won the insert race.
		m.raceOnCreateAuthor = false
		return ErrDuplicate
	}
	return nil
}

func (m *memRepo) FindBookByTitle(_ context.Context, title string) (Book, error) {
	for _, b := range m.books {
		if strings.EqualFold(b.Title, title) {
			return b, nil
		}
	}
	return Book{}, ErrBookNotFound
}

func (m *memRepo) CreateBook(_ context.Context, b *Book) error {
	if m.failCreateBook {
		return errStorage
	}
	for _, existing := range m.books {
		if strings.EqualFold(existing.Title, b.Title) {
			return ErrDuplicate
		}
	}
	b.ID = int64(len(m.books) + 1)
	m.books = append(m.books, *b)
	if m.raceOnCreateBook {
		m.raceOnCreateBook = false
		return ErrDuplicate
	}
	return nil
}

func (m *memRepo) AllBooks(_ context.Context) ([]Book, error) {
	out := append([]Book(nil), m.books...)
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *memRepo) AllAuthors(_ context.Context) ([]Author, error) {
	out := append([]Author(nil), m.authors...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memRepo) BooksByAuthor(_ context.Context, authorID int64) ([]Book, error) {
	var out []Book
	for _, b := range m.books {
		if b.AuthorID == authorID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *memRepo) AuthorsAliveDuring(_ context.Context, lowYear, highYear int) ([]Author, error) {
	var out []Author
	for _, a := range m.authors {
		if a.BirthYear <= lowYear && a.DeathYear >= highYear {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memRepo) BooksByLanguage(_ context.Context, fragment string) ([]Book, error) {
	var out []Book
	for _, b := range m.books {
		if strings.Contains(strings.ToLower(b.Language), strings.ToLower(fragment)) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *memRepo) CreateRun(_ context.Context, run *Run) (string, error) {
	id := fmt.Sprintf("run-%d", len(m.runs)+1)
	copied := *run
	copied.ID = id
	m.runs[id] = &copied
	return id, nil
}

func (m *memRepo) UpdateRun(_ context.Context, run *Run) error {
	if _, ok := m.runs[run.ID]; !ok {
		return errStorage
	}
	copied := *run
	m.runs[run.ID] = &copied
	return nil
}
