package catalog

import (
	"context"
	"testing"

	"bookcatalog/internal/gutendex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookIngestor_Ingest(t *testing.T) {
	ctx := context.Background()

	author := Author{ID: 7, Name: "Herbert, Frank", BirthYear: 1920, DeathYear: 1986}
	raw := gutendex.Book{
		Title:         "Dune",
		Languages:     []string{"en"},
		DownloadCount: 12345,
	}

	t.Run("creates a new book linked to the resolved author", func(t *testing.T) {
		repo := newMemRepo()
		ingestor := NewBookIngestor(repo)

		outcome, err := ingestor.Ingest(ctx, raw, author)
		require.NoError(t, err)

		assert.Equal(t, OutcomeCreated, outcome.Status)
		assert.Equal(t, "Dune", outcome.Title)
		require.NotNil(t, outcome.Book)
		assert.NotZero(t, outcome.Book.ID)
		assert.Equal(t, "en", outcome.Book.Language)
		assert.Equal(t, 12345, outcome.Book.DownloadCount)
		assert.Equal(t, int64(7), outcome.Book.AuthorID)
		assert.Equal(t, "Herbert, Frank", outcome.Book.AuthorName)
	})

	t.Run("joins multiple language codes", func(t *testing.T) {
		repo := newMemRepo()
		ingestor := NewBookIngestor(repo)

		multi := raw
		multi.Title = "Some Bilingual Edition"
		multi.Languages = []string{"en", "fr"}

		outcome, err := ingestor.Ingest(ctx, multi, author)
		require.NoError(t, err)
		assert.Equal(t, "en,fr", outcome.Book.Language)
	})

	t.Run("reports already cataloged titles without writing", func(t *testing.T) {
		repo := newMemRepo()
		ingestor := NewBookIngestor(repo)

		_, err := ingestor.Ingest(ctx, raw, author)
		require.NoError(t, err)

		upper := raw
		upper.Title = "DUNE"
		outcome, err := ingestor.Ingest(ctx, upper, author)
		require.NoError(t, err)

		assert.Equal(t, OutcomeAlreadyExists, outcome.Status)
		assert.Nil(t, outcome.Book)
		assert.Len(t, repo.books, 1)
	})

	t.Run("duplicate-key race reads as already exists", func(t *testing.T) {
		repo := newMemRepo()
		repo.raceOnCreateBook = true
		ingestor := NewBookIngestor(repo)

		outcome, err := ingestor.Ingest(ctx, raw, author)
		require.NoError(t, err)
		assert.Equal(t, OutcomeAlreadyExists, outcome.Status)
	})

	t.Run("propagates storage failures", func(t *testing.T) {
		repo := newMemRepo()
		repo.failCreateBook = true
		ingestor := NewBookIngestor(repo)

		_, err := ingestor.Ingest(ctx, raw, author)
		assert.ErrorIs(t, err, errStorage)
	})
}
