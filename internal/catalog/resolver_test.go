package catalog

import (
	"context"
	"testing"

	"bookcatalog/internal/gutendex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestAuthorResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a new author with sentinel zero for missing years", func(t *testing.T) {
		repo := newMemRepo()
		resolver := NewAuthorResolver(repo)

		author, err := resolver.Resolve(ctx, gutendex.Author{Name: "Herbert, Frank"})
		require.NoError(t, err)

		assert.NotZero(t, author.ID)
		assert.Equal(t, "Herbert, Frank", author.Name)
		assert.Equal(t, 0, author.BirthYear)
		assert.Equal(t, 0, author.DeathYear)
	})

	t.Run("returns existing author on case-insensitive match", func(t *testing.T) {
		repo := newMemRepo()
		resolver := NewAuthorResolver(repo)

		first, err := resolver.Resolve(ctx, gutendex.Author{Name: "Austen, Jane", BirthYear: intp(1775), DeathYear: intp(1817)})
		require.NoError(t, err)

		second, err := resolver.Resolve(ctx, gutendex.Author{Name: "AUSTEN, JANE"})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, repo.authors, 1)
	})

	t.Run("first write wins, later years are discarded", func(t *testing.T) {
		repo := newMemRepo()
		resolver := NewAuthorResolver(repo)

		_, err := resolver.Resolve(ctx, gutendex.Author{Name: "Hugo, Victor"})
		require.NoError(t, err)

		again, err := resolver.Resolve(ctx, gutendex.Author{Name: "Hugo, Victor", BirthYear: intp(1802), DeathYear: intp(1885)})
		require.NoError(t, err)

		assert.Equal(t, 0, again.BirthYear)
		assert.Equal(t, 0, again.DeathYear)
	})

	t.Run("duplicate-key race falls back to a single re-lookup", func(t *testing.T) {
		repo := newMemRepo()
		repo.raceOnCreateAuthor = true
		resolver := NewAuthorResolver(repo)

		author, err := resolver.Resolve(ctx, gutendex.Author{Name: "Shelley, Mary", BirthYear: intp(1797)})
		require.NoError(t, err)

		assert.Equal(t, "Shelley, Mary", author.Name)
		assert.Len(t, repo.authors, 1)
	})

	t.Run("propagates storage failures", func(t *testing.T) {
		repo := newMemRepo()
		repo.failCreateAuthor = true
		resolver := NewAuthorResolver(repo)

		_, err := resolver.Resolve(ctx, gutendex.Author{Name: "Nobody"})
		assert.ErrorIs(t, err, errStorage)
	})
}
