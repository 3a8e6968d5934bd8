package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepo implements Repository and RunRepository over pgx.
// Uniqueness of the natural keys is enforced by unique indexes on
// lower(name) and lower(title); conflicts surface as ErrDuplicate.
type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) FindAuthorByName(ctx context.Context, name string) (Author, error) {
	const query = `
		SELECT id, name, birth_year, death_year
		FROM authors
		WHERE lower(name) = lower($1)`

	var a Author
	err := r.db.QueryRow(ctx, query, name).Scan(&a.ID, &a.Name, &a.BirthYear, &a.DeathYear)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Author{}, ErrAuthorNotFound
		}
		return Author{}, fmt.Errorf("find author: %w", err)
	}
	return a, nil
}

func (r *PostgresRepo) CreateAuthor(ctx context.Context, a *Author) error {
	const query = `
		INSERT INTO authors (name, birth_year, death_year)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRow(ctx, query, a.Name, a.BirthYear, a.DeathYear).Scan(&a.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create author: %w", err)
	}
	return nil
}

func (r *PostgresRepo) FindBookByTitle(ctx context.Context, title string) (Book, error) {
	const query = `
		SELECT id, title, language, download_count, author_id, author_name
		FROM books
		WHERE lower(title) = lower($1)`

	var b Book
	err := r.db.QueryRow(ctx, query, title).Scan(
		&b.ID, &b.Title, &b.Language, &b.DownloadCount, &b.AuthorID, &b.AuthorName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrBookNotFound
		}
		return Book{}, fmt.Errorf("find book: %w", err)
	}
	return b, nil
}

func (r *PostgresRepo) CreateBook(ctx context.Context, b *Book) error {
	const query = `
		INSERT INTO books (title, language, download_count, author_id, author_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.db.QueryRow(ctx, query, b.Title, b.Language, b.DownloadCount, b.AuthorID, b.AuthorName).Scan(&b.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

func (r *PostgresRepo) AllBooks(ctx context.Context) ([]Book, error) {
	const query = `
		SELECT id, title, language, download_count, author_id, author_name
		FROM books
		ORDER BY title ASC`

	return r.queryBooks(ctx, query)
}

func (r *PostgresRepo) AllAuthors(ctx context.Context) ([]Author, error) {
	const query = `
		SELECT id, name, birth_year, death_year
		FROM authors
		ORDER BY name ASC`

	return r.queryAuthors(ctx, query)
}

func (r *PostgresRepo) BooksByAuthor(ctx context.Context, authorID int64) ([]Book, error) {
	const query = `
		SELECT id, title, language, download_count, author_id, author_name
		FROM books
		WHERE author_id = $1
		ORDER BY title ASC`

	return r.queryBooks(ctx, query, authorID)
}

func (r *PostgresRepo) AuthorsAliveDuring(ctx context.Context, lowYear, highYear int) ([]Author, error) {
	const query = `
		SELECT id, name, birth_year, death_year
		FROM authors
		WHERE birth_year <= $1 AND death_year >= $2
		ORDER BY name ASC`

	return r.queryAuthors(ctx, query, lowYear, highYear)
}

func (r *PostgresRepo) BooksByLanguage(ctx context.Context, fragment string) ([]Book, error) {
	const query = `
		SELECT id, title, language, download_count, author_id, author_name
		FROM books
		WHERE language ILIKE '%' || $1 || '%'
		ORDER BY title ASC`

	return r.queryBooks(ctx, query, fragment)
}

func (r *PostgresRepo) CreateRun(ctx context.Context, run *Run) (string, error) {
	const query = `
		INSERT INTO ingest_runs (query, status, started_at)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id string
	err := r.db.QueryRow(ctx, query, run.Query, run.Status, run.StartedAt).Scan(&id)
	return id, err
}

func (r *PostgresRepo) UpdateRun(ctx context.Context, run *Run) error {
	const query = `
		UPDATE ingest_runs SET
			finished_at = $1,
			status = $2,
			books_created = $3,
			books_skipped = $4,
			books_no_author = $5,
			error = $6
		WHERE id = $7`

	_, err := r.db.Exec(ctx, query, run.FinishedAt, run.Status, run.BooksCreated, run.BooksSkipped, run.BooksNoAuthor, run.Error, run.ID)
	return err
}

func (r *PostgresRepo) queryBooks(ctx context.Context, query string, args ...any) ([]Book, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Language, &b.DownloadCount, &b.AuthorID, &b.AuthorName); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) queryAuthors(ctx context.Context, query string, args ...any) ([]Author, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Author
	for rows.Next() {
		var a Author
		if err := rows.Scan(&a.ID, &a.Name, &a.BirthYear, &a.DeathYear); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
