package catalog

import (
	"context"
	"fmt"
	"log"
	"time"

	"bookcatalog/internal/gutendex"
)

// Searcher is the slice of the Gutendex client the pipeline consumes.
type Searcher interface {
	Search(ctx context.Context, title string) (*gutendex.SearchResponse, error)
}

// Pipeline orchestrates a full search response: for each raw book it
// resolves every listed author, links the first one, and ingests the
// book, emitting one outcome per input book in input order.
type Pipeline struct {
	client   Searcher
	resolver *AuthorResolver
	ingestor *BookIngestor
	runs     RunRepository
}

func NewPipeline(client Searcher, resolver *AuthorResolver, ingestor *BookIngestor, runs RunRepository) *Pipeline {
	return &Pipeline{
		client:   client,
		resolver: resolver,
		ingestor: ingestor,
		runs:     runs,
	}
}

// SearchAndIngest fetches the search response for title and runs the
// ingestion over it, recording the run. Fetch failures are wrapped in
// ErrSearchUnavailable; nothing is written in that case.
func (p *Pipeline) SearchAndIngest(ctx context.Context, title string) (outcomes []Outcome, err error) {
	res, fetchErr := p.client.Search(ctx, title)
	if fetchErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchUnavailable, fetchErr)
	}

	run := &Run{
		Query:     title,
		Status:    "RUNNING",
		StartedAt: time.Now(),
	}
	runID, runErr := p.runs.CreateRun(ctx, run)
	if runErr != nil {
		return nil, runErr
	}
	run.ID = runID

	defer func() {
		now := time.Now()
		run.FinishedAt = &now
		if err != nil {
			run.Status = "FAILED"
			run.Error = err.Error()
		} else {
			run.Status = "COMPLETED"
		}
		for _, o := range outcomes {
			switch o.Status {
			case OutcomeCreated:
				run.BooksCreated++
			case OutcomeAlreadyExists:
				run.BooksSkipped++
			case OutcomeNoAuthor:
				run.BooksNoAuthor++
			}
		}
		if updateErr := p.runs.UpdateRun(ctx, run); updateErr != nil {
			log.Printf("failed to update ingest run %s: %v", run.ID, updateErr)
		}
	}()

	return p.Run(ctx, res)
}

// Run ingests every raw book of res, in order. A storage failure aborts
// the remaining pipeline; outcomes committed so far are retained, since
// each step commits independently.
func (p *Pipeline) Run(ctx context.Context, res *gutendex.SearchResponse) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(res.Results))
	for _, raw := range res.Results {
		if len(raw.Authors) == 0 {
			outcomes = append(outcomes, Outcome{Status: OutcomeNoAuthor, Title: raw.Title})
			continue
		}

		// Every listed author is resolved (and persisted if new),
		// but only the first one is linked to the book.
		resolved := make([]Author, 0, len(raw.Authors))
		for _, rawAuthor := range raw.Authors {
			author, err := p.resolver.Resolve(ctx, rawAuthor)
			if err != nil {
				return outcomes, err
			}
			resolved = append(resolved, author)
		}

		outcome, err := p.ingestor.Ingest(ctx, raw, resolved[0])
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}
