package analyses

import (
	"context"
	"fmt"

	"github.com/lexbharat/lexbharat/internal/domain/analysis"
)

// Service answers status queries for analysis records.
type Service struct {
	Repo analysis.Repository
}

// Status is the verdict for one document at one point in time.
type Status struct {
	Record  *analysis.Record
	Missing []string
}

// Get returns the current record for a document. ErrNotFound when no
// record exists yet, ErrIncomplete (with the record and its missing
// parts) when it exists but fails the completeness check.
func (s *Service) Get(ctx context.Context, id analysis.DocumentID) (Status, error) {
	rec, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Status{}, err
	}
	if rec == nil {
		return Status{}, analysis.ErrNotFound
	}
	if !analysis.IsComplete(rec) {
		return Status{Record: rec, Missing: analysis.MissingParts(rec)},
			fmt.Errorf("%w: %s", analysis.ErrIncomplete, rec.DocumentID)
	}
	return Status{Record: rec}, nil
}

// List returns a page of known records, newest first.
func (s *Service) List(ctx context.Context, page, pageSize int) ([]*analysis.Record, error) {
	return s.Repo.Paginate(ctx, page, pageSize)
}
