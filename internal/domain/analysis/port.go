package analysis

import "context"

// Repository port for persisting and querying analysis records
type Repository interface {
	Save(ctx context.Context, r *Record) error
	Get(ctx context.Context, id DocumentID) (*Record, error)
	Paginate(ctx context.Context, page, pageSize int) ([]*Record, error)
}
