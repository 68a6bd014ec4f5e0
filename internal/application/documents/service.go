package documents

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/lexbharat/lexbharat/internal/application"
	"github.com/lexbharat/lexbharat/internal/domain/analysis"
	"github.com/lexbharat/lexbharat/internal/domain/document"
)

// Service implements the upload use-case. Safe for concurrent use.
type Service struct {
	Store document.ObjectStore
	Clock application.Clock
}

// UploadCommand carries one user-selected file into the service.
type UploadCommand struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadResult is what the upload endpoint returns to the caller.
type UploadResult struct {
	DocumentID analysis.DocumentID `json:"documentId"`
	UploadedAt time.Time           `json:"uploadedAt"`
	ObjectURL  string              `json:"-"`
}

// Upload validates the file, writes the bytes to the object store and
// returns the document id later used to poll for analysis results.
// The id is the object key itself: the analysis pipeline keys its
// records by it, so no extra mapping table is needed.
func (s *Service) Upload(ctx context.Context, cmd UploadCommand) (UploadResult, error) {
	up := document.Upload{
		FileName:    cmd.FileName,
		ContentType: cmd.ContentType,
		Size:        cmd.Size,
	}
	if err := up.Validate(); err != nil {
		return UploadResult{}, err
	}

	// unique key avoids collisions between files with the same name
	key := fmt.Sprintf("uploads/%s-%s", uuid.New().String(), filepath.Base(cmd.FileName))

	url, err := s.Store.Put(ctx, key, cmd.Body, cmd.Size, cmd.ContentType)
	if err != nil {
		return UploadResult{}, fmt.Errorf("store upload: %w", err)
	}

	return UploadResult{
		DocumentID: analysis.DocumentID(key),
		UploadedAt: s.Clock.Now(),
		ObjectURL:  url,
	}, nil
}

// Buckets lists the buckets visible to the configured credentials.
func (s *Service) Buckets(ctx context.Context) ([]document.BucketInfo, error) {
	return s.Store.Buckets(ctx)
}

// CheckStorage verifies the configured bucket is reachable.
func (s *Service) CheckStorage(ctx context.Context) error {
	return s.Store.Check(ctx)
}
