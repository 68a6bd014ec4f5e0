package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	domain "github.com/lexbharat/lexbharat/internal/domain/analysis"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save inserts or updates an analysis record
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Record) error {
	const q = `
INSERT INTO document_analysis
  (id, file_name, compliance_status, potential_issues, recommendations,
   web_results, web_search_status, web_search_timestamp, analysis_timestamp,
   visualization_url, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
ON CONFLICT (id) DO UPDATE SET
  compliance_status=EXCLUDED.compliance_status,
  potential_issues=EXCLUDED.potential_issues,
  recommendations=EXCLUDED.recommendations,
  web_results=EXCLUDED.web_results,
  web_search_status=EXCLUDED.web_search_status,
  web_search_timestamp=EXCLUDED.web_search_timestamp,
  analysis_timestamp=EXCLUDED.analysis_timestamp,
  visualization_url=EXCLUDED.visualization_url,
  updated_at=EXCLUDED.updated_at;
`
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	updatedAt := a.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}
	_, err := r.db.ExecContext(ctx, q,
		string(a.DocumentID), a.FileName, a.ComplianceStatus,
		jsonOrEmpty(a.PotentialIssues), jsonOrEmpty(a.Recommendations),
		jsonOrEmpty(a.WebIntelligenceResults),
		a.WebSearchStatus, a.WebSearchTimestamp, a.AnalysisTimestamp,
		a.VisualizationURL, createdAt, updatedAt,
	)
	return err
}

// Get returns one record by document id, nil when none exists yet.
func (r *AnalysisRepository) Get(ctx context.Context, id domain.DocumentID) (*domain.Record, error) {
	const q = `
SELECT id, file_name, compliance_status, potential_issues, recommendations,
       web_results, web_search_status, web_search_timestamp, analysis_timestamp,
       visualization_url, created_at, updated_at
FROM document_analysis
WHERE id=$1;`
	row := r.db.QueryRowContext(ctx, q, string(id))
	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

// Paginate returns a page of records ordered by created_at desc
func (r *AnalysisRepository) Paginate(ctx context.Context, page, pageSize int) ([]*domain.Record, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	const q = `
SELECT id, file_name, compliance_status, potential_issues, recommendations,
       web_results, web_search_status, web_search_timestamp, analysis_timestamp,
       visualization_url, created_at, updated_at
FROM document_analysis
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2;`
	rows, err := r.db.QueryContext(ctx, q, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func jsonOrEmpty(v any) string {
	b, err := json.Marshal(v)
	if err != nil || v == nil {
		return "[]"
	}
	s := string(b)
	if s == "null" {
		return "[]"
	}
	return s
}

func scanRecord(scan func(...any) error) (*domain.Record, error) {
	var (
		rec                          domain.Record
		id                           string
		issues, recs, webResults     sql.NullString
		fileName, status             sql.NullString
		webStatus, webTS, analysisTS sql.NullString
		visualizationURL             sql.NullString
		createdAt, updatedAt         time.Time
	)
	if err := scan(&id, &fileName, &status, &issues, &recs, &webResults,
		&webStatus, &webTS, &analysisTS, &visualizationURL,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}
	rec.DocumentID = domain.DocumentID(id)
	rec.FileName = fileName.String
	rec.ComplianceStatus = status.String
	if issues.String != "" {
		_ = json.Unmarshal([]byte(issues.String), &rec.PotentialIssues)
	}
	if recs.String != "" {
		_ = json.Unmarshal([]byte(recs.String), &rec.Recommendations)
	}
	if webResults.String != "" {
		_ = json.Unmarshal([]byte(webResults.String), &rec.WebIntelligenceResults)
	}
	rec.WebSearchStatus = webStatus.String
	rec.WebSearchTimestamp = webTS.String
	rec.AnalysisTimestamp = analysisTS.String
	rec.VisualizationURL = visualizationURL.String
	rec.CreatedAt = createdAt
	rec.UpdatedAt = updatedAt
	return &rec, nil
}
