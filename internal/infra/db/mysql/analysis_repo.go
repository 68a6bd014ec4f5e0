package mysql

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/lexbharat/lexbharat/internal/domain/analysis"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save inserts or updates an analysis record. The analysis pipeline only
// ever adds fields, so an upsert that overwrites with the latest values
// is safe.
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Record) error {
	const q = `
INSERT INTO document_analysis
  (id, file_name, compliance_status, potential_issues, recommendations,
   web_results, web_search_status, web_search_timestamp, analysis_timestamp,
   visualization_url, created_at, updated_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  compliance_status=VALUES(compliance_status),
  potential_issues=VALUES(potential_issues),
  recommendations=VALUES(recommendations),
  web_results=VALUES(web_results),
  web_search_status=VALUES(web_search_status),
  web_search_timestamp=VALUES(web_search_timestamp),
  analysis_timestamp=VALUES(analysis_timestamp),
  visualization_url=VALUES(visualization_url),
  updated_at=VALUES(updated_at);
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
WHERE id=?;`
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
LIMIT ? OFFSET ?;`
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
	unmarshalInto(issues.String, &rec.PotentialIssues)
	unmarshalInto(recs.String, &rec.Recommendations)
	unmarshalInto(webResults.String, &rec.WebIntelligenceResults)
	rec.WebSearchStatus = webStatus.String
	rec.WebSearchTimestamp = webTS.String
	rec.AnalysisTimestamp = analysisTS.String
	rec.VisualizationURL = visualizationURL.String
	rec.CreatedAt = createdAt
	rec.UpdatedAt = updatedAt
	return &rec, nil
}
