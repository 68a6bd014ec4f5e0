package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexbharat/lexbharat/internal/domain/analysis"
)

func sampleRecord() *analysis.Record {
	return &analysis.Record{
		DocumentID:       "uploads/abc-rent-agreement.pdf",
		FileName:         "rent-agreement.pdf",
		ComplianceStatus: "Issues Found",
		PotentialIssues:  []string{"Clause 7 conflicts with Article 19", "Deposit terms exceed statutory limits"},
		Recommendations:  []string{"Rework clause 7", "Cap the deposit at two months"},
		WebIntelligenceResults: []analysis.Citation{
			{Title: "Model Tenancy Act", Link: "https://example.org/mta", Snippet: "Caps security deposits"},
		},
		AnalysisTimestamp: "2026-08-30T10:15:00Z",
		VisualizationURL:  "https://storage.example.com/viz/abc.png",
	}
}

func TestBuildView(t *testing.T) {
	v := BuildView(sampleRecord())
	assert.True(t, v.HasIssues)
	assert.Len(t, v.Issues, 2)
	assert.Len(t, v.Recommendations, 2)
	assert.Len(t, v.Citations, 1)
	assert.Equal(t, "https://storage.example.com/viz/abc.png", v.VisualizationURL)
}

func TestBuildView_CompliantBanner(t *testing.T) {
	rec := sampleRecord()
	rec.ComplianceStatus = "Compliant"
	assert.False(t, BuildView(rec).HasIssues)

	rec.ComplianceStatus = "Major Issues Detected"
	assert.True(t, BuildView(rec).HasIssues)
}

func TestRenderText_ContainsEverythingVerbatim(t *testing.T) {
	rec := sampleRecord()
	text := RenderText(rec)

	require.NotEmpty(t, text)
	assert.Contains(t, text, rec.ComplianceStatus)
	for _, issue := range rec.PotentialIssues {
		assert.Contains(t, text, issue)
	}
	for _, r := range rec.Recommendations {
		assert.Contains(t, text, r)
	}
	for _, c := range rec.WebIntelligenceResults {
		assert.Contains(t, text, c.Title)
		assert.Contains(t, text, c.Link)
	}
	assert.Contains(t, text, rec.VisualizationURL)
}

func TestRenderText_Deterministic(t *testing.T) {
	rec := sampleRecord()
	first := RenderText(rec)
	second := RenderText(rec)
	assert.Equal(t, first, second)
}

func TestRenderText_NoVisualization(t *testing.T) {
	rec := sampleRecord()
	rec.VisualizationURL = "   "
	text := RenderText(rec)
	assert.Contains(t, text, "Visualization: not available")
	assert.False(t, strings.Contains(text, "Visualization: https"))
}
