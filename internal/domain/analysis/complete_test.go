package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func complete() *Record {
	return &Record{
		DocumentID:       "uploads/abc-doc.pdf",
		ComplianceStatus: "Issues Found",
		PotentialIssues:  []string{"Article 14 concern"},
		Recommendations:  []string{"Add an equality clause"},
		VisualizationURL: "https://storage.example.com/viz/abc.png",
	}
}

func TestIsComplete_FullRecord(t *testing.T) {
	assert.True(t, IsComplete(complete()))
}

func TestIsComplete_NilRecord(t *testing.T) {
	assert.False(t, IsComplete(nil))
}

func TestIsComplete_FieldCombinations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Record)
		want   bool
	}{
		{"empty status", func(r *Record) { r.ComplianceStatus = "" }, false},
		{"blank status", func(r *Record) { r.ComplianceStatus = "   " }, false},
		{"nil issues", func(r *Record) { r.PotentialIssues = nil }, false},
		{"empty issues", func(r *Record) { r.PotentialIssues = []string{} }, false},
		{"nil recommendations", func(r *Record) { r.Recommendations = nil }, false},
		{"empty recommendations", func(r *Record) { r.Recommendations = []string{} }, false},
		{"empty url", func(r *Record) { r.VisualizationURL = "" }, false},
		{"blank url", func(r *Record) { r.VisualizationURL = "  " }, false},
		{"relative url", func(r *Record) { r.VisualizationURL = "/viz/abc.png" }, false},
		{"protocol-relative url", func(r *Record) { r.VisualizationURL = "//cdn.example.com/v.png" }, false},
		{"http url", func(r *Record) { r.VisualizationURL = "http://x/y.png" }, true},
		{"padded url", func(r *Record) { r.VisualizationURL = "  https://x/y.png  " }, true},
		{"everything untouched", func(r *Record) {}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := complete()
			tt.mutate(r)
			assert.Equal(t, tt.want, IsComplete(r))
		})
	}
}

// Compliant status with empty issue lists still counts as pending: empty
// arrays never render as a final report.
func TestIsComplete_CompliantButEmptyLists(t *testing.T) {
	r := &Record{
		ComplianceStatus: "Compliant",
		PotentialIssues:  []string{},
		Recommendations:  []string{},
		VisualizationURL: "https://x/y.png",
	}
	assert.False(t, IsComplete(r))
}

func TestMissingParts(t *testing.T) {
	assert.Empty(t, MissingParts(complete()))

	r := complete()
	r.PotentialIssues = nil
	assert.Equal(t, []string{PartAnalysis}, MissingParts(r))

	r = complete()
	r.VisualizationURL = ""
	assert.Equal(t, []string{PartVisualization}, MissingParts(r))

	assert.Equal(t, []string{PartAnalysis, PartVisualization}, MissingParts(&Record{}))
	assert.Equal(t, []string{PartAnalysis, PartVisualization}, MissingParts(nil))
}
