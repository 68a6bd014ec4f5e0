// Package report turns a completed analysis record into renderable
// views and a plain-text export.
package report

import (
	"fmt"
	"strings"

	"github.com/lexbharat/lexbharat/internal/domain/analysis"
)

// View is the structured rendering of a completed record.
type View struct {
	Status           string
	HasIssues        bool
	Issues           []string
	Recommendations  []string
	Citations        []analysis.Citation
	VisualizationURL string
}

// BuildView maps a record to its view. The banner flag keys off an
// "issues" marker in the compliance status, matching how the dashboard
// decides between the compliant and non-compliant styling.
func BuildView(rec *analysis.Record) View {
	return View{
		Status:           rec.ComplianceStatus,
		HasIssues:        strings.Contains(strings.ToLower(rec.ComplianceStatus), "issues"),
		Issues:           rec.PotentialIssues,
		Recommendations:  rec.Recommendations,
		Citations:        rec.WebIntelligenceResults,
		VisualizationURL: strings.TrimSpace(rec.VisualizationURL),
	}
}

// RenderText produces the flat sectioned report for export. Deterministic
// and side-effect free: the same record always yields the same bytes.
func RenderText(rec *analysis.Record) string {
	var b strings.Builder

	b.WriteString("LexBharat Constitutional Compliance Report\n")
	b.WriteString("==========================================\n\n")
	if rec.FileName != "" {
		fmt.Fprintf(&b, "Document: %s\n", rec.FileName)
	}
	fmt.Fprintf(&b, "Document ID: %s\n", rec.DocumentID)
	if rec.AnalysisTimestamp != "" {
		fmt.Fprintf(&b, "Analyzed: %s\n", rec.AnalysisTimestamp)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Compliance Status: %s\n\n", rec.ComplianceStatus)

	b.WriteString("Potential Issues\n----------------\n")
	for i, issue := range rec.PotentialIssues {
		fmt.Fprintf(&b, "%d. %s\n", i+1, issue)
	}
	b.WriteString("\n")

	b.WriteString("Recommendations\n---------------\n")
	for i, rc := range rec.Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rc)
	}
	b.WriteString("\n")

	if len(rec.WebIntelligenceResults) > 0 {
		b.WriteString("Web Intelligence\n----------------\n")
		for i, c := range rec.WebIntelligenceResults {
			fmt.Fprintf(&b, "%d. %s\n   %s\n", i+1, c.Title, c.Link)
			if c.Snippet != "" {
				fmt.Fprintf(&b, "   %s\n", c.Snippet)
			}
		}
		b.WriteString("\n")
	}

	if strings.TrimSpace(rec.VisualizationURL) != "" {
		fmt.Fprintf(&b, "Visualization: %s\n", strings.TrimSpace(rec.VisualizationURL))
	} else {
		b.WriteString("Visualization: not available\n")
	}

	return b.String()
}
