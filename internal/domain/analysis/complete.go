package analysis

import "strings"

// Part names used in progress messages while a record is still filling in.
const (
	PartAnalysis      = "analysis"
	PartVisualization = "visualization"
)

// IsComplete reports whether a record is safe to render as a final report.
// Empty issue or recommendation lists count as still pending: a partially
// written record must not show up as an empty, final-looking report.
func IsComplete(r *Record) bool {
	if r == nil {
		return false
	}
	if strings.TrimSpace(r.ComplianceStatus) == "" {
		return false
	}
	if len(r.PotentialIssues) == 0 || len(r.Recommendations) == 0 {
		return false
	}
	return hasVisualization(r)
}

// MissingParts names what still has to arrive before IsComplete holds.
func MissingParts(r *Record) []string {
	if r == nil {
		return []string{PartAnalysis, PartVisualization}
	}
	var missing []string
	if strings.TrimSpace(r.ComplianceStatus) == "" ||
		len(r.PotentialIssues) == 0 || len(r.Recommendations) == 0 {
		missing = append(missing, PartAnalysis)
	}
	if !hasVisualization(r) {
		missing = append(missing, PartVisualization)
	}
	return missing
}

func hasVisualization(r *Record) bool {
	u := strings.TrimSpace(r.VisualizationURL)
	return u != "" && strings.HasPrefix(u, "http")
}
