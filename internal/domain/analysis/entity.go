package analysis

import "time"

// DocumentID identifier type; doubles as the object-store key of the upload
type DocumentID string

// Citation is one web-intelligence hit backing the analysis
type Citation struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Record is the (possibly partial) compliance analysis for one document.
// Fields stay empty until the external analysis pipeline fills them in;
// within one polling session they only ever go from absent to present.
type Record struct {
	DocumentID             DocumentID `json:"documentId"`
	FileName               string     `json:"fileName,omitempty"`
	ComplianceStatus       string     `json:"complianceStatus,omitempty"`
	PotentialIssues        []string   `json:"potentialIssues,omitempty"`
	Recommendations        []string   `json:"recommendations,omitempty"`
	WebIntelligenceResults []Citation `json:"webIntelligenceResults,omitempty"`
	WebSearchStatus        string     `json:"webSearchStatus,omitempty"`
	WebSearchTimestamp     string     `json:"webSearchTimestamp,omitempty"`
	AnalysisTimestamp      string     `json:"analysisTimestamp,omitempty"`
	VisualizationURL       string     `json:"visualizationUrl,omitempty"`
	CreatedAt              time.Time  `json:"createdAt,omitempty"`
	UpdatedAt              time.Time  `json:"updatedAt,omitempty"`
}
