package models

type SourcesResponse struct {
	DocumentPairs string   `json:"document_pairs"`
	Sources       []string `json:"sources"`
}

type PairsResponse struct {
	Pairs []string `json:"pairs"`
}

type ErrorResponse struct {
	Error   string   `json:"error"`
	Kind    string   `json:"kind"`
	Code    int      `json:"code"`
	Sources []string `json:"sources,omitempty"`
	Pairs   []string `json:"pairs,omitempty"`
}

type UploadResponse struct {
	Source  string `json:"source"`
	Size    int    `json:"size"`
	Message string `json:"message"`
}

// DashboardView is everything a renderer needs for one selected pair.
type DashboardView struct {
	Title        string            `json:"title"`
	Source       string            `json:"source"`
	Label        string            `json:"label"`
	Pairs        []string          `json:"pairs"`
	Metrics      MetricsPanel      `json:"metrics"`
	Documents    DocumentsPanel    `json:"documents"`
	Requirements []RequirementCard `json:"requirements"`
	Notice       string            `json:"notice,omitempty"`
}

type MetricsPanel struct {
	ComplianceRate string      `json:"compliance_rate"`
	AvgSimilarity  string      `json:"avg_similarity"`
	PassedRules    int         `json:"passed_rules"`
	FailedRules    int         `json:"failed_rules"`
	UnknownRules   int         `json:"unknown_rules"`
	Raw            PairMetrics `json:"raw"`
}

type DocumentsPanel struct {
	JobDescription   string `json:"job_description"`
	CandidateProfile string `json:"candidate_cv"`
}

type RequirementCard struct {
	Icon            string            `json:"icon"`
	Heading         string            `json:"heading"`
	Status          RequirementStatus `json:"status"`
	Requirement     string            `json:"requirement"`
	Explanation     string            `json:"explanation"`
	SimilarityScore string            `json:"similarity_score"`
	BestMatch       string            `json:"best_match"`
}
