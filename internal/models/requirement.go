package models

type RequirementStatus string

const (
	StatusPass    RequirementStatus = "Pass"
	StatusFail    RequirementStatus = "Fail"
	StatusUnknown RequirementStatus = "Unknown"
)

// Placeholders substituted for missing requirement fields.
const (
	RulePlaceholder        = "Rule not specified."
	ExplanationPlaceholder = "No explanation provided."
	BestMatchPlaceholder   = "No match found."
	StatusPlaceholder      = "N/A"
)

// RawRequirement is a requirement record exactly as the upstream producer
// wrote it. Two schemas exist: one wraps the rule text in
// rule_details["Extracted Rule"], the other uses a flat "requirement" key.
type RawRequirement map[string]any

// ResultSet holds the raw requirement records for one document pair.
type ResultSet []RawRequirement

// UpstreamMetrics are the aggregates shipped alongside a result set. Only the
// rates are read; upstream pass/fail counts are ignored.
type UpstreamMetrics struct {
	ComplianceRate float64 `json:"compliance_rate"`
	AvgSimilarity  float64 `json:"avg_similarity"`
}

// ResultSource is one decoded result file. Sets and Metrics are positionally
// aligned with the document pairs.
type ResultSource struct {
	Sets    []ResultSet
	Metrics []UpstreamMetrics
}

// RequirementResult is the canonical shape of an evaluated requirement.
type RequirementResult struct {
	RequirementText string            `json:"requirement"`
	Status          RequirementStatus `json:"status"`
	RawStatus       string            `json:"raw_status"`
	Explanation     string            `json:"explanation"`
	SimilarityScore float64           `json:"similarity_score"`
	BestMatch       string            `json:"best_match"`
}

// PairMetrics aggregates one pair's requirement list. Counts and Computed*
// values are always derived locally; ComplianceRate and AvgSimilarity are the
// upstream figures.
type PairMetrics struct {
	PassedCount            int     `json:"passed_count"`
	FailedCount            int     `json:"failed_count"`
	UnknownCount           int     `json:"unknown_count"`
	Total                  int     `json:"total"`
	ComplianceRate         float64 `json:"compliance_rate"`
	AvgSimilarity          float64 `json:"avg_similarity"`
	ComputedComplianceRate float64 `json:"computed_compliance_rate"`
	ComputedAvgSimilarity  float64 `json:"computed_avg_similarity"`
	Diverges               bool    `json:"diverges"`
}
