package services

import (
	"fmt"
	"math"

	"alfredoptarigan/compliance-dashboard/internal/models"
)

// divergenceTolerance is how far upstream rates may drift from the recomputed
// ones before the metrics are flagged.
const divergenceTolerance = 0.005

// Selection is the resolved pair, its normalized requirements and metrics.
type Selection struct {
	Index        int                        `json:"index"`
	Label        string                     `json:"label"`
	Pair         models.DocumentPair        `json:"pair"`
	Requirements []models.RequirementResult `json:"requirements"`
	Metrics      models.PairMetrics         `json:"metrics"`
}

// PairLabel returns the 1-based label for a 0-based pair index.
func PairLabel(index int) string {
	return fmt.Sprintf("Document Pair %d", index+1)
}

// ListPairLabels returns one label per document pair, in order.
func ListPairLabels(pairs []models.DocumentPair) []string {
	labels := make([]string, len(pairs))
	for i := range pairs {
		labels[i] = PairLabel(i)
	}
	return labels
}

// SelectPair resolves a 0-based index against the three parallel collections.
// An index outside pairs is an ErrIndexOutOfRange; a valid pair without a
// matching result set or metrics entry is an ErrResultsNotAvailable.
func SelectPair(
	index int,
	pairs []models.DocumentPair,
	resultSets []models.ResultSet,
	metrics []models.UpstreamMetrics,
) (*Selection, error) {
	if index < 0 || index >= len(pairs) {
		return nil, &IndexError{Collection: "document pairs", Index: index, Length: len(pairs), Kind: ErrIndexOutOfRange}
	}
	if index >= len(resultSets) {
		return nil, &IndexError{Collection: "result sets", Index: index, Length: len(resultSets), Kind: ErrResultsNotAvailable}
	}
	if index >= len(metrics) {
		return nil, &IndexError{Collection: "pair metrics", Index: index, Length: len(metrics), Kind: ErrResultsNotAvailable}
	}

	requirements := NormalizeResultSet(resultSets[index])

	return &Selection{
		Index:        index,
		Label:        PairLabel(index),
		Pair:         pairs[index],
		Requirements: requirements,
		Metrics:      AggregateMetrics(requirements, metrics[index]),
	}, nil
}

// AggregateMetrics counts statuses over the normalized requirements and
// recomputes both rates next to the upstream ones.
func AggregateMetrics(requirements []models.RequirementResult, upstream models.UpstreamMetrics) models.PairMetrics {
	m := models.PairMetrics{
		Total:          len(requirements),
		ComplianceRate: upstream.ComplianceRate,
		AvgSimilarity:  upstream.AvgSimilarity,
	}

	// Each score is divided before summing so large scores cannot overflow.
	var avgSimilarity float64
	for _, r := range requirements {
		switch r.Status {
		case models.StatusPass:
			m.PassedCount++
		case models.StatusFail:
			m.FailedCount++
		default:
			m.UnknownCount++
		}
		avgSimilarity += r.SimilarityScore / float64(m.Total)
	}

	if m.Total > 0 {
		m.ComputedComplianceRate = float64(m.PassedCount) / float64(m.Total)
		m.ComputedAvgSimilarity = avgSimilarity
	}

	m.Diverges = math.Abs(m.ComplianceRate-m.ComputedComplianceRate) > divergenceTolerance ||
		math.Abs(m.AvgSimilarity-m.ComputedAvgSimilarity) > divergenceTolerance

	return m
}
