package services

import (
	"fmt"
	"math"

	"alfredoptarigan/compliance-dashboard/internal/models"
)

const (
	IconPass    = "✅"
	IconFail    = "❌"
	IconUnknown = "❓"
)

func StatusIcon(status models.RequirementStatus) string {
	switch status {
	case models.StatusPass:
		return IconPass
	case models.StatusFail:
		return IconFail
	default:
		return IconUnknown
	}
}

// FormatPercent renders a 0..1 rate as a whole percentage, e.g. 0.75 -> "75%".
func FormatPercent(rate float64) string {
	return fmt.Sprintf("%.0f%%", math.Round(rate*100))
}

func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}

// BuildDashboardView turns a selection into display-ready panels. The
// headline rates are the locally recomputed ones.
func BuildDashboardView(source string, selection *Selection, labels []string) *models.DashboardView {
	m := selection.Metrics

	view := &models.DashboardView{
		Title:  fmt.Sprintf("Analysis for %s (from %s)", selection.Label, source),
		Source: source,
		Label:  selection.Label,
		Pairs:  labels,
		Metrics: models.MetricsPanel{
			ComplianceRate: FormatPercent(m.ComputedComplianceRate),
			AvgSimilarity:  FormatScore(m.ComputedAvgSimilarity),
			PassedRules:    m.PassedCount,
			FailedRules:    m.FailedCount,
			UnknownRules:   m.UnknownCount,
			Raw:            m,
		},
		Documents: models.DocumentsPanel{
			JobDescription:   selection.Pair.JobDescriptionText(),
			CandidateProfile: selection.Pair.CandidateProfileText(),
		},
		Requirements: make([]models.RequirementCard, 0, len(selection.Requirements)),
	}

	switch {
	case len(selection.Requirements) == 0:
		view.Notice = "No requirement results found for this document pair."
	case m.Diverges:
		view.Notice = fmt.Sprintf(
			"Upstream metrics (compliance %s, similarity %s) differ from the requirement list; recomputed values are shown.",
			FormatPercent(m.ComplianceRate), FormatScore(m.AvgSimilarity),
		)
	}

	for _, r := range selection.Requirements {
		icon := StatusIcon(r.Status)
		view.Requirements = append(view.Requirements, models.RequirementCard{
			Icon:            icon,
			Heading:         fmt.Sprintf("%s %s: %s", icon, r.RawStatus, r.RequirementText),
			Status:          r.Status,
			Requirement:     r.RequirementText,
			Explanation:     r.Explanation,
			SimilarityScore: FormatScore(r.SimilarityScore),
			BestMatch:       r.BestMatch,
		})
	}

	return view
}
