// Package render prints dashboard views to a terminal.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"alfredoptarigan/compliance-dashboard/internal/models"
)

var (
	passColor    = color.New(color.FgGreen, color.Bold)
	failColor    = color.New(color.FgRed, color.Bold)
	unknownColor = color.New(color.FgYellow)
	headingColor = color.New(color.Bold)
	mutedColor   = color.New(color.FgHiBlack)
)

func statusLabel(status models.RequirementStatus) string {
	switch status {
	case models.StatusPass:
		return passColor.Sprint(status)
	case models.StatusFail:
		return failColor.Sprint(status)
	default:
		return unknownColor.Sprint(status)
	}
}

// WriteDashboard renders the sidebar metrics, both documents and one block
// per requirement.
func WriteDashboard(w io.Writer, view *models.DashboardView) error {
	if _, err := fmt.Fprintf(w, "📋 %s\n\n", headingColor.Sprint(view.Title)); err != nil {
		return err
	}

	if err := writeMetricsTable(w, view.Metrics); err != nil {
		return err
	}

	if view.Notice != "" {
		if _, err := fmt.Fprintf(w, "⚠️  %s\n", view.Notice); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\n📄 %s\n%s\n\n📄 %s\n%s\n\n",
		headingColor.Sprint("Job Description"), indent(view.Documents.JobDescription),
		headingColor.Sprint("Candidate CV"), indent(view.Documents.CandidateProfile),
	); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s\n", headingColor.Sprint("Requirement Validation Details")); err != nil {
		return err
	}

	for _, card := range view.Requirements {
		if _, err := fmt.Fprintf(w, "\n%s %s: %s\n", card.Icon, statusLabel(card.Status), card.Requirement); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Explanation: %s\n   Similarity Score: %s\n   Best Match from CV: %s\n",
			card.Explanation, card.SimilarityScore, mutedColor.Sprintf("> %s", card.BestMatch),
		); err != nil {
			return err
		}
	}

	return nil
}

func writeMetricsTable(w io.Writer, metrics models.MetricsPanel) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Compliance", "Avg Similarity", "Passed", "Failed", "Unknown"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	row := []string{
		metrics.ComplianceRate,
		metrics.AvgSimilarity,
		strconv.Itoa(metrics.PassedRules),
		strconv.Itoa(metrics.FailedRules),
		strconv.Itoa(metrics.UnknownRules),
	}
	if err := table.Bulk([][]string{row}); err != nil {
		return err
	}
	return table.Render()
}

// WriteLabels prints one selectable label per line, numbered from 1.
func WriteLabels(w io.Writer, title string, labels []string) error {
	if _, err := fmt.Fprintf(w, "%s\n", headingColor.Sprint(title)); err != nil {
		return err
	}
	if len(labels) == 0 {
		_, err := fmt.Fprintln(w, "  (none)")
		return err
	}
	for i, label := range labels {
		if _, err := fmt.Fprintf(w, "  %d. %s\n", i+1, label); err != nil {
			return err
		}
	}
	return nil
}

// WriteError prints a user-facing error message.
func WriteError(w io.Writer, message string) error {
	_, err := fmt.Fprintf(w, "%s %s\n", failColor.Sprint("❌"), message)
	return err
}

func indent(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		lines[i] = "   " + strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}
