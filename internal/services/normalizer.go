package services

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"alfredoptarigan/compliance-dashboard/internal/models"
)

// NormalizeRequirement maps a raw requirement record of either upstream schema
// onto the canonical RequirementResult. Every field has a default, so any
// input, including nil, yields a fully populated result.
func NormalizeRequirement(raw models.RawRequirement) models.RequirementResult {
	result := models.RequirementResult{
		RequirementText: resolveRuleText(raw),
		Status:          models.StatusUnknown,
		RawStatus:       models.StatusPlaceholder,
		Explanation:     stringOr(raw["explanation"], models.ExplanationPlaceholder),
		SimilarityScore: numberOr(raw["similarity_score"], 0),
		BestMatch:       stringOr(raw["best_match"], models.BestMatchPlaceholder),
	}

	if status, ok := raw["status"].(string); ok && status != "" {
		result.RawStatus = status
		switch models.RequirementStatus(status) {
		case models.StatusPass:
			result.Status = models.StatusPass
		case models.StatusFail:
			result.Status = models.StatusFail
		}
	}

	return result
}

// NormalizeResultSet normalizes every record of a result set in order.
func NormalizeResultSet(set models.ResultSet) []models.RequirementResult {
	results := make([]models.RequirementResult, 0, len(set))
	for _, raw := range set {
		results = append(results, NormalizeRequirement(raw))
	}
	return results
}

// rule_details wins over the flat "requirement" key when it carries a rule.
func resolveRuleText(raw models.RawRequirement) string {
	var details map[string]any
	switch d := raw["rule_details"].(type) {
	case map[string]any:
		details = d
	case models.RawRequirement:
		details = d
	}
	if rule := stringOr(details["Extracted Rule"], ""); rule != "" {
		return rule
	}
	return stringOr(raw["requirement"], models.RulePlaceholder)
}

func stringOr(value any, fallback string) string {
	if s, ok := value.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

// numberOr accepts any numeric form. NaN and infinities count as absent.
func numberOr(value any, fallback float64) float64 {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return fallback
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fallback
		}
		f = parsed
	default:
		return fallback
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return f
}
