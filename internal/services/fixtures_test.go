package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const threePairsJSON = `[
	{"job_description": "Backend engineer, Go required.", "candidate_cv": "Five years of Go."},
	{"job_description": "Data engineer.", "candidate_cv": "Spark and SQL."},
	{"job_description": "SRE.", "candidate_cv": ""}
]`

// Two result sets for three pairs: the first in tuple form, the second in
// object form.
const twoResultSetsJSON = `[
	[
		[
			{"rule_details": {"Extracted Rule": "Must know Go"}, "status": "Pass", "explanation": "Go listed", "similarity_score": 0.9, "best_match": "Five years of Go."},
			{"requirement": "Must know Kubernetes", "status": "Fail", "similarity_score": 0.2}
		],
		{"compliance_rate": 0.5, "avg_similarity": 0.55, "passed_rules": 7, "failed_rules": 0}
	],
	{
		"results": [
			{"requirement": "Must know SQL", "status": "Pass", "similarity_score": 0.8}
		],
		"metrics": {"compliance_rate": 1.0, "avg_similarity": 0.8}
	}
]`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
