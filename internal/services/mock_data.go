package services

import (
	"encoding/json"
	"fmt"

	"alfredoptarigan/compliance-dashboard/internal/models"
)

const (
	MockPairsSource   = "document_pairs"
	MockResultsSource = "Mock Results"
)

// NewMockLoader serves a two-pair demo data set entirely from memory.
func NewMockLoader() (SourceLoader, error) {
	pairs, err := json.Marshal(mockDocumentPairs())
	if err != nil {
		return nil, fmt.Errorf("failed to encode mock document pairs: %w", err)
	}

	results, err := json.Marshal(mockResults())
	if err != nil {
		return nil, fmt.Errorf("failed to encode mock results: %w", err)
	}

	return NewStaticLoader(map[string][]byte{
		MockPairsSource:   pairs,
		MockResultsSource: results,
	}), nil
}

func mockRule(rule, status, explanation string, similarity float64, bestMatch string) map[string]any {
	return map[string]any{
		"rule_details":     map[string]any{"Extracted Rule": rule},
		"status":           status,
		"explanation":      explanation,
		"similarity_score": similarity,
		"best_match":       bestMatch,
	}
}

func mockResults() []any {
	return []any{
		[]any{
			[]map[string]any{
				mockRule(
					"Must have 5+ years of experience in Python programming.", "Pass",
					"The candidate explicitly mentions having 7 years of Python experience in their resume, which satisfies the requirement.",
					0.92, "Developed and maintained several large-scale applications over 7 years using Python.",
				),
				mockRule(
					"Experience with cloud platforms like AWS or Azure is required.", "Pass",
					`The CV lists "AWS (S3, EC2, Lambda)" under the skills section, directly meeting the cloud platform requirement.`,
					0.88, "Proficient with cloud services, including AWS (S3, EC2, Lambda).",
				),
				mockRule(
					"A Bachelor's degree in Computer Science is mandatory.", "Fail",
					"The candidate's resume indicates a degree in Information Technology, not Computer Science. This does not meet the specific degree requirement.",
					0.65, "B.Sc. in Information Technology, University of Tech.",
				),
				mockRule(
					"Familiarity with containerization technologies (Docker, Kubernetes).", "Pass",
					"The candidate mentions Docker in their project descriptions, indicating familiarity.",
					0.78, "Utilized Docker to containerize microservices for a deployment pipeline.",
				),
			},
			map[string]any{"compliance_rate": 0.75, "avg_similarity": 0.81, "passed_rules": 3, "failed_rules": 1},
		},
		[]any{
			[]map[string]any{
				mockRule(
					"Seeking a candidate with a Master's degree.", "Pass",
					"The candidate's CV clearly states they hold a Master of Science degree.",
					0.95, "Education: Master of Science, Advanced University (2020).",
				),
				mockRule(
					"At least 3 years of project management experience.", "Fail",
					"The candidate lists project coordination roles but does not explicitly state 3 years of project management experience. The roles described seem more junior.",
					0.55, "Coordinated project timelines and deliverables for the junior development team.",
				),
				mockRule(
					"Must be proficient in JavaScript and React.", "Fail",
					"The CV mentions experience with vanilla JavaScript but does not list React or any similar modern frontend framework.",
					0.40, "Developed web interfaces using HTML, CSS, and JavaScript.",
				),
			},
			map[string]any{"compliance_rate": 0.33, "avg_similarity": 0.63, "passed_rules": 1, "failed_rules": 2},
		},
	}
}

func mockDocumentPairs() []models.DocumentPair {
	return []models.DocumentPair{
		{
			JobDescription: `**Senior Python Developer**

We are looking for an experienced Senior Python Developer to join our dynamic team. The ideal candidate will have a strong background in building scalable web applications.

**Responsibilities:**
- Design and implement low-latency, high-availability applications.
- Integrate user-facing elements with server-side logic.
- Write reusable, testable, and efficient code.

**Requirements:**
- Must have 5+ years of experience in Python programming.
- Experience with cloud platforms like AWS or Azure is required.
- A Bachelor's degree in Computer Science is mandatory.
- Familiarity with containerization technologies (Docker, Kubernetes).`,
			CandidateProfile: `**Jane Doe**
Software Engineer

**Summary:**
A highly motivated software engineer with over 8 years of experience in software development.

**Experience:**
**Lead Python Developer, Tech Solutions Inc. (2016 - Present)**
- Developed and maintained several large-scale applications over 7 years using Python.
- Utilized Docker to containerize microservices for a deployment pipeline.

**Skills:**
- Languages: Python, Java, SQL
- Cloud: Proficient with cloud services, including AWS (S3, EC2, Lambda).

**Education:**
- B.Sc. in Information Technology, University of Tech.`,
		},
		{
			JobDescription: `**Technical Project Manager**

We need a Technical Project Manager to oversee software development projects from conception to delivery.

**Key Qualifications:**
- At least 3 years of project management experience.
- Strong understanding of the software development lifecycle.
- Seeking a candidate with a Master's degree.
- Must be proficient in JavaScript and React.`,
			CandidateProfile: `**John Smith**
IT Professional

**Profile:**
Detail-oriented IT professional with a passion for technology and teamwork.

**Work History:**
**Project Coordinator, Innovate Corp. (2021 - Present)**
- Coordinated project timelines and deliverables for the junior development team.
- Assisted senior managers in tracking project milestones.

**Technical Skills:**
- Developed web interfaces using HTML, CSS, and JavaScript.
- Agile, Scrum, Jira

**Education:**
- Master of Science, Advanced University (2020).
- Bachelor of Arts, State College (2018).`,
		},
	}
}
