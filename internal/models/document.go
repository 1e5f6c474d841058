package models

// DocumentPlaceholder is shown in place of a missing document text.
const DocumentPlaceholder = "Not available."

// DocumentPair is one job description / candidate CV comparison unit.
// The *File fields point at documents inside the data directory and are only
// consulted when the matching inline text is empty.
type DocumentPair struct {
	JobDescription       string `json:"job_description"`
	CandidateProfile     string `json:"candidate_cv"`
	JobDescriptionFile   string `json:"job_description_file,omitempty"`
	CandidateProfileFile string `json:"candidate_cv_file,omitempty"`
}

func (p DocumentPair) JobDescriptionText() string {
	if p.JobDescription == "" {
		return DocumentPlaceholder
	}
	return p.JobDescription
}

func (p DocumentPair) CandidateProfileText() string {
	if p.CandidateProfile == "" {
		return DocumentPlaceholder
	}
	return p.CandidateProfile
}
