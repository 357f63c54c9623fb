// Package types defines the shared domain types for the job-coach service.
package types

// FeedbackRequest carries one self-introduction review request.
// Question and Answer are always present (an empty string is a valid
// value); the evaluation-axis fields default to empty and an empty axis
// is rendered but ignored by the assistant.
type FeedbackRequest struct {
	Company        string `json:"company"`
	Position       string `json:"position"`
	Qualifications string `json:"qualifications"`
	Requirements   string `json:"requirements"`
	Duties         string `json:"duties"`
	Preferred      string `json:"preferred"`
	Ideal          string `json:"ideal"`
	Question       string `json:"question"`
	Answer         string `json:"answer"`
}
