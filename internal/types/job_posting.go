package types

// JobPosting is one listing record scraped from the job board search page.
type JobPosting struct {
	Name      string `json:"name"`
	Job       string `json:"job"`
	URL       string `json:"url"`
	Place     string `json:"place,omitempty"`
	Career    string `json:"career,omitempty"`
	Education string `json:"education,omitempty"`
}
