package types

// JobDescription is one structured role extracted from a posting by the
// LLM. The JSON keys are the Korean labels the extraction prompt asks
// for, so the frontend receives the same shape the original posting used.
type JobDescription struct {
	Title          string   `json:"직무명"`
	Duties         []string `json:"담당업무"`
	Qualifications []string `json:"자격요건"`
	Requirements   []string `json:"필수사항"`
	Preferred      []string `json:"우대사항"`
	Ideal          []string `json:"인재상"`
}
