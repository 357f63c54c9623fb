package extraction

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"

	"github.com/xeipuuv/gojsonschema"

	"github.com/minjae/job-coach/internal/llm"
	"github.com/minjae/job-coach/internal/prompts"
	"github.com/minjae/job-coach/internal/storage"
	"github.com/minjae/job-coach/internal/types"
)

//go:embed schema.json
var jobDescriptionsSchema []byte

// Extractor runs the structured-extraction call for one company's
// captured posting files.
type Extractor struct {
	client llm.Client
	store  *storage.CompanyStore
}

// NewExtractor creates an extractor over the given client and store.
func NewExtractor(client llm.Client, store *storage.CompanyStore) *Extractor {
	return &Extractor{client: client, store: store}
}

// ExtractJobs reads the company's posting text and OCR text, asks the
// model to structure them, validates the output against the embedded
// schema and returns the typed job descriptions. Model output that is not
// valid JSON or violates the schema is surfaced as a typed error carrying
// enough detail to log; it is never silently reduced to an empty result.
func (x *Extractor) ExtractJobs(ctx context.Context, company string) ([]types.JobDescription, error) {
	text, err := x.store.ReadText(company)
	if err != nil {
		return nil, err
	}
	ocrText, err := x.store.ReadOCRText(company)
	if err != nil {
		return nil, err
	}

	raw, err := x.client.CompleteJSON(ctx, prompts.MustGet("extraction.json", "system"), renderUserPrompt(text, ocrText))
	if err != nil {
		return nil, err
	}

	cleaned := llm.CleanJSONBlock(raw)
	if err := validateAgainstSchema(cleaned); err != nil {
		return nil, err
	}

	var jobs []types.JobDescription
	if err := json.Unmarshal([]byte(cleaned), &jobs); err != nil {
		return nil, &UnparsableError{Raw: raw, Cause: err}
	}

	log.Printf("[extraction] structured %d job(s) for %s", len(jobs), company)
	return jobs, nil
}

// renderUserPrompt builds the extraction user message from the two text
// sources, keeping the labels the system prompt refers to.
func renderUserPrompt(text, ocrText string) string {
	return fmt.Sprintf("%s\n\n<텍스트 파일1>\n%s\n\n<텍스트 파일2>\n%s",
		prompts.MustGet("extraction.json", "user_prefix"), text, ocrText)
}

// validateAgainstSchema checks the cleaned model output against the
// embedded job-descriptions schema.
func validateAgainstSchema(cleaned string) error {
	schemaLoader := gojsonschema.NewBytesLoader(jobDescriptionsSchema)
	docLoader := gojsonschema.NewStringLoader(cleaned)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return &UnparsableError{Raw: cleaned, Cause: err}
	}
	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, verr := range result.Errors() {
			violations = append(violations, verr.String())
		}
		return &SchemaError{Violations: violations}
	}
	return nil
}
