// Package ocr recovers text from posting images using the tesseract
// command line tool.
package ocr

import (
	"context"
	"fmt"
	"log"
	"os/exec"

	"github.com/minjae/job-coach/internal/storage"
)

// DefaultLanguages is the tesseract language set: postings mix Korean
// and English.
const DefaultLanguages = "kor+eng"

// NoImageError indicates no posting image exists for the company. The
// extractor still writes an empty OCR file so downstream extraction has a
// readable input.
type NoImageError struct {
	Company string
}

func (e *NoImageError) Error() string {
	return fmt.Sprintf("no posting image for company %q", e.Company)
}

// CommandError indicates the tesseract invocation itself failed.
type CommandError struct {
	Company string
	Cause   error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("ocr failed for company %q: %v", e.Company, e.Cause)
}

func (e *CommandError) Unwrap() error {
	return e.Cause
}

// Extractor runs OCR over a company's posting image and stores the
// recognized text next to it.
type Extractor struct {
	store *storage.CompanyStore

	// Command is the tesseract binary to invoke. Overridable for tests.
	Command string
	// Languages is the tesseract -l argument.
	Languages string
}

// NewExtractor creates an extractor over the given storage area.
func NewExtractor(store *storage.CompanyStore) *Extractor {
	return &Extractor{
		store:     store,
		Command:   "tesseract",
		Languages: DefaultLanguages,
	}
}

// ExtractToText reads the company's posting image and writes the
// recognized text to the OCR file. On any failure an empty OCR file is
// written and a typed error returned; callers treat that as "no extra
// text", not as a fatal condition.
func (x *Extractor) ExtractToText(ctx context.Context, company string) error {
	if !x.store.HasImage(company) {
		if err := x.store.WriteOCRText(company, ""); err != nil {
			return err
		}
		return &NoImageError{Company: company}
	}

	cmd := exec.CommandContext(ctx, x.Command, x.store.ImagePath(company), "stdout", "-l", x.Languages)
	out, err := cmd.Output()
	if err != nil {
		if werr := x.store.WriteOCRText(company, ""); werr != nil {
			return werr
		}
		return &CommandError{Company: company, Cause: err}
	}

	log.Printf("[ocr] extracted %d bytes for %s", len(out), company)
	return x.store.WriteOCRText(company, string(out))
}
