// Package storage manages the per-company file storage area: posting
// text, the posting image, and the OCR output derived from it.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// CompanyStore reads and writes the files kept for one scraped company.
// Writes are idempotent: fetching the same posting twice overwrites the
// previous files.
type CompanyStore struct {
	dir string
}

// NewCompanyStore creates the storage area rooted at dir, creating the
// directory when absent.
func NewCompanyStore(dir string) (*CompanyStore, error) {
	if dir == "" {
		dir = "company"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir %s: %w", dir, err)
	}
	return &CompanyStore{dir: dir}, nil
}

// Dir returns the storage root directory.
func (s *CompanyStore) Dir() string {
	return s.dir
}

// TextPath returns the path of the posting text file for a company.
func (s *CompanyStore) TextPath(company string) string {
	return filepath.Join(s.dir, company+".txt")
}

// ImagePath returns the path of the posting image file for a company.
func (s *CompanyStore) ImagePath(company string) string {
	return filepath.Join(s.dir, company+".jpg")
}

// OCRPath returns the path of the OCR output file for a company.
func (s *CompanyStore) OCRPath(company string) string {
	return filepath.Join(s.dir, company+"_ocr.txt")
}

// WriteText stores the posting text for a company.
func (s *CompanyStore) WriteText(company, text string) error {
	return s.write(s.TextPath(company), []byte(text))
}

// WriteImage stores the posting image for a company.
func (s *CompanyStore) WriteImage(company string, data []byte) error {
	return s.write(s.ImagePath(company), data)
}

// WriteOCRText stores the OCR output for a company.
func (s *CompanyStore) WriteOCRText(company, text string) error {
	return s.write(s.OCRPath(company), []byte(text))
}

// ReadText returns the posting text for a company.
func (s *CompanyStore) ReadText(company string) (string, error) {
	return s.read(s.TextPath(company))
}

// ReadOCRText returns the OCR output for a company.
func (s *CompanyStore) ReadOCRText(company string) (string, error) {
	return s.read(s.OCRPath(company))
}

// HasImage reports whether a posting image exists for a company.
func (s *CompanyStore) HasImage(company string) bool {
	_, err := os.Stat(s.ImagePath(company))
	return err == nil
}

func (s *CompanyStore) write(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (s *CompanyStore) read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
