package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/minjae/job-coach/internal/extraction"
	"github.com/minjae/job-coach/internal/ocr"
)

// JobDescriptionRequest represents the request body for /jobdescription.
type JobDescriptionRequest struct {
	Company *string `json:"company" validate:"required"`
	URL     *string `json:"url" validate:"required"`
}

// handleJobDescription captures a posting's detail page for a company,
// runs OCR over its image and returns the structured job descriptions.
func (s *Server) handleJobDescription(w http.ResponseWriter, r *http.Request) {
	var req JobDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	company, url := *req.Company, *req.URL

	if err := s.crawler.FetchDetail(r.Context(), url, company, s.store); err != nil {
		log.Printf("[jobdescription] detail fetch failed for %q: %v", company, err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	// OCR failure only means the posting had no readable image; the
	// extractor still runs over the posting text.
	if err := s.ocr.ExtractToText(r.Context(), company); err != nil {
		var noImage *ocr.NoImageError
		if errors.As(err, &noImage) {
			log.Printf("[jobdescription] no image to OCR for %q", company)
		} else {
			log.Printf("[jobdescription] OCR failed for %q: %v", company, err)
		}
	}

	jobs, err := s.extractor.ExtractJobs(r.Context(), company)
	if err != nil {
		var unparsable *extraction.UnparsableError
		var schemaErr *extraction.SchemaError
		if errors.As(err, &unparsable) || errors.As(err, &schemaErr) {
			log.Printf("[jobdescription] extraction output unusable for %q: %v", company, err)
			s.jsonResponse(w, http.StatusOK, map[string]string{"message": "None"})
			return
		}
		log.Printf("[jobdescription] extraction failed for %q: %v", company, err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"reply": jobs})
}
