package server

import (
	"log"
	"net/http"
)

// handleSearch scrapes the job board for postings matching a company name.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	company := r.URL.Query().Get("company")
	if company == "" {
		s.errorResponse(w, http.StatusBadRequest, "company query parameter is required")
		return
	}

	postings, err := s.crawler.Search(r.Context(), company)
	if err != nil {
		log.Printf("[search] failed for %q: %v", company, err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if len(postings) == 0 {
		s.jsonResponse(w, http.StatusOK, map[string]string{"message": "No recruitment information found."})
		return
	}
	s.jsonResponse(w, http.StatusOK, postings)
}
