package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/minjae/job-coach/internal/assistant"
	"github.com/minjae/job-coach/internal/types"
)

// sessionCookieName carries the session key binding a client to its
// conversation thread.
const sessionCookieName = "thread_cookie"

// sessionCookieMaxAge is the session cookie lifetime in seconds (24h).
const sessionCookieMaxAge = 24 * 60 * 60

// AssistantRequest represents the request body for /assistant. The four
// required fields use pointers so "present but empty" is distinguishable
// from "absent": an empty question or answer is valid input, a missing
// one is not.
type AssistantRequest struct {
	Company        *string `json:"company" validate:"required"`
	Position       *string `json:"position" validate:"required"`
	Question       *string `json:"question" validate:"required"`
	Answer         *string `json:"answer" validate:"required"`
	Qualifications string  `json:"qualifications"`
	Requirements   string  `json:"requirements"`
	Duties         string  `json:"duties"`
	Preferred      string  `json:"preferred"`
	Ideal          string  `json:"ideal"`
}

// AssistantResponse represents the response for /assistant.
type AssistantResponse struct {
	Reply string `json:"reply"`
}

// handleAssistant executes one coaching turn bound to the caller's
// session. The first contact mints a session key and sets it as a cookie;
// later requests bearing the cookie reuse the same thread.
func (s *Server) handleAssistant(w http.ResponseWriter, r *http.Request) {
	var req AssistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	cookieValue := ""
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		cookieValue = cookie.Value
	}
	sessionKey, minted := assistant.ResolveSessionKey(cookieValue)

	reply, err := s.engine.ExecuteTurn(r.Context(), sessionKey, types.FeedbackRequest{
		Company:        *req.Company,
		Position:       *req.Position,
		Qualifications: req.Qualifications,
		Requirements:   req.Requirements,
		Duties:         req.Duties,
		Preferred:      req.Preferred,
		Ideal:          req.Ideal,
		Question:       *req.Question,
		Answer:         *req.Answer,
	})
	if err != nil {
		log.Printf("[assistant] turn failed for session %s: %v", sessionKey, err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if minted {
		http.SetCookie(w, s.sessionCookie(sessionKey))
	}
	s.jsonResponse(w, http.StatusOK, AssistantResponse{Reply: reply})
}

// sessionCookie builds the session cookie for a newly minted key.
func (s *Server) sessionCookie(sessionKey string) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionKey,
		Path:     "/",
		MaxAge:   sessionCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.cfg.Production(),
	}
}
