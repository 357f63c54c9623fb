// Package server provides the HTTP REST API for the job-coach service.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/minjae/job-coach/internal/assistant"
	"github.com/minjae/job-coach/internal/config"
	"github.com/minjae/job-coach/internal/crawling"
	"github.com/minjae/job-coach/internal/extraction"
	"github.com/minjae/job-coach/internal/llm"
	"github.com/minjae/job-coach/internal/ocr"
	"github.com/minjae/job-coach/internal/storage"
)

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	cfg        *config.Config

	client    llm.Client
	engine    *assistant.Engine
	identity  *assistant.IdentityStore
	registry  *assistant.Registry
	crawler   *crawling.Crawler
	store     *storage.CompanyStore
	ocr       *ocr.Extractor
	extractor *extraction.Extractor
	validate  *validator.Validate
}

// New creates a new server instance with a real OpenAI-backed client.
func New(cfg *config.Config) (*Server, error) {
	client, err := llm.NewOpenAIClient(llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return newServer(cfg, client)
}

// newServer wires the components around an injected client. Tests use
// this seam with a fake client.
func newServer(cfg *config.Config, client llm.Client) (*Server, error) {
	store, err := storage.NewCompanyStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	identity := assistant.NewIdentityStore(client, cfg.IdentityFile, llm.DefaultConfig().AssistantName)
	registry := assistant.NewRegistry(client)
	engine := assistant.NewEngine(client, identity, registry, assistant.EngineConfig{
		PollInterval: cfg.PollInterval,
		PollTimeout:  cfg.PollTimeout,
	})

	crawler := crawling.New()
	crawler.UseBrowser = cfg.UseBrowser

	s := &Server{
		cfg:       cfg,
		client:    client,
		engine:    engine,
		identity:  identity,
		registry:  registry,
		crawler:   crawler,
		store:     store,
		ocr:       ocr.NewExtractor(store),
		extractor: extraction.NewExtractor(client, store),
		validate:  validator.New(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /search", s.handleSearch)
	mux.HandleFunc("POST /jobdescription", s.handleJobDescription)
	mux.HandleFunc("POST /assistant", s.handleAssistant)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.PollTimeout + 30*time.Second, // assistant turns block on run polling
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if err := s.client.Close(); err != nil {
		log.Printf("Error closing LLM client: %v", err)
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers. The session cookie requires credentialed
// requests, so the origin is echoed instead of using a wildcard.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
