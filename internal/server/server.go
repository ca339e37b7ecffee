package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/example/tallum/internal/config"
	"github.com/example/tallum/internal/drill"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Request headers understood by the API
const (
	HeaderUserID    = "X-User-ID"
	HeaderRequestID = "X-Request-ID"
)

// Server exposes the drill service as a JSON API
type Server struct {
	Mux       *mux.Router
	Drill     *drill.Service
	Config    config.HTTPConfig
	AccessLog io.Writer
}

// New creates a server and registers its routes
func New(service *drill.Service, cfg config.HTTPConfig) *Server {
	s := &Server{
		Mux:       mux.NewRouter(),
		Drill:     service,
		Config:    cfg,
		AccessLog: os.Stderr,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.Mux.PathPrefix("/api").Subrouter()
	api.HandleFunc("/next-word", s.handleNextWord).Methods(http.MethodGet)
	api.HandleFunc("/check-answer", s.handleCheckAnswer).Methods(http.MethodPost)
	api.HandleFunc("/get-sentence/{word_id}", s.handleGetSentence).Methods(http.MethodGet)
	api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)

	s.Mux.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.Mux.Use(requestIDHandler)
	s.Mux.Use(mux.CORSMethodMiddleware(s.Mux))
}

// Handler wraps the router with recovery, CORS and access logging
func (s *Server) Handler() http.Handler {
	origins := s.Config.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowedOrigins := handlers.AllowedOrigins(origins)
	allowedMethods := handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions})
	allowedHeaders := handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", HeaderUserID})

	h := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(s.Mux)
	h = handlers.CORS(allowedOrigins, allowedMethods, allowedHeaders)(h)
	return handlers.LoggingHandler(s.AccessLog, h)
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Config.Addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", s.Config.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("error serving on %s: %w", s.Config.Addr, err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.Config.ShutdownTimeout)
	defer cancel()
	log.Println("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func requestIDHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r)
	})
}

type nextWordResponse struct {
	ID              int64  `json:"id"`
	Word            string `json:"word"`
	Translation     string `json:"translation"`
	ExampleSentence string `json:"example_sentence"`
}

func (s *Server) handleNextWord(w http.ResponseWriter, r *http.Request) {
	c, err := s.Drill.NextWord(r.Context(), userID(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nextWordResponse{
		ID:              c.Word.ID,
		Word:            c.Word.Word,
		Translation:     c.Word.Translation,
		ExampleSentence: c.Word.ExampleSentence,
	})
}

func (s *Server) handleCheckAnswer(w http.ResponseWriter, r *http.Request) {
	req, err := ParseCheckAnswer(r.Body)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.Drill.SubmitAnswer(r.Context(), req.ToAnswer(userID(r)))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleGetSentence(w http.ResponseWriter, r *http.Request) {
	id, err := parseWordID(mux.Vars(r)["word_id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sentence, err := s.Drill.Sentence(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"example_sentence": sentence})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Drill.Stats(r.Context(), userID(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("[%s %s] request %s: %v", r.Method, r.URL.Path, w.Header().Get(HeaderRequestID), err)
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Error: msg})
}
