// apps/go-solver/internal/httpserver/server.go
//
// HTTP wiring for the solver.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Solver endpoints: POST /solver/new, POST /solver/feedback,
//     GET /solver/{id}/top.
//   - In-memory session registry keyed by crypto-random IDs.
//
// Notes:
//   - CORS is origin-aware so a browser client can drive the solver.
//   - Sessions hold a per-game clone of one shared base guesser, so the
//     scorer precomputation is paid once at startup, not per session.

package httpserver

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
)

// sessionTTL is how long an idle solver session is kept.
const sessionTTL = time.Hour

// session is one in-flight solve: the cloned guesser plus the guess the
// next feedback line refers to. The session mutex serializes concurrent
// requests for the same session; s.mu only guards the registry map.
type session struct {
	mu        sync.Mutex
	guesser   *game.MaxScoreGuesser
	lastGuess string
	touched   time.Time
}

// Server bundles the router and the in-memory session registry.
type Server struct {
	r    *chi.Mux
	base *game.MaxScoreGuesser

	mu       sync.Mutex
	sessions map[string]*session
}

// New constructs a Server around the given base guesser, installs
// middleware, and registers routes.
func New(base *game.MaxScoreGuesser) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		base:     base,
		sessions: make(map[string]*session),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(30 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // browser-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","POST /solver/new","POST /solver/feedback","GET /solver/{id}/top"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Post("/solver/new", s.handleNewSession)
	s.r.Post("/solver/feedback", s.handleFeedback)
	s.r.Get("/solver/{id}/top", s.handleTopGuesses)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ SOLVER -------------------------------------

// newSessionRes is the payload for POST /solver/new.
type newSessionRes struct {
	SessionID        string `json:"sessionId"`
	Guess            string `json:"guess"`
	NumPossibleWords int    `json:"numPossibleWords"`
}

// handleNewSession clones the base guesser into a new session and
// returns the opening guess.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	guesser := s.base.Clone()
	guess, ok := guesser.SelectNextGuess()
	if !ok {
		http.Error(w, `{"error":"empty_word_bank"}`, http.StatusInternalServerError)
		return
	}

	id := genID()
	s.mu.Lock()
	s.pruneLocked(time.Now())
	s.sessions[id] = &session{guesser: guesser, lastGuess: guess, touched: time.Now()}
	s.mu.Unlock()

	log.Info().Str("session", id).Str("guess", guess).Msg("new solver session")
	_ = json.NewEncoder(w).Encode(newSessionRes{
		SessionID:        id,
		Guess:            guess,
		NumPossibleWords: guesser.NumPossibleWords(),
	})
}

// feedbackReq/Res payloads for POST /solver/feedback. Feedback is a line
// of '.'/'y'/'g' aligned with the session's last guess.
type feedbackReq struct {
	SessionID string `json:"sessionId"`
	Feedback  string `json:"feedback"`
}
type feedbackRes struct {
	Guess            string `json:"guess,omitempty"`
	NumPossibleWords int    `json:"numPossibleWords"`
	Solved           bool   `json:"solved"`
}

// handleFeedback applies one round of feedback and returns the next
// guess. Inconsistent or malformed feedback is a 400 and leaves the
// session unchanged, so the client can correct and resend.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	sess, ok := s.sessions[req.SessionID]
	s.mu.Unlock()
	if !ok {
		http.Error(w, `{"error":"session_not_found"}`, http.StatusNotFound)
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	result, err := results.Parse(sess.lastGuess, req.Feedback)
	if err != nil {
		http.Error(w, `{"error":"bad_feedback","detail":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	if result.AllCorrect() {
		s.mu.Lock()
		delete(s.sessions, req.SessionID)
		s.mu.Unlock()
		_ = json.NewEncoder(w).Encode(feedbackRes{Solved: true, NumPossibleWords: 1})
		return
	}
	if err := sess.guesser.Update(result); err != nil {
		if errors.Is(err, results.ErrInconsistentFeedback) {
			http.Error(w, `{"error":"inconsistent_feedback"}`, http.StatusBadRequest)
			return
		}
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	guess, ok := sess.guesser.SelectNextGuess()
	if !ok {
		// Every word has been ruled out: the objective was never in the
		// bank, or some earlier feedback was wrong.
		http.Error(w, `{"error":"no_possible_words"}`, http.StatusConflict)
		return
	}
	sess.lastGuess = guess
	sess.touched = time.Now()
	_ = json.NewEncoder(w).Encode(feedbackRes{
		Guess:            guess,
		NumPossibleWords: sess.guesser.NumPossibleWords(),
	})
}

// topGuessRes is one entry of GET /solver/{id}/top.
type topGuessRes struct {
	Word  string `json:"word"`
	Score int64  `json:"score"`
}

// handleTopGuesses returns the session's current best guesses.
func (s *Server) handleTopGuesses(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		http.Error(w, `{"error":"session_not_found"}`, http.StatusNotFound)
		return
	}
	sess.mu.Lock()
	top := sess.guesser.SelectTopNGuesses(5)
	sess.mu.Unlock()
	out := make([]topGuessRes, 0, len(top))
	for _, g := range top {
		out = append(out, topGuessRes{Word: g.Word, Score: g.Score})
	}
	_ = json.NewEncoder(w).Encode(out)
}

// ------------------------------- small util --------------------------------

// pruneLocked drops sessions idle past the TTL. Caller holds s.mu.
func (s *Server) pruneLocked(now time.Time) {
	for id, sess := range s.sessions {
		if now.Sub(sess.touched) > sessionTTL {
			delete(s.sessions, id)
		}
	}
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	s := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b[:])
	if len(s) > 22 {
		return s[:22]
	}
	return s
}
