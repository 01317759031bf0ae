// internal/httpserver/server.go
//
// HTTP server wiring for the solver.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Solving sessions: POST /sessions, GET/DELETE /sessions/{id},
//     POST /sessions/{id}/feedback.
//   - Outcome history: GET /history (when a history store is configured).
//   - Token issue: POST /auth/token (when an API key hash is configured).
//
// Notes:
//   - Auth is off unless a JWT secret is configured; with a secret every
//     session and history route requires a bearer token, and sessions are
//     only visible to the subject that created them.
//   - Finished sessions are written to the history best-effort; a failing
//     write is logged, never surfaced to the client.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/solver/internal/history"
	"github.com/robalobadob/wordle/apps/solver/internal/session"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// History is the outcome log the API reads and writes. *history.Store
// implements it.
type History interface {
	history.Recorder
	Recent(ctx context.Context, owner string, limit int) ([]history.Outcome, error)
	Stats(ctx context.Context) (history.Summary, error)
}

// Options carries the solver and auth settings.
type Options struct {
	Vocabulary []words.Word
	Opening    words.Word
	Guesser    session.Guesser
	History    History // nil disables /history and recording

	JWTSecret    string
	JWTExpiry    time.Duration
	APIKeyHash   string // bcrypt
	ClientOrigin string
	Timeout      time.Duration // per-request bound; default 60s
}

// Server bundles router, session store, and solver settings.
type Server struct {
	r      *chi.Mux
	store  store.Store
	opts   Options
	owners sync.Map // session ID → subject
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts Options) *Server {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.JWTExpiry <= 0 {
		opts.JWTExpiry = 24 * time.Hour
	}
	s := &Server{r: chi.NewRouter(), store: st, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(opts.Timeout))
	s.r.Use(jsonContentType)
	s.r.Use(cors(opts.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","POST /sessions","POST /sessions/{id}/feedback","/history","POST /auth/token"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"vocabulary": len(s.opts.Vocabulary),
			"opening":    s.opts.Opening.String(),
			"sessions":   s.store.Len(),
		})
	})

	s.r.Post("/auth/token", s.handleToken)

	s.r.Group(func(r chi.Router) {
		r.Use(s.requireAuth())
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleNewSession)
			r.Get("/{id}", s.handleGetSession)
			r.Delete("/{id}", s.handleDeleteSession)
			r.Post("/{id}/feedback", s.handleFeedback)
		})
		r.Get("/history", s.handleHistory)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
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

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeError writes {"error": code} with status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// ----------------------------- SESSIONS ------------------------------------

type turnView struct {
	Guess     string          `json:"guess"`
	Feedback  string          `json:"feedback"`
	Marks     []feedback.Mark `json:"marks"`
	Remaining int             `json:"remaining"`
}

// sessionView is the JSON shape of a session.
type sessionView struct {
	ID         string     `json:"id"`
	State      string     `json:"state"` // active | solved | exhausted
	Round      int        `json:"round"`
	Remaining  int        `json:"remaining"`
	Guess      string     `json:"guess,omitempty"`
	Solution   string     `json:"solution,omitempty"`
	Candidates []string   `json:"candidates,omitempty"` // only when few remain
	Turns      []turnView `json:"turns"`
}

// maxListedCandidates bounds how many candidates a view spells out.
const maxListedCandidates = 20

func viewOf(sess *session.Session) sessionView {
	v := sessionView{
		ID:        sess.ID(),
		State:     string(sess.State()),
		Round:     sess.Round(),
		Remaining: sess.Remaining(),
		Turns:     []turnView{},
	}
	if v.State == string(session.Active) {
		v.Guess = sess.Guess().String()
	}
	if w, ok := sess.Solution(); ok {
		v.Solution = w.String()
	}
	if v.Remaining <= maxListedCandidates {
		v.Candidates = words.Strings(sess.Candidates())
	}
	for _, t := range sess.Turns() {
		v.Turns = append(v.Turns, turnView{
			Guess:     t.Guess.String(),
			Feedback:  t.Code.String(),
			Marks:     t.Code.Marks(),
			Remaining: t.Remaining,
		})
	}
	return v
}

// handleNewSession starts a session over the full vocabulary.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	sess, err := session.New(s.opts.Vocabulary, s.opts.Opening, s.opts.Guesser)
	if err != nil {
		log.Error().Err(err).Msg("new session")
		writeError(w, http.StatusInternalServerError, "session_failed")
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.owners.Store(sess.ID(), subject(r))
	log.Info().Str("session", sess.ID()).Str("owner", subject(r)).Msg("session started")

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(viewOf(sess))
}

// lookup loads the session named in the URL, enforcing ownership.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "id")
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	if owner, _ := s.owners.Load(id); owner != subject(r) {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	return sess, true
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(viewOf(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	_ = s.store.Delete(r.Context(), sess.ID())
	s.owners.Delete(sess.ID())
	w.WriteHeader(http.StatusNoContent)
}

// feedbackReq carries either "+-." text or per-position marks (0/1/2).
type feedbackReq struct {
	Feedback string `json:"feedback"`
	Marks    []int  `json:"marks"`
}

// handleFeedback applies observed feedback and returns the updated session.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req feedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	var (
		code feedback.Code
		err  error
	)
	if req.Marks != nil {
		code, err = feedback.FromDigits(req.Marks)
	} else {
		code, err = feedback.Parse(req.Feedback)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := sess.Apply(r.Context(), code)
	switch {
	case errors.Is(err, session.ErrFinished):
		writeError(w, http.StatusConflict, "session_finished")
		return
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "timeout")
		return
	case err != nil:
		log.Error().Err(err).Str("session", sess.ID()).Msg("apply feedback")
		writeError(w, http.StatusInternalServerError, "apply_failed")
		return
	}

	if state.Terminal() {
		s.record(r.Context(), sess, subject(r))
	}
	_ = json.NewEncoder(w).Encode(viewOf(sess))
}

// record writes a finished session to the history (best effort).
func (s *Server) record(ctx context.Context, sess *session.Session, owner string) {
	if s.opts.History == nil {
		return
	}
	if err := s.opts.History.Record(ctx, history.FromSession(sess, owner)); err != nil {
		log.Warn().Err(err).Str("session", sess.ID()).Msg("record outcome")
	}
}

// ----------------------------- HISTORY -------------------------------------

type historyRes struct {
	Recent []history.Outcome `json:"recent"`
	Stats  history.Summary   `json:"stats"`
}

// handleHistory returns the caller's recent outcomes and global stats.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.opts.History == nil {
		writeError(w, http.StatusNotFound, "history_disabled")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	recent, err := s.opts.History.Recent(r.Context(), subject(r), limit)
	if err != nil {
		log.Error().Err(err).Msg("history recent")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	stats, err := s.opts.History.Stats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("history stats")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(historyRes{Recent: recent, Stats: stats})
}
