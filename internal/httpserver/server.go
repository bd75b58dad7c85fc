// internal/httpserver/server.go
//
// HTTP wiring for the WordleTrack backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (optional auth): POST /game/new, /game/guess, /game/hint.
//   - Stats + auth endpoints (require auth): /stats/me, /auth/me, /debug/tiers.
//   - Anonymous session cookie so guests can play; their rounds are
//     claimed on signup/login.
//
// The core engine packages (puzzle, hint, selector, skill) never touch
// HTTP or the database; this layer owns all I/O and error-to-status
// mapping.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordletrack/internal/hint"
	"github.com/robalobadob/wordletrack/internal/puzzle"
	"github.com/robalobadob/wordletrack/internal/selector"
	"github.com/robalobadob/wordletrack/internal/skill"
	"github.com/robalobadob/wordletrack/internal/store"
	"github.com/robalobadob/wordletrack/internal/words"
)

// clusterK is the number of skill tiers the server clusters players into.
const clusterK = 3

// Server bundles router, active-session store, history store, bank,
// and the injected randomness for word selection.
type Server struct {
	r       *chi.Mux
	store   store.Store
	history *store.History
	bank    *words.Bank
	db      *sql.DB
	rng     selector.Rand
}

// New constructs a Server, installs middleware, and registers routes.
// rng is the randomness source for word selection; inject a fixed-seed
// source in tests for reproducible draws.
func New(st store.Store, db *sql.DB, bank *words.Bank, rng selector.Rand) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		store:   st,
		history: store.NewHistory(db),
		bank:    bank,
		db:      db,
		rng:     rng,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordletrack","endpoints":["/health","POST /game/new","POST /game/guess","POST /game/hint","/auth/*","/stats/me"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(s.bank.Stats())
	})

	// Game endpoints — OPTIONAL AUTH (guests can play)
	s.r.With(s.withOptionalAuth()).Post("/game/new", s.handleNewGame)
	s.r.With(s.withOptionalAuth()).Post("/game/guess", s.handleGuess)
	s.r.With(s.withOptionalAuth()).Post("/game/hint", s.handleHint)

	// Auth + profile/stats (require auth)
	s.mountAuthRoutes()

	s.r.With(s.requireAuth()).Get("/stats/me", s.handleMyStats)
	s.r.With(s.requireAuth()).Get("/debug/tiers", s.handleTiers)

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

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ GAME ---------------------------------------

type newGameReq struct {
	Level  int    `json:"level"`  // 4 or 5; defaults to 5
	Answer string `json:"answer"` // optional fixed answer (testing)
}
type newGameRes struct {
	GameID string `json:"gameId"`
	Level  int    `json:"level"`
	Tier   string `json:"tier"`
}

// handleNewGame estimates the caller's tier from stored history, picks
// a hidden word for it, and opens a session.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	level := puzzle.LevelFive
	if req.Level != 0 {
		level = puzzle.Level(req.Level)
	}
	if !level.Valid() {
		http.Error(w, `{"error":"invalid_level"}`, http.StatusBadRequest)
		return
	}

	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	tier := s.tierFor(r, me)

	answer := strings.ToLower(strings.TrimSpace(req.Answer))
	if answer == "" {
		var err error
		answer, err = selector.Select(tier, level, s.bank, s.rng)
		if err != nil {
			log.Error().Err(err).Int("level", level.Len()).Msg("select word")
			http.Error(w, `{"error":"empty_word_bank"}`, http.StatusInternalServerError)
			return
		}
	} else if !validAnswer(answer, level) {
		http.Error(w, `{"error":"invalid_answer"}`, http.StatusBadRequest)
		return
	}

	g := puzzle.NewSession(answer, level)
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	if me == nil {
		s.ensureAnonID(w, r) // stable guest identity for later claiming
	}

	_ = json.NewEncoder(w).Encode(newGameRes{GameID: g.ID, Level: level.Len(), Tier: tier.String()})
}

// validAnswer checks a caller-supplied hidden word: exactly the level
// length, lowercase a-z. The engine assumes validated words, so
// anything else is rejected here.
func validAnswer(answer string, level puzzle.Level) bool {
	if len(answer) != level.Len() {
		return false
	}
	for i := 0; i < len(answer); i++ {
		if answer[i] < 'a' || answer[i] > 'z' {
			return false
		}
	}
	return true
}

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Result puzzle.GuessResult `json:"result"`
	State  puzzle.Outcome     `json:"state"`
}

// handleGuess applies a guess to a session and, when the session
// finishes, persists the round and bumps aggregate user stats.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	g, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if !s.bank.Contains(req.Guess) {
		http.Error(w, `{"error":"not_in_word_list"}`, http.StatusBadRequest)
		return
	}

	// Time since the previous attempt (or session start).
	elapsed := time.Since(g.StartedAt) - g.Duration()

	res, state, err := g.ApplyGuess(req.Guess, elapsed)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, puzzle.ErrSessionFinished) {
			status = http.StatusConflict
		}
		http.Error(w, `{"error":"`+err.Error()+`"}`, status)
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	// Persist finished rounds (best effort, non-fatal if it fails).
	if state != puzzle.OutcomeInProgress {
		me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
		userID, anonID := "", ""
		if me != nil {
			userID = me.ID
		} else {
			anonID = s.ensureAnonID(w, r)
		}
		if err := s.history.RecordRound(r.Context(), userID, anonID, g); err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Msg("record round")
		}
		if me != nil {
			if err := s.bumpStats(me.ID, state == puzzle.OutcomeWon); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
		}
	}

	_ = json.NewEncoder(w).Encode(guessRes{Result: res, State: state})
}

type hintReq struct {
	GameID string `json:"gameId"`
}
type hintRes struct {
	Placements hint.Suggestion `json:"placements"`
}

// handleHint runs the constraint hint generator over a session.
// No-hint and contradictory-history cases both surface as 422; the
// session stays playable either way.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	var req hintReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	g, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if g.Finished() {
		http.Error(w, `{"error":"session_finished"}`, http.StatusConflict)
		return
	}

	sug, err := hint.Generate(g)
	switch {
	case errors.Is(err, hint.ErrNoHint):
		http.Error(w, `{"error":"no_hint_available"}`, http.StatusUnprocessableEntity)
		return
	case errors.Is(err, hint.ErrConflict):
		log.Warn().Str("gameId", g.ID).Msg("contradictory feedback history")
		http.Error(w, `{"error":"no_hint_available"}`, http.StatusUnprocessableEntity)
		return
	case err != nil:
		http.Error(w, `{"error":"hint_failed"}`, http.StatusInternalServerError)
		return
	}

	g.HintsUsed++
	if err := s.store.Save(r.Context(), g); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(hintRes{Placements: sug})
}

// ------------------------------ STATS --------------------------------------

// handleMyStats returns the caller's performance vector, tier, and
// aggregate counters.
func (s *Server) handleMyStats(w http.ResponseWriter, r *http.Request) {
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	if me == nil {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}
	rounds, err := s.history.RoundsFor(r.Context(), me.ID)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	u, err := s.findUserByID(me.ID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":          u.ID,
		"gamesPlayed": u.GamesPlayed,
		"wins":        u.Wins,
		"streak":      u.Streak,
		"vector":      skill.Summarize(rounds),
		"tier":        s.tierFor(r, me).String(),
	})
}

// handleTiers exposes the current clustering of all players.
func (s *Server) handleTiers(w http.ResponseWriter, r *http.Request) {
	vectors, err := s.history.AllVectors(r.Context())
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	ids := make([]string, 0, len(vectors))
	vs := make([]skill.Vector, 0, len(vectors))
	for id, v := range vectors {
		ids = append(ids, id)
		vs = append(vs, v)
	}
	tiers, err := skill.AssignTiers(vs, clusterK)
	if errors.Is(err, skill.ErrInsufficientData) {
		http.Error(w, `{"error":"insufficient_data"}`, http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"cluster_failed"}`, http.StatusInternalServerError)
		return
	}
	out := make(map[string]string, len(ids))
	for i, id := range ids {
		out[id] = tiers[i].String()
	}
	_ = json.NewEncoder(w).Encode(out)
}

// tierFor estimates the caller's skill tier by clustering all players'
// performance vectors. Guests and players without enough accumulated
// history default to novice, per the insufficient-data fallback.
func (s *Server) tierFor(r *http.Request, me *authUser) skill.Tier {
	if me == nil {
		return skill.TierNovice
	}
	vectors, err := s.history.AllVectors(r.Context())
	if err != nil {
		log.Warn().Err(err).Msg("load vectors")
		return skill.TierNovice
	}
	if _, ok := vectors[me.ID]; !ok {
		return skill.TierNovice
	}
	ids := make([]string, 0, len(vectors))
	vs := make([]skill.Vector, 0, len(vectors))
	for id, v := range vectors {
		ids = append(ids, id)
		vs = append(vs, v)
	}
	tiers, err := skill.AssignTiers(vs, clusterK)
	if err != nil {
		// Fewer players than clusters: not an error, just not enough data.
		return skill.TierNovice
	}
	for i, id := range ids {
		if id == me.ID {
			return tiers[i]
		}
	}
	return skill.TierNovice
}
