// internal/httpserver/server.go
//
// HTTP server wiring for the Word Scramble backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Round endpoints: POST /round/new, GET /round, POST /round/submit,
//     POST /round/restart, DELETE /round.
//   - Daily endpoints (routes_daily.go): POST /daily/new.
//   - Round tokens (session.go): a JWT naming the caller's round, sent as a
//     bearer token or cookie.
//
// Notes:
//   - Rejected submissions are 200 responses with accepted=false; only
//     malformed requests and missing/unknown rounds are HTTP errors.
//   - Each round logs its events through a zerolog observer.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/round"
	"github.com/robalobadob/wordscramble/internal/store"
	"github.com/robalobadob/wordscramble/internal/words"
)

const (
	ModeRandom = "random"
	ModeDaily  = "daily"
)

// Options carries the collaborators and settings the server needs.
type Options struct {
	Store    store.Store
	Random   round.WordSource
	Daily    *words.DailySource
	Oracle   round.Oracle
	Language string

	Secret       string
	TokenTTL     time.Duration
	Secure       bool // production cookies (Secure + SameSite=None)
	ClientOrigin string

	// WordStats feeds /debug/words; optional.
	WordStats func() map[string]int
}

// Server bundles router, round store and word collaborators.
type Server struct {
	r        *chi.Mux
	store    store.Store
	random   round.WordSource
	daily    *words.DailySource
	oracle   round.Oracle
	lang     string
	secret   []byte
	tokenTTL time.Duration
	secure   bool
	origin   string
	stats    func() map[string]int
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		store:    opts.Store,
		random:   opts.Random,
		daily:    opts.Daily,
		oracle:   opts.Oracle,
		lang:     opts.Language,
		secret:   []byte(opts.Secret),
		tokenTTL: opts.TokenTTL,
		secure:   opts.Secure,
		origin:   opts.ClientOrigin,
		stats:    opts.WordStats,
	}
	if s.tokenTTL <= 0 {
		s.tokenTTL = 24 * time.Hour
	}
	if s.origin == "" {
		s.origin = "http://localhost:5173"
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordscramble","endpoints":["/health","POST /round/new","GET /round","POST /round/submit","POST /round/restart","DELETE /round","POST /daily/new"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		out := map[string]int{}
		if s.stats != nil {
			out = s.stats()
		}
		writeJSON(w, http.StatusOK, out)
	})

	// --- rounds ---
	s.r.Route("/round", func(r chi.Router) {
		r.Post("/new", s.handleNewRound)
		r.Group(func(r chi.Router) {
			r.Use(s.withRound)
			r.Get("/", s.handleGetRound)
			r.Post("/submit", s.handleSubmit)
			r.Post("/restart", s.handleRestart)
			r.Delete("/", s.handleEndRound)
		})
	})

	s.mountDaily(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Sweep drops rounds idle for longer than ttl every interval until ctx is cancelled.
func (s *Server) Sweep(ctx context.Context, interval, ttl time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.store.Sweep(ctx, now.Add(-ttl)); n > 0 {
				log.Info().Int("rounds", n).Msg("swept stale rounds")
			}
		}
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.origin)
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

type ctxSessionKey struct{}

// withRound resolves the round token into the stored session.
// 401 for a missing or invalid token, 404 for an expired or unknown round.
func (s *Server) withRound(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearerOrCookie(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "missing_token")
			return
		}
		claims, err := s.parseToken(tok)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		sess, err := s.store.Get(r.Context(), claims.RoundID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "round_not_found")
				return
			}
			log.Error().Err(err).Str("roundId", claims.RoundID).Msg("load round")
			writeError(w, http.StatusInternalServerError, "store_failed")
			return
		}
		if err := s.store.Touch(r.Context(), sess.ID, time.Now()); err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Warn().Err(err).Str("roundId", sess.ID).Msg("touch round")
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(r *http.Request) *store.Session {
	sess, _ := r.Context().Value(ctxSessionKey{}).(*store.Session)
	return sess
}

// ------------------------------ ROUNDS -------------------------------------

// newRoundReq/Res payloads for POST /round/new.
type newRoundReq struct {
	Mode string `json:"mode"` // "random" (default) | "daily"
}
type newRoundRes struct {
	RoundID   string         `json:"roundId"`
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Mode      string         `json:"mode"`
	Date      string         `json:"date,omitempty"`
	Round     round.Snapshot `json:"round"`
}

// handleNewRound starts a round with the requested source. An empty body means random.
func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var req newRoundReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	switch req.Mode {
	case "", ModeRandom:
		s.createRound(w, r, ModeRandom, s.random)
	case ModeDaily:
		s.handleDailyNew(w, r)
	default:
		writeError(w, http.StatusBadRequest, "unknown_mode")
	}
}

// createRound builds, starts and stores an engine, then hands the client its token.
func (s *Server) createRound(w http.ResponseWriter, r *http.Request, mode string, src round.WordSource) {
	if src == nil {
		writeError(w, http.StatusServiceUnavailable, "mode_unavailable")
		return
	}

	id := genID()
	eng, err := round.New(src, s.oracle, round.Options{Language: s.lang, Observer: logObserver(id)})
	if err != nil {
		log.Error().Err(err).Msg("build round")
		writeError(w, http.StatusInternalServerError, "round_failed")
		return
	}
	snap := eng.Start()

	now := time.Now()
	sess := &store.Session{ID: id, Mode: mode, CreatedAt: now, LastSeen: now, Engine: eng}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save round")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	tok, exp, err := s.signToken(roundClaims{RoundID: id, Mode: mode})
	if err != nil {
		log.Error().Err(err).Msg("sign round token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setTokenCookie(w, tok, exp)
	log.Debug().Str("round", id).Str("mode", mode).Str("language", eng.Language()).Msg("round created")

	res := newRoundRes{RoundID: id, Token: tok, ExpiresAt: exp.UTC(), Mode: mode, Round: snap}
	if mode == ModeDaily {
		res.Date = s.daily.Today()
	}
	writeJSON(w, http.StatusOK, res)
}

// handleGetRound returns the caller's current round.
func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r).Engine.Snapshot())
}

// submitReq/Res payloads for POST /round/submit.
type submitReq struct {
	Word string `json:"word"`
}
type submitRes struct {
	Accepted bool           `json:"accepted"`
	Points   int            `json:"points,omitempty"`
	Reason   string         `json:"reason,omitempty"`
	Title    string         `json:"title,omitempty"`
	Message  string         `json:"message,omitempty"`
	Round    round.Snapshot `json:"round"`
}

// handleSubmit runs one candidate word through the round engine.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	res, snap := sessionFrom(r).Engine.SubmitSnapshot(req.Word)

	if res.Accepted() {
		writeJSON(w, http.StatusOK, submitRes{Accepted: true, Points: res.Points, Round: snap})
		return
	}
	writeJSON(w, http.StatusOK, submitRes{
		Reason:  res.Reason.String(),
		Title:   res.Reason.Title(),
		Message: res.Reason.Message(snap.RootWord),
		Round:   snap,
	})
}

// handleRestart replaces the caller's round with a fresh one from the same source.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r).Engine.Start())
}

// handleEndRound discards the caller's round and clears the token cookie.
func (s *Server) handleEndRound(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := s.store.Delete(r.Context(), sess.ID); err != nil {
		log.Error().Err(err).Str("roundId", sess.ID).Msg("delete round")
		writeError(w, http.StatusInternalServerError, "store_failed")
		return
	}
	s.clearTokenCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ------------------------------- helpers -----------------------------------

// logObserver logs round events tagged with the round id.
func logObserver(id string) round.Observer {
	return round.ObserverFunc(func(ev round.Event) {
		switch ev.Type {
		case round.EvtStarted:
			log.Info().Str("roundId", id).Str("root", ev.Round.RootWord).Msg("round started")
		case round.EvtAccepted:
			log.Debug().Str("roundId", id).Str("word", ev.Word).Int("points", ev.Points).
				Int("score", ev.Round.Score).Msg("word accepted")
		case round.EvtRejected:
			log.Debug().Str("roundId", id).Str("word", ev.Word).Stringer("reason", ev.Reason).
				Msg("word rejected")
		}
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
