// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily" mode: every player gets the same root word
// on a given UTC date. Rounds themselves behave exactly like random rounds.
//   - GET  /daily     → today's date key
//   - POST /daily/new → start a round on today's root word

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// dailyRes is returned by GET /daily.
type dailyRes struct {
	Date string `json:"date"`
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleDaily)
		r.Post("/new", s.handleDailyNew)
	})
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	if s.daily == nil {
		writeError(w, http.StatusServiceUnavailable, "mode_unavailable")
		return
	}
	writeJSON(w, http.StatusOK, dailyRes{Date: s.daily.Today()})
}

// handleDailyNew is POST /round/new with mode=daily.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	if s.daily == nil {
		writeError(w, http.StatusServiceUnavailable, "mode_unavailable")
		return
	}
	s.createRound(w, r, ModeDaily, s.daily)
}
