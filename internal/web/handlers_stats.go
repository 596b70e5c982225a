package web

import (
	"net/http"
	"time"
)

// statsWindowDays is the trailing window the stats view covers.
const statsWindowDays = 28

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.mustSession(w, r)
	if !ok {
		return
	}

	since := time.Now().AddDate(0, 0, -statsWindowDays)
	stats, err := s.store.GetTrainingStats(r.Context(), sess.UserID, since)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "stats.html", page{
		Title: "Statistics",
		Data:  stats,
	})
}
