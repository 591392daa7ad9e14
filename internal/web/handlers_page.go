package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/stockview/internal/core"
	"github.com/JonMunkholm/stockview/internal/logging"
	"github.com/JonMunkholm/stockview/internal/web/templates"
)

// handleIndex starts a fresh page session: the record set is fetched again
// and no earlier criteria, page or edit carries over.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		s.service.Sessions().Remove(c.Value)
	}

	sid, err := s.service.Open(r.Context())
	if err == nil && r.URL.Query().Has("expired") {
		if st, serr := s.service.Session(sid); serr == nil {
			st.Post(core.NoticeFor(core.ErrSessionNotFound))
		}
	}

	s.setSessionCookie(w, sid)
	backToPage(w, r)
}

// handleStock renders the page for the current session.
func (s *Server) handleStock(w http.ResponseWriter, r *http.Request) {
	_, st := sessionFrom(r.Context())
	v := st.View()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := templates.StockPage(v).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render stock page", "error", err)
	}
}

// handleSearch replaces the search text.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	_, st := sessionFrom(r.Context())
	st.SetSearch(r.FormValue("q"))
	backToPage(w, r)
}

// handleExpiry applies or clears the expiry date range. A value that does
// not parse leaves the range as it was and shows a notice.
func (s *Server) handleExpiry(w http.ResponseWriter, r *http.Request) {
	_, st := sessionFrom(r.Context())

	from, to := r.FormValue("from"), r.FormValue("to")
	if r.FormValue("clear") != "" {
		from, to = "", ""
	}
	if err := st.SetExpiryRange(from, to); err != nil {
		logging.FromContext(r.Context()).Debug("expiry range rejected", "error", err)
	}
	backToPage(w, r)
}

// handlePage moves to the previous or next page.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	_, st := sessionFrom(r.Context())

	switch chi.URLParam(r, "dir") {
	case "prev":
		st.PrevPage()
	case "next":
		st.NextPage()
	default:
		writeError(w, r, http.StatusNotFound, "unknown page direction")
		return
	}
	backToPage(w, r)
}

// handleReload fetches the record set again within the same session.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionFrom(r.Context())
	if err := s.service.Reload(r.Context(), sid); err != nil {
		// The session already carries the notice.
		logging.FromContext(r.Context()).Debug("reload failed", "error", err)
	}
	backToPage(w, r)
}
