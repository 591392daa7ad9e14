package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/stockview/internal/core"
	"github.com/JonMunkholm/stockview/internal/logging"
	"github.com/JonMunkholm/stockview/internal/stock"
)

// rowID returns the record id from the URL. Ids are path-escaped in links.
func rowID(r *http.Request) stock.ID {
	raw := chi.URLParam(r, "id")
	if id, err := url.PathUnescape(raw); err == nil {
		return stock.ID(id)
	}
	return stock.ID(raw)
}

// handleEdit puts a row into edit mode.
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	_, st := sessionFrom(r.Context())
	id := rowID(r)

	if err := st.BeginEdit(id); err != nil {
		backToPage(w, r)
		return
	}
	backToRow(w, r, id)
}

// handleCancel leaves edit mode without saving.
func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	_, st := sessionFrom(r.Context())
	st.CancelEdit()
	backToRow(w, r, rowID(r))
}

// handleSave submits the edit form of a row.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionFrom(r.Context())
	id := rowID(r)

	changes, err := editChanges(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid form")
		return
	}

	err = s.service.SaveEdit(r.Context(), sid, id, changes)
	s.afterMutation(w, r, id, err)
}

// handleDelete deletes a row. The page asks the user to confirm first.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionFrom(r.Context())
	id := rowID(r)

	err := s.service.Delete(r.Context(), sid, id)
	s.afterMutation(w, r, id, err)
}

// afterMutation answers a save or delete. The outcome is already posted as
// the session's notice, so the page is simply shown again. Script clients
// asking for JSON get the status instead.
func (s *Server) afterMutation(w http.ResponseWriter, r *http.Request, id stock.ID, err error) {
	if errors.Is(err, core.ErrSessionNotFound) {
		http.Redirect(w, r, "/?expired=1", http.StatusSeeOther)
		return
	}
	if wantsJSON(r) {
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "id": id.String()})
		return
	}
	if err != nil {
		logging.FromContext(r.Context()).Debug("mutation failed", "id", id, "error", err)
	}
	backToRow(w, r, id)
}
