package web

// errors.go provides unified error response handling for the web layer.
//
// It ensures all errors are:
//   - Logged with full technical details for debugging (server-side)
//   - Returned to clients as user-friendly messages with action suggestions
//
// Page actions never render an error directly: the view state has already
// posted the mapped notice, so the handler redirects back to the page. Only
// downloads and the JSON API answer with an error body.

import (
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/stockview/internal/core"
	"github.com/JonMunkholm/stockview/internal/logging"
	"github.com/JonMunkholm/stockview/internal/stock"
	"github.com/JonMunkholm/stockview/internal/web/templates"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusFor picks the HTTP status for an error returned by core.
func statusFor(err error) int {
	var (
		te *core.TransportError
		ue *core.UpdateError
		de *core.DeleteError
	)
	switch {
	case errors.Is(err, core.ErrRowBusy), errors.Is(err, core.ErrExportBusy), errors.Is(err, core.ErrNotEditing):
		return http.StatusConflict
	case errors.Is(err, core.ErrTooManyExports):
		return http.StatusServiceUnavailable
	case errors.Is(err, core.ErrSessionNotFound), errors.Is(err, core.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, stock.ErrInvalidDate), errors.Is(err, stock.ErrInvalidNumber):
		return http.StatusBadRequest
	case errors.As(err, &te), errors.As(err, &ue), errors.As(err, &de):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError logs the technical error and writes the mapped user message
// as JSON or HTML depending on the request.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	userMsg := core.MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	if wantsJSON(r) {
		respondErrorJSON(w, userMsg, status)
		return
	}
	respondErrorHTML(w, r, userMsg, status)
}

// writeError writes a plain message that did not come from core, such as
// a rejected query parameter or the rate limiter.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	logging.FromContext(r.Context()).Warn("request rejected",
		"path", r.URL.Path,
		"status", status,
		"reason", message,
	)
	msg := core.UserMessage{Message: message, Code: http.StatusText(status)}
	if mapped := core.MapError(errors.New(message)); mapped.Code != "ERR000" {
		msg = mapped
	}
	if wantsJSON(r) {
		respondErrorJSON(w, msg, status)
		return
	}
	respondErrorHTML(w, r, msg, status)
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	writeJSON(w, statusCode, ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// respondErrorHTML writes a small error page.
func respondErrorHTML(w http.ResponseWriter, r *http.Request, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := templates.ErrorPage(msg.Message, msg.Action, msg.Code).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render error page", "error", err)
	}
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}

	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}
