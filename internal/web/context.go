package web

import (
	"context"
	"net/http"
	"time"

	"github.com/JonMunkholm/stockview/internal/core"
	"github.com/JonMunkholm/stockview/internal/logging"
)

const sessionCookie = "stock_session"

type ctxKey int

const viewStateKey ctxKey = iota

type pageSession struct {
	id    string
	state *core.ViewState
}

// withSession resolves the page session from its cookie and stores it in
// the request context. Requests without a live session are sent back to
// "/" to start a new one; downloads get an error instead.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			id  string
			st  *core.ViewState
			err = core.ErrSessionNotFound
		)
		if c, cerr := r.Cookie(sessionCookie); cerr == nil {
			id = c.Value
			st, err = s.service.Session(id)
		}
		if err != nil {
			if r.Method == http.MethodGet && r.URL.Path != "/stock" && r.URL.Path != "/stock/" {
				s.respondError(w, r, err)
				return
			}
			http.Redirect(w, r, "/?expired=1", http.StatusSeeOther)
			return
		}

		ctx := logging.ContextWithSession(r.Context(), id)
		ctx = context.WithValue(ctx, viewStateKey, pageSession{id: id, state: st})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFrom returns the page session stored by withSession.
func sessionFrom(ctx context.Context) (string, *core.ViewState) {
	ps, _ := ctx.Value(viewStateKey).(pageSession)
	return ps.id, ps.state
}

func (s *Server) setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.cfg.Session.TTL / time.Second),
		HttpOnly: true,
		Secure:   s.cfg.Session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
