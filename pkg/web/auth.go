package web

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/taskflow-dev/taskflow/pkg/backend"
	"github.com/taskflow-dev/taskflow/pkg/proto"
	"github.com/taskflow-dev/taskflow/pkg/session"
)

// NewSessionHandler returns a middleware that attaches the caller session to
// the request context. Requests without a valid session pass through
// anonymously; handlers that need a caller reject them.
func NewSessionHandler(sessions session.Provider, logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sessions != nil {
				s, err := sessions.GetSession(r)
				switch {
				case err == nil:
					r = r.WithContext(session.WithContext(r.Context(), s))
				case !errors.Is(err, session.ErrNoSession):
					logger.Debug("rejected session", "err", err)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// authHandlerFunc is a handler that runs on behalf of a known user.
type authHandlerFunc func(w http.ResponseWriter, r *http.Request, caller proto.User)

// withUser resolves the caller before running fn and answers 401 otherwise.
func withUser(fn authHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		be := backend.FromContext(ctx)
		caller, err := be.RequireUser(ctx)
		if err != nil {
			renderError(w, r, err)
			return
		}
		fn(w, r, caller)
	}
}
