package web

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/taskflow-dev/taskflow/pkg/config"
	"github.com/taskflow-dev/taskflow/pkg/session"
)

// NewRouter returns a new HTTP router.
func NewRouter(ctx context.Context, sessions session.Provider) http.Handler {
	logger := log.FromContext(ctx).WithPrefix("http")
	cfg := config.FromContext(ctx)
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	router := mux.NewRouter()

	// Health routes
	HealthController(ctx, router)

	// Stored attachment bytes
	BlobController(ctx, router)

	// JSON API
	APIController(ctx, router)

	router.NotFoundHandler = http.HandlerFunc(renderNotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(renderMethodNotAllowed)

	// Context handler
	// Adds context and the caller session to the request
	h := NewLoggingMiddleware(router)
	h = NewSessionHandler(sessions, logger)(h)
	h = NewContextHandler(ctx)(h)
	h = handlers.CORS(
		handlers.AllowedOrigins(cfg.HTTP.CORS.AllowedOrigins),
		handlers.AllowedMethods(cfg.HTTP.CORS.AllowedMethods),
		handlers.AllowedHeaders(cfg.HTTP.CORS.AllowedHeaders),
		handlers.AllowCredentials(),
	)(h)
	h = handlers.CompressHandler(h)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel})),
	)(h)

	return h
}
