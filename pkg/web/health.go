package web

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/taskflow-dev/taskflow/pkg/backend"
	"github.com/taskflow-dev/taskflow/pkg/db"
)

const readinessTimeout = 2 * time.Second

type readiness struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthController registers the liveness and readiness probes.
func HealthController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/livez", getLiveness).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/readyz", getReadiness).Methods(http.MethodGet, http.MethodHead)
}

func getLiveness(w http.ResponseWriter, _ *http.Request) {
	renderStatus(http.StatusOK)(w, nil)
}

// getReadiness reports ready once the database answers and the backend is
// wired. Each check is listed in the body.
func getReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()
	logger := log.FromContext(ctx)

	res := readiness{Status: "ok", Checks: map[string]string{}}
	fail := func(check, reason string) {
		res.Status = "unavailable"
		res.Checks[check] = reason
	}

	if dbx := db.FromContext(ctx); dbx == nil {
		fail("database", "not configured")
	} else if err := dbx.PingContext(ctx); err != nil {
		logger.Error("readiness check failed", "check", "database", "err", err)
		fail("database", "unreachable")
	} else {
		res.Checks["database"] = "ok"
	}

	if be := backend.FromContext(ctx); be == nil {
		fail("backend", "not configured")
	} else if be.Inline() {
		res.Checks["attachments"] = "inline"
	} else {
		res.Checks["attachments"] = "ok"
	}

	code := http.StatusOK
	if res.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	renderJSON(w, code, res)
}
