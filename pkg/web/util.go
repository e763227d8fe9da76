package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/taskflow-dev/taskflow/pkg/proto"
)

// errorResponse is the body of every failed API request.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func renderJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("error encoding json", "err", err)
	}
}

// renderError writes err with the status its code maps to. Errors without a
// code are logged and hidden from the client.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	var e *proto.Error
	if !errors.As(err, &e) {
		log.FromContext(r.Context()).Error("internal server error", "err", err)
		renderJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}
	if e.Code.HTTPStatus() >= http.StatusInternalServerError {
		log.FromContext(r.Context()).Error(e.Message, "err", err)
	}

	renderJSON(w, e.Code.HTTPStatus(), errorResponse{
		Error:   e.Message,
		Details: e.Details,
	})
}

func renderNotFound(w http.ResponseWriter, r *http.Request) {
	renderError(w, r, proto.ErrNotFound)
}

func renderMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	renderJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: http.StatusText(http.StatusMethodNotAllowed)})
}

func renderStatus(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		renderJSON(w, code, map[string]string{"status": http.StatusText(code)})
	}
}
