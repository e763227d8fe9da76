package web

import (
	"net/http"

	"github.com/taskflow-dev/taskflow/pkg/backend"
	"github.com/taskflow-dev/taskflow/pkg/proto"
)

func getMe(w http.ResponseWriter, _ *http.Request, caller proto.User) {
	renderJSON(w, http.StatusOK, caller)
}

func listUsers(w http.ResponseWriter, r *http.Request, caller proto.User) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	users, err := be.ListOtherUsers(ctx, caller)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, users)
}

func getActivity(w http.ResponseWriter, r *http.Request, caller proto.User) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	days, err := be.Activity(ctx, caller)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, days)
}
