package web

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/taskflow-dev/taskflow/pkg/backend"
	"github.com/taskflow-dev/taskflow/pkg/proto"
)

func listSubtasks(w http.ResponseWriter, r *http.Request, caller proto.User) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	subtasks, err := be.ListSubtasks(ctx, caller, mux.Vars(r)["id"])
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, subtasks)
}

func createSubtask(w http.ResponseWriter, r *http.Request, caller proto.User) {
	var req subtaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	ctx := r.Context()
	be := backend.FromContext(ctx)
	subtask, err := be.AddSubtask(ctx, caller, mux.Vars(r)["id"], req.Title)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusCreated, subtask)
}

func updateSubtask(w http.ResponseWriter, r *http.Request, caller proto.User) {
	var req updateSubtaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	ctx := r.Context()
	be := backend.FromContext(ctx)
	vars := mux.Vars(r)
	subtask, err := be.UpdateSubtask(ctx, caller, vars["id"], vars["subtaskId"], req.SubtaskPatch)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, subtask)
}

func deleteSubtask(w http.ResponseWriter, r *http.Request, caller proto.User) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	vars := mux.Vars(r)
	if err := be.DeleteSubtask(ctx, caller, vars["id"], vars["subtaskId"]); err != nil {
		renderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
