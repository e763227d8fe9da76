package web

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/taskflow-dev/taskflow/pkg/backend"
	"github.com/taskflow-dev/taskflow/pkg/proto"
)

func listTasks(w http.ResponseWriter, r *http.Request, caller proto.User) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	tasks, err := be.ListTasks(ctx, caller, r.URL.Query().Get("teamId"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, tasks)
}

func createTask(w http.ResponseWriter, r *http.Request, caller proto.User) {
	var req createTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	ctx := r.Context()
	be := backend.FromContext(ctx)
	task, err := be.CreateTask(ctx, caller, req.options())
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusCreated, task)
}

func getTask(w http.ResponseWriter, r *http.Request, caller proto.User) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	task, err := be.GetTask(ctx, caller, mux.Vars(r)["id"])
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, task)
}

func updateTask(w http.ResponseWriter, r *http.Request, caller proto.User) {
	var req updateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	ctx := r.Context()
	be := backend.FromContext(ctx)
	task, err := be.UpdateTask(ctx, caller, mux.Vars(r)["id"], req.TaskPatch)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, task)
}

func deleteTask(w http.ResponseWriter, r *http.Request, caller proto.User) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	if err := be.DeleteTask(ctx, caller, mux.Vars(r)["id"]); err != nil {
		renderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func getHistory(w http.ResponseWriter, r *http.Request, caller proto.User) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	versions, err := be.History(ctx, caller, mux.Vars(r)["id"])
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, versions)
}

func listComments(w http.ResponseWriter, r *http.Request, caller proto.User) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	comments, err := be.ListComments(ctx, caller, mux.Vars(r)["id"])
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, comments)
}

func createComment(w http.ResponseWriter, r *http.Request, caller proto.User) {
	var req commentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	ctx := r.Context()
	be := backend.FromContext(ctx)
	comment, err := be.AddComment(ctx, caller, mux.Vars(r)["id"], req.Content)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusCreated, comment)
}
