package web

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
)

// APIController registers the JSON API routes. Every route needs a session;
// team and task routes additionally check membership.
func APIController(_ context.Context, r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/me", withUser(getMe)).Methods(http.MethodGet)
	api.HandleFunc("/users", withUser(listUsers)).Methods(http.MethodGet)

	// Teams
	api.HandleFunc("/teams", withUser(listTeams)).Methods(http.MethodGet)
	api.HandleFunc("/teams", withUser(createTeam)).Methods(http.MethodPost)
	api.HandleFunc("/teams/{teamId}/members", withUser(listMembers)).Methods(http.MethodGet)
	api.HandleFunc("/teams/{teamId}/invite", withUser(inviteMember)).Methods(http.MethodPost)
	api.HandleFunc("/teams/{teamId}/invitations", withUser(listInvitations)).Methods(http.MethodGet)

	// Tasks
	api.HandleFunc("/tasks", withUser(listTasks)).Methods(http.MethodGet)
	api.HandleFunc("/tasks", withUser(createTask)).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id}", withUser(getTask)).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id}", withUser(updateTask)).Methods(http.MethodPatch)
	api.HandleFunc("/tasks/{id}", withUser(deleteTask)).Methods(http.MethodDelete)
	api.HandleFunc("/tasks/{id}/history", withUser(getHistory)).Methods(http.MethodGet)

	// Comments
	api.HandleFunc("/tasks/{id}/comments", withUser(listComments)).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id}/comments", withUser(createComment)).Methods(http.MethodPost)

	// Attachments
	api.HandleFunc("/tasks/{id}/attachments", withUser(listAttachments)).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id}/attachments", withUser(registerAttachment)).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id}/attachments/upload", withUser(uploadAttachment)).Methods(http.MethodPost)

	// Subtasks
	api.HandleFunc("/tasks/{id}/subtasks", withUser(listSubtasks)).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id}/subtasks", withUser(createSubtask)).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id}/subtasks/{subtaskId}", withUser(updateSubtask)).Methods(http.MethodPatch)
	api.HandleFunc("/tasks/{id}/subtasks/{subtaskId}", withUser(deleteSubtask)).Methods(http.MethodDelete)

	// Stats
	api.HandleFunc("/stats/activity", withUser(getActivity)).Methods(http.MethodGet)
}
