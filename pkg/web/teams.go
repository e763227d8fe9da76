package web

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/taskflow-dev/taskflow/pkg/backend"
	"github.com/taskflow-dev/taskflow/pkg/proto"
)

func listTeams(w http.ResponseWriter, r *http.Request, caller proto.User) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	teams, err := be.ListTeams(ctx, caller)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, teams)
}

func createTeam(w http.ResponseWriter, r *http.Request, caller proto.User) {
	var req createTeamRequest
	if err := decodeJSON(w, r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	ctx := r.Context()
	be := backend.FromContext(ctx)
	team, err := be.CreateTeam(ctx, caller, req.Name)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusCreated, team)
}

func listMembers(w http.ResponseWriter, r *http.Request, caller proto.User) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	members, err := be.ListMembers(ctx, caller, mux.Vars(r)["teamId"])
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, members)
}

func inviteMember(w http.ResponseWriter, r *http.Request, caller proto.User) {
	var req inviteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	ctx := r.Context()
	be := backend.FromContext(ctx)
	res, err := be.Invite(ctx, caller, mux.Vars(r)["teamId"], req.Email, req.role)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusCreated, res)
}

func listInvitations(w http.ResponseWriter, r *http.Request, caller proto.User) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	invs, err := be.ListInvitations(ctx, caller, mux.Vars(r)["teamId"])
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, invs)
}
