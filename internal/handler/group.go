package handler

import (
	"net/http"

	"party-score-tracker/internal/model"
	"party-score-tracker/internal/service"
)

// GroupHandler handles group and member administration endpoints.
type GroupHandler struct {
	groups *service.GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groups *service.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

type createGroupRequest struct {
	Name    string `json:"name"`
	RuleSet string `json:"rule_set"`
}

// CreateGroup handles POST /groups.
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	group, err := h.groups.CreateGroup(r.Context(), req.Name, model.RuleSet(req.RuleSet))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

// GetGroup handles GET /groups/{groupID}.
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := idParam(r, "groupID")
	if err != nil {
		badRequest(w, "invalid group id")
		return
	}

	group, err := h.groups.GetGroup(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

type addMemberRequest struct {
	Kind        string `json:"kind"`
	DisplayName string `json:"display_name"`
	AccountID   *int64 `json:"account_id"`
}

// AddMember handles POST /groups/{groupID}/members.
func (h *GroupHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	groupID, err := idParam(r, "groupID")
	if err != nil {
		badRequest(w, "invalid group id")
		return
	}

	var req addMemberRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	member, err := h.groups.AddMember(r.Context(), groupID, model.MemberKind(req.Kind), req.DisplayName, req.AccountID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

// RemoveMember handles DELETE /groups/{groupID}/members/{memberID}.
func (h *GroupHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	groupID, err := idParam(r, "groupID")
	if err != nil {
		badRequest(w, "invalid group id")
		return
	}
	memberID, err := idParam(r, "memberID")
	if err != nil {
		badRequest(w, "invalid member id")
		return
	}

	if err := h.groups.RemoveMember(r.Context(), groupID, memberID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMembers handles GET /groups/{groupID}/members.
func (h *GroupHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	groupID, err := idParam(r, "groupID")
	if err != nil {
		badRequest(w, "invalid group id")
		return
	}

	members, err := h.groups.ListMembers(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}
