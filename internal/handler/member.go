package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/morkath/clanhall/internal/model"
	"github.com/morkath/clanhall/internal/store"
	ws "github.com/morkath/clanhall/internal/websocket"
)

// MemberHandler handles HTTP requests for roster member operations.
type MemberHandler struct {
	members *store.MemberStore
	hub     *ws.Hub
	logger  *slog.Logger
}

func NewMemberHandler(members *store.MemberStore, hub *ws.Hub, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{members: members, hub: hub, logger: logger}
}

func parseIDParam(r *http.Request) (int64, error) {
	idStr := r.PathValue("id")
	return strconv.ParseInt(idStr, 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type memberRequest struct {
	Name     string `json:"name"`
	Rank     string `json:"rank"`
	Class    string `json:"class"`
	JoinedAt string `json:"joined_at"`
	Notes    string `json:"notes"`
}

func (req *memberRequest) toModel() (model.Member, error) {
	m := model.Member{
		Name:  strings.TrimSpace(req.Name),
		Rank:  strings.TrimSpace(req.Rank),
		Class: strings.TrimSpace(req.Class),
		Notes: strings.TrimSpace(req.Notes),
	}
	if m.Name == "" {
		return m, errValidation("name is required")
	}
	if m.Rank == "" {
		m.Rank = "Member"
	}
	if req.JoinedAt != "" {
		joined, err := time.Parse("2006-01-02", req.JoinedAt)
		if err != nil {
			return m, errValidation("joined_at must be YYYY-MM-DD")
		}
		m.JoinedAt = &joined
	}
	return m, nil
}

type errValidation string

func (e errValidation) Error() string { return string(e) }

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	member, err := req.toModel()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	created, err := h.members.Create(member.Name, member.Rank, member.Class, member.JoinedAt, member.Notes)
	if err != nil {
		h.logger.Error("create member", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create member"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("member", "created", created.ID, nil))
	writeJSON(w, http.StatusCreated, created)
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.List()
	if err != nil {
		h.logger.Error("list members", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list members"})
		return
	}
	if members == nil {
		members = []model.Member{}
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid member ID"})
		return
	}

	member, err := h.members.GetByID(id)
	if err != nil {
		h.logger.Error("get member", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get member"})
		return
	}
	if member == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "member not found"})
		return
	}
	writeJSON(w, http.StatusOK, member)
}

func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid member ID"})
		return
	}

	existing, err := h.members.GetByID(id)
	if err != nil {
		h.logger.Error("get member for update", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get member"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "member not found"})
		return
	}

	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	member, err := req.toModel()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	updated, err := h.members.Update(id, member.Name, member.Rank, member.Class, member.JoinedAt, member.Notes)
	if err != nil {
		h.logger.Error("update member", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update member"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("member", "updated", id, nil))
	writeJSON(w, http.StatusOK, updated)
}

func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid member ID"})
		return
	}

	if err := h.members.Delete(id); err != nil {
		h.logger.Error("delete member", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete member"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("member", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
