package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/morkath/clanhall/internal/auth"
	"github.com/morkath/clanhall/internal/model"
	"github.com/morkath/clanhall/internal/schedule"
	"github.com/morkath/clanhall/internal/store"
	ws "github.com/morkath/clanhall/internal/websocket"
)

type EventHandler struct {
	events *store.EventStore
	hub    *ws.Hub
	logger *slog.Logger
}

func NewEventHandler(events *store.EventStore, hub *ws.Hub, logger *slog.Logger) *EventHandler {
	return &EventHandler{events: events, hub: hub, logger: logger}
}

type eventRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Location      string  `json:"location"`
	StartsAt      string  `json:"starts_at"`
	EndsAt        string  `json:"ends_at"`
	Organizer     string  `json:"organizer"`
	Recurrence    string  `json:"recurrence"`
	RecurrenceEnd *string `json:"recurrence_end"` // YYYY-MM-DD
	BannerURL     *string `json:"banner_url"`
	Pinned        bool    `json:"pinned"`
	ForumPostID   *int64  `json:"forum_post_id"`
}

// parseAndValidate decodes the request body into a model.Event. The author
// is taken from the session, not the payload.
func (h *EventHandler) parseAndValidate(r *http.Request, w http.ResponseWriter) (*model.Event, bool) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return nil, false
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return nil, false
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "starts_at must be RFC3339 format"})
		return nil, false
	}

	// An omitted end means open-ended: the event carries no duration.
	endsAt := startsAt
	if req.EndsAt != "" {
		endsAt, err = time.Parse(time.RFC3339, req.EndsAt)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "ends_at must be RFC3339 format"})
			return nil, false
		}
	}
	if endsAt.Before(startsAt) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "ends_at must not precede starts_at"})
		return nil, false
	}

	if req.Recurrence == "" {
		req.Recurrence = string(model.RecurrenceNone)
	}
	if !model.ValidRecurrence(req.Recurrence) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown recurrence type"})
		return nil, false
	}

	var recurrenceEnd *time.Time
	if req.RecurrenceEnd != nil && *req.RecurrenceEnd != "" {
		day, ok := schedule.ParseDayKey(*req.RecurrenceEnd)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "recurrence_end must be a valid YYYY-MM-DD date"})
			return nil, false
		}
		recurrenceEnd = &day
	}

	return &model.Event{
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		StartsAt:      startsAt,
		EndsAt:        endsAt,
		Organizer:     req.Organizer,
		Recurrence:    model.RecurrenceType(req.Recurrence),
		RecurrenceEnd: recurrenceEnd,
		BannerURL:     req.BannerURL,
		Pinned:        req.Pinned,
		ForumPostID:   req.ForumPostID,
		AuthorName:    auth.UserName(r.Context()),
	}, true
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	ev, ok := h.parseAndValidate(r, w)
	if !ok {
		return
	}

	created, err := h.events.Create(*ev)
	if err != nil {
		h.logger.Error("create event", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create event"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("event", "created", created.ID, nil))
	writeJSON(w, http.StatusCreated, created)
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List()
	if err != nil {
		h.logger.Error("list events", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list events"})
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	event, err := h.events.GetByID(id)
	if err != nil {
		h.logger.Error("get event", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get event"})
		return
	}
	if event == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "event not found"})
		return
	}

	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.events.GetByID(id)
	if err != nil {
		h.logger.Error("get event", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get event"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "event not found"})
		return
	}

	ev, ok := h.parseAndValidate(r, w)
	if !ok {
		return
	}
	ev.AuthorName = existing.AuthorName // authorship does not transfer on edit

	updated, err := h.events.Update(id, *ev)
	if err != nil {
		h.logger.Error("update event", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update event"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("event", "updated", id, nil))
	writeJSON(w, http.StatusOK, updated)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.events.GetByID(id)
	if err != nil {
		h.logger.Error("get event", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get event"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "event not found"})
		return
	}

	if err := h.events.Delete(id); err != nil {
		h.logger.Error("delete event", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete event"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("event", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
