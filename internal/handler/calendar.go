package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/morkath/clanhall/internal/schedule"
	"github.com/morkath/clanhall/internal/store"
)

// defaultHorizon is how far past "now" the overview expands recurring
// events. The month view instead expands exactly to its own grid edge.
const defaultHorizon = 6 * 30 * 24 * time.Hour

// CalendarHandler serves the computed calendar views. It owns the only
// clock in the read path: the schedule package itself never looks at the
// time, so every view can also be requested for an explicit instant.
type CalendarHandler struct {
	events *store.EventStore
	logger *slog.Logger
	now    func() time.Time
}

func NewCalendarHandler(events *store.EventStore, logger *slog.Logger) *CalendarHandler {
	return &CalendarHandler{events: events, logger: logger, now: time.Now}
}

type calendarCell struct {
	Date        time.Time        `json:"date"`
	Key         string           `json:"key"`
	InMonth     bool             `json:"in_month"`
	Today       bool             `json:"today"`
	Occurrences []cellOccurrence `json:"occurrences"`

	// BannerOrder lists display keys of bannered occurrences in their
	// left-to-right placement order when the day carries a banner pair.
	BannerOrder []string `json:"banner_order,omitempty"`
}

type cellOccurrence struct {
	schedule.Occurrence
	TimeLabel schedule.TimeLabel `json:"time_label"`
}

type monthResponse struct {
	Anchor string         `json:"anchor"`
	Today  string         `json:"today"`
	Days   []calendarCell `json:"days"`
}

// Month serves GET /api/calendar/month?anchor=YYYY-MM&today=YYYY-MM-DD.
// Both parameters are optional and default to the current instant; tests
// and prefetching clients pass them explicitly.
func (h *CalendarHandler) Month(w http.ResponseWriter, r *http.Request) {
	now := h.now()

	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, schedule.RefZone)
	if s := r.URL.Query().Get("anchor"); s != "" {
		parsed, err := time.ParseInLocation("2006-01", s, schedule.RefZone)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "anchor must be YYYY-MM"})
			return
		}
		anchor = parsed
	}

	todayKey := schedule.DayKey(now)
	if s := r.URL.Query().Get("today"); s != "" {
		if _, ok := schedule.ParseDayKey(s); !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "today must be YYYY-MM-DD"})
			return
		}
		todayKey = s
	}

	// Expanding to the grid's far edge is exactly enough for every cell.
	definitions, err := h.events.ListRelevant(schedule.GridStart(anchor))
	if err != nil {
		h.logger.Error("list events for month view", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load events"})
		return
	}

	occs := schedule.Expand(definitions, schedule.GridEnd(anchor))
	days := schedule.BuildMonth(anchor, todayKey, schedule.GroupByDay(occs))

	cells := make([]calendarCell, 0, len(days))
	for _, day := range days {
		cells = append(cells, buildCell(day))
	}

	writeJSON(w, http.StatusOK, monthResponse{
		Anchor: anchor.Format("2006-01"),
		Today:  todayKey,
		Days:   cells,
	})
}

func buildCell(day schedule.CalendarDay) calendarCell {
	cell := calendarCell{
		Date:        day.Date,
		Key:         day.Key,
		InMonth:     day.InMonth,
		Today:       day.Today,
		Occurrences: make([]cellOccurrence, 0, len(day.Occurrences)),
	}

	var bannered []schedule.Occurrence
	for _, occ := range day.Occurrences {
		cell.Occurrences = append(cell.Occurrences, cellOccurrence{
			Occurrence: occ,
			TimeLabel:  schedule.CellTimeLabel(occ, day.Key),
		})
		if occ.BannerURL != nil {
			bannered = append(bannered, occ)
		}
	}

	// Exactly two banners on one day get a stable left/right placement.
	if len(bannered) == 2 {
		for _, occ := range schedule.SortBannerPair(bannered) {
			cell.BannerOrder = append(cell.BannerOrder, occ.DisplayKey)
		}
	}
	return cell
}

type overviewResponse struct {
	Upcoming []schedule.Occurrence `json:"upcoming"`
	Past     []schedule.Occurrence `json:"past"`
}

// Overview serves GET /api/events/overview?now=RFC3339: the upcoming list
// (nearest instance per event, pinned events first) and the past list
// (stored definitions only, most recently ended first).
func (h *CalendarHandler) Overview(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	if s := r.URL.Query().Get("now"); s != "" {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "now must be RFC3339 format"})
			return
		}
		now = parsed
	}

	definitions, err := h.events.List()
	if err != nil {
		h.logger.Error("list events for overview", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load events"})
		return
	}

	classified := schedule.Classify(schedule.Expand(definitions, now.Add(defaultHorizon)), now)

	resp := overviewResponse{
		Upcoming: schedule.SortPinnedFirst(classified.Upcoming),
		Past:     classified.Past,
	}
	if resp.Upcoming == nil {
		resp.Upcoming = []schedule.Occurrence{}
	}
	if resp.Past == nil {
		resp.Past = []schedule.Occurrence{}
	}
	writeJSON(w, http.StatusOK, resp)
}
