package handler

import (
	"log/slog"
	"net/http"

	"github.com/morkath/clanhall/internal/roster"
	"github.com/morkath/clanhall/internal/store"
	ws "github.com/morkath/clanhall/internal/websocket"
)

// maxImportBytes bounds roster CSV uploads. Even the largest clans fit
// comfortably under a megabyte.
const maxImportBytes = 1 << 20

// ImportHandler handles bulk roster imports from CSV exports.
type ImportHandler struct {
	members *store.MemberStore
	hub     *ws.Hub
	logger  *slog.Logger
}

func NewImportHandler(members *store.MemberStore, hub *ws.Hub, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{members: members, hub: hub, logger: logger}
}

// Import serves POST /api/members/import. The body is a raw CSV roster
// export; accepted rows are upserted by name so re-importing the same
// file is safe.
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	result, err := roster.Parse(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var stored int
	for _, row := range result.Accepted() {
		if _, err := h.members.Upsert(row.Name, row.Rank, row.Class, row.JoinedAt); err != nil {
			h.logger.Error("upsert imported member", "name", row.Name, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to store imported members"})
			return
		}
		stored++
	}

	h.logger.Info("roster import",
		"imported", result.Imported,
		"corrected", result.Corrected,
		"rejected", result.Rejected)

	if stored > 0 {
		h.hub.Broadcast(ws.NewMessage("member", "imported", 0, map[string]any{"count": stored}))
	}
	writeJSON(w, http.StatusOK, result)
}
