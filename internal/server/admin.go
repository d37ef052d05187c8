package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/af-corp/model-catalog/internal/auth"
	"github.com/af-corp/model-catalog/internal/httputil"
)

type reloadResponse struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
}

// reloadHandler handles POST /admin/reload. A failed reload keeps serving
// the previous record set and answers 503.
func (h *Handler) reloadHandler(reload func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := RequestIDFromContext(r.Context())
		who := "unknown"
		if info, ok := auth.AuthFromContext(r.Context()); ok {
			who = info.Name
		}

		if err := reload(r.Context()); err != nil {
			slog.Error("admin reload failed", "error", err, "key", who, "request_id", reqID)
			httputil.WriteCatalogUnavailableError(w, reqID, "Reload failed: "+err.Error())
			return
		}
		records, _ := h.holder.Records()
		slog.Info("catalog reloaded via admin api", "key", who, "records", len(records))
		httputil.WriteJSON(w, reqID, http.StatusOK, reloadResponse{Status: "reloaded", Records: len(records)})
	}
}
