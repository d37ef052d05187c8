package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/af-corp/model-catalog/internal/filter"
	"github.com/af-corp/model-catalog/internal/httputil"
	"github.com/af-corp/model-catalog/internal/types"
)

const maxBodyBytes = 1 << 20

const unavailableMessage = "Model catalog is not loaded; run `catalog build` or check the backing store"

// Recommendations handles POST /v1/recommendations.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	reqID := w.Header().Get("X-Request-ID")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		httputil.WriteBadRequestError(w, reqID, "Failed to read request body")
		return
	}
	defer r.Body.Close()

	var uc types.UseCase
	if err := json.Unmarshal(body, &uc); err != nil {
		httputil.WriteBadRequestError(w, reqID, "Invalid JSON: "+err.Error())
		return
	}
	req := uc.Requirements.WithDefaults()

	rec, ok := h.recommend(r.Context(), req)
	if !ok {
		httputil.WriteCatalogUnavailableError(w, reqID, unavailableMessage)
		return
	}

	slog.Info("recommendation served",
		"request_id", reqID,
		"use_case", uc.Name,
		"deployment", req.Deployment.Type,
		"latency", req.Latency.Type,
		"total", rec.Summary.TotalMatches,
		"perfect", rec.Summary.PerfectMatches,
	)
	httputil.WriteJSON(w, reqID, http.StatusOK, rec)
}

type modelList struct {
	Count    int                 `json:"count"`
	LoadedAt time.Time           `json:"loaded_at"`
	Models   []types.ModelRecord `json:"models"`
}

// ListModels handles GET /v1/models. ?deployment= narrows by deployment type.
func (h *Handler) ListModels(w http.ResponseWriter, r *http.Request) {
	reqID := w.Header().Get("X-Request-ID")

	records, ok := h.holder.Records()
	if !ok {
		httputil.WriteCatalogUnavailableError(w, reqID, unavailableMessage)
		return
	}
	if d := strings.TrimSpace(r.URL.Query().Get("deployment")); d != "" {
		records = filter.ByDeployment(records, d)
	}
	if records == nil {
		records = []types.ModelRecord{}
	}
	httputil.WriteJSON(w, reqID, http.StatusOK, modelList{
		Count:    len(records),
		LoadedAt: h.holder.LoadedAt(),
		Models:   records,
	})
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Records int    `json:"records"`
}

// Health handles GET /healthz. It reports 503 until a record set is loaded.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	records, ok := h.holder.Records()
	if !ok {
		httputil.WriteJSON(w, "", http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Version: h.version})
		return
	}
	httputil.WriteJSON(w, "", http.StatusOK, healthResponse{Status: "healthy", Version: h.version, Records: len(records)})
}
