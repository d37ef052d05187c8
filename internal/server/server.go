// Package server exposes the catalog over HTTP: an HTML form, a JSON
// recommendation API and the model listing.
package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/af-corp/model-catalog/internal/catalog"
	"github.com/af-corp/model-catalog/internal/filter"
	"github.com/af-corp/model-catalog/internal/ratelimit"
	"github.com/af-corp/model-catalog/internal/telemetry"
	"github.com/af-corp/model-catalog/internal/types"
)

// Handler holds dependencies for the catalog HTTP handlers.
type Handler struct {
	holder   *catalog.Holder
	engine   *filter.Engine
	metrics  *telemetry.Metrics
	useCases func() []types.UseCase
	version  string
}

func NewHandler(holder *catalog.Holder, engine *filter.Engine, metrics *telemetry.Metrics, useCases func() []types.UseCase, version string) *Handler {
	if engine == nil {
		engine = filter.NewEngine()
	}
	if useCases == nil {
		useCases = func() []types.UseCase { return nil }
	}
	return &Handler{
		holder:   holder,
		engine:   engine,
		metrics:  metrics,
		useCases: useCases,
		version:  version,
	}
}

// Options configures the optional parts of the router.
type Options struct {
	Limiter *ratelimit.Limiter // nil disables rate limiting
	RPM     int
	Metrics http.Handler // served at /metrics when set

	// Admin authenticates the /admin routes; they are only mounted when
	// both Admin and Reload are set.
	Admin  func(http.Handler) http.Handler
	Reload func(ctx context.Context) error
}

// Routes builds the chi router.
func (h *Handler) Routes(opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(h.instrument)

	r.Get("/healthz", h.Health)
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics)
	}

	r.Group(func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(ratelimit.Middleware(opts.Limiter, opts.RPM, h.metrics))
		}
		r.Get("/", h.Index)
		r.Post("/", h.Submit)
		r.Post("/v1/recommendations", h.Recommendations)
		r.Get("/v1/models", h.ListModels)
	})

	if opts.Admin != nil && opts.Reload != nil {
		r.Route("/admin", func(r chi.Router) {
			r.Use(opts.Admin)
			r.Post("/reload", h.reloadHandler(opts.Reload))
		})
	}
	return r
}

// recommend runs the engine against the current record set and records
// metrics. ok is false when no record set was ever loaded.
func (h *Handler) recommend(ctx context.Context, req types.RequirementSpec) (*types.Recommendation, bool) {
	records, loaded := h.holder.Records()
	if !loaded {
		return nil, false
	}
	rec, stages := h.engine.Recommend(ctx, records, req)
	if h.metrics != nil {
		for _, s := range stages {
			h.metrics.RecordStage(s.Stage, s.In, s.Out)
		}
		h.metrics.RecordMatches(rec.Summary.PerfectMatches, rec.Summary.GoodMatches, rec.Summary.PartialMatches)
	}
	return rec, true
}

func (h *Handler) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		h.metrics.RecordRequest(telemetry.RequestLabels{
			Route:      route,
			Status:     strconv.Itoa(status),
			DurationMs: float64(time.Since(start).Microseconds()) / 1000,
		})
	})
}

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestID propagates X-Request-ID or generates one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = generateRequestID()
		}
		w.Header().Set("X-Request-ID", reqID)
		ctx := context.WithValue(r.Context(), requestIDKey, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the id set by RequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func generateRequestID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return fmt.Sprintf("req_%d_%s", time.Now().UnixMilli(), hex.EncodeToString(b))
}
