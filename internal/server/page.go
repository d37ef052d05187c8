package server

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/af-corp/model-catalog/internal/httputil"
	"github.com/af-corp/model-catalog/internal/types"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"percent": func(score float64) string {
		return strconv.FormatFloat(score*100, 'f', 0, 64) + "%"
	},
	"has": func(list []string, v string) bool {
		return slices.ContainsFunc(list, func(s string) bool { return strings.EqualFold(s, v) })
	},
}).ParseFS(templateFS, "templates/index.html"))

var (
	deploymentOptions = []string{"Any", "Cloud", "On-premise", "Hybrid"}
	latencyOptions    = []string{"Any", "Real-time", "Batch", "Both"}
	inputOptions      = []string{"Text", "Image", "Video", "Speech"}
	outputOptions     = []string{"Text", "Chat", "Image", "Video", "Speech", "Embedding"}
)

type pageData struct {
	UseCases          []types.UseCase
	UseCase           string
	Description       string
	Requirements      types.RequirementSpec
	DeploymentOptions []string
	LatencyOptions    []string
	InputOptions      []string
	OutputOptions     []string
	Result            *types.Recommendation
	Buckets           []bucketView
}

type bucketView struct {
	Title   string
	Class   string
	Matches []types.Match
}

func (h *Handler) newPage() pageData {
	return pageData{
		UseCases:          h.useCases(),
		DeploymentOptions: deploymentOptions,
		LatencyOptions:    latencyOptions,
		InputOptions:      inputOptions,
		OutputOptions:     outputOptions,
		Requirements: types.RequirementSpec{
			Deployment: types.DeploymentRequirement{Type: "Any"},
			Latency:    types.LatencyRequirement{Type: "Any"},
			Modality:   types.ModalityRequirement{Input: []string{"Text"}, Output: []string{"Text"}},
		},
	}
}

// Index handles GET /.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, h.newPage())
}

// Submit handles POST / from the form. Choosing a preset use case replaces
// the form's criteria with the preset's.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	reqID := w.Header().Get("X-Request-ID")
	if err := r.ParseForm(); err != nil {
		httputil.WriteBadRequestError(w, reqID, "Invalid form: "+err.Error())
		return
	}

	page := h.newPage()
	page.UseCase = r.PostForm.Get("use_case")
	page.Description = r.PostForm.Get("description")
	page.Requirements = types.RequirementSpec{
		Deployment: types.DeploymentRequirement{Type: r.PostForm.Get("deployment")},
		Latency:    types.LatencyRequirement{Type: r.PostForm.Get("latency")},
		Modality: types.ModalityRequirement{
			Input:  r.PostForm["input_modalities"],
			Output: r.PostForm["output_modalities"],
		},
	}.WithDefaults()
	for _, uc := range page.UseCases {
		if uc.Name == page.UseCase {
			page.Requirements = uc.Requirements.WithDefaults()
			if page.Description == "" {
				page.Description = uc.Description
			}
			break
		}
	}

	rec, ok := h.recommend(r.Context(), page.Requirements)
	if !ok {
		httputil.WriteCatalogUnavailableError(w, reqID, unavailableMessage)
		return
	}
	page.Result = rec
	page.Buckets = []bucketView{
		{Title: "Perfect matches", Class: "perfect", Matches: rec.PerfectMatches},
		{Title: "Good matches", Class: "good", Matches: rec.GoodMatches},
		{Title: "Partial matches", Class: "partial", Matches: rec.PartialMatches},
	}
	h.render(w, page)
}

func (h *Handler) render(w http.ResponseWriter, page pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, page); err != nil {
		slog.Error("failed to render page", "error", err)
	}
}
