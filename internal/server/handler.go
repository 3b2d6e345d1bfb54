// Package server exposes the catalog and the classification engine over
// HTTP.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/abhisek/ctdguide/internal/catalog"
	"github.com/abhisek/ctdguide/internal/classify"
	"github.com/abhisek/ctdguide/internal/metrics"
	"github.com/abhisek/ctdguide/internal/report"
	"github.com/abhisek/ctdguide/internal/selection"
)

// Handler wires the API endpoints to the catalog and classifier.
type Handler struct {
	cat        *catalog.Catalog
	classifier classify.Classifier
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// New constructs a handler over cat. metrics may be nil.
func New(cat *catalog.Catalog, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		cat:        cat,
		classifier: classify.WithLogging(classify.New(cat), logger),
		logger:     logger,
		metrics:    m,
	}
}

// Register mounts the API endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.HandleHealth)
	r.Get("/v1/sections", h.HandleSections)
	r.Get("/v1/topics/{id}", h.HandleTopic)
	r.Post("/v1/classify", h.HandleClassify)
}

// Router returns a chi router with middleware, the API and /metrics.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.observe)

	h.Register(r)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	return r
}

// HandleHealth handles GET /healthz.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", CatalogVersion: h.cat.Version()})
}

// HandleSections handles GET /v1/sections.
func (h *Handler) HandleSections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, FromSections(h.cat.Sections()))
}

// HandleTopic handles GET /v1/topics/{id}.
func (h *Handler) HandleTopic(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	topic, err := h.cat.ByID(id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	rules, err := h.cat.RulesFor(id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, TopicResponse{Topic: topic, Section: topic.Section(), Rules: rules})
}

// HandleClassify handles POST /v1/classify.
func (h *Handler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	req, err := decodeJSON[ClassifyRequest](w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, r, err)
		return
	}

	topic, err := h.cat.ByID(req.Topic)
	if err != nil {
		h.metrics.IncrementClassification("unknown", "error")
		h.writeError(w, r, err)
		return
	}

	store := selection.New(topic)
	if err := store.ApplyMap(req.ParsedAnswers()); err != nil {
		h.metrics.IncrementClassification(topic.ID, "error")
		h.writeError(w, r, err)
		return
	}

	outcomes, err := h.classifier.Classify(topic.ID, store)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := ClassifyResponse{
		Topic:      topic.ID,
		Outcomes:   report.New(h.cat, nil).Outcomes(outcomes),
		OutOfScope: len(outcomes) == 0,
		Missing:    store.Missing(),
		Answers:    store.Snapshot(),
	}
	if resp.Missing == nil {
		resp.Missing = []string{}
	}
	if resp.OutOfScope {
		resp.Fallback = h.cat.Fallback()
		h.metrics.IncrementClassification(topic.ID, "out_of_scope")
	} else {
		h.metrics.IncrementClassification(topic.ID, "matched")
		for _, o := range outcomes {
			h.metrics.IncrementOutcome(o.Tier)
		}
	}
	if req.Explain {
		tr, err := h.classifier.Explain(topic.ID, store)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		resp.Trace = &tr
	}

	h.logger.InfoContext(ctx, "classification served",
		"request_id", middleware.GetReqID(ctx),
		"topic", topic.ID,
		"matches", len(outcomes),
		"missing", len(resp.Missing),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	writeJSON(w, http.StatusOK, resp)
}

// writeError maps domain errors to HTTP statuses and logs server faults.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		uie *selection.UnknownIDError
		iae *selection.InvalidAnswerError
		re  *requestError
	)
	switch {
	case errors.Is(err, catalog.ErrUnknownTopic):
		writeErrorBody(w, http.StatusNotFound, "not_found", err.Error())
	case errors.As(err, &re):
		writeErrorBody(w, http.StatusBadRequest, re.code, re.msg)
	case errors.As(err, &uie), errors.As(err, &iae), errors.Is(err, selection.ErrForced):
		writeErrorBody(w, http.StatusBadRequest, "invalid_answer", err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			"request_id", middleware.GetReqID(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
		writeErrorBody(w, http.StatusInternalServerError, "internal_error", "")
	}
}
