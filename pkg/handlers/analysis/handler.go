package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hoko-ai/analytics/pkg/adapters"
	"github.com/hoko-ai/analytics/pkg/models/api"
	"github.com/hoko-ai/analytics/pkg/models/domain"
	"github.com/hoko-ai/analytics/pkg/services/registry"
	"github.com/rs/zerolog"
)

const dateLayout = "2006-01-02"

// Service is the pipeline entry point the handler delegates to.
type Service interface {
	Run(ctx context.Context, req domain.AnalysisRequest) (domain.Summary, error)
}

type Handler struct {
	service  Service
	registry registry.Registry
}

func NewHandler(service Service, reg registry.Registry) *Handler {
	return &Handler{service: service, registry: reg}
}

// RunAnalysis handles POST /analyzes: loads the requested platforms,
// runs the pipeline and returns the summary report.
func (h *Handler) RunAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var body api.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if body.ClientID == "" || len(body.Platforms) == 0 {
		http.Error(w, "client_id and platforms are required", http.StatusUnprocessableEntity)
		return
	}

	req := domain.AnalysisRequest{ClientID: body.ClientID, Platforms: body.Platforms}
	var err error
	if req.From, err = parseDate(body.StartDate); err != nil {
		http.Error(w, fmt.Sprintf("invalid start_date: %v", err), http.StatusBadRequest)
		return
	}
	if req.To, err = parseDate(body.EndDate); err != nil {
		http.Error(w, fmt.Sprintf("invalid end_date: %v", err), http.StatusBadRequest)
		return
	}

	summary, err := h.service.Run(ctx, req)
	if err != nil {
		if errors.Is(err, registry.ErrUnknownPlatform) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Error().
			Err(err).
			Str("client", body.ClientID).
			Msg("analysis failed")
		http.Error(w, "analysis failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(adapters.Summary(summary)); err != nil {
		logger.Error().
			Err(err).
			Str("client", body.ClientID).
			Msg("failed to encode summary")
	}
}

// ListPlatforms handles GET /platforms.
func (h *Handler) ListPlatforms(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	response := make([]api.Platform, 0)
	for _, p := range h.registry.Platforms() {
		response = append(response, api.Platform{Name: p})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode platforms")
	}
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("expected %s", dateLayout)
	}
	return &t, nil
}
