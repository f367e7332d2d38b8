// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package handler exposes the client insights REST API.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/AccelByte/client-insights/pkg/common"
	"github.com/AccelByte/client-insights/pkg/metrics"
	"github.com/AccelByte/client-insights/pkg/pipeline"
	"github.com/AccelByte/client-insights/pkg/scoring"
	"github.com/AccelByte/client-insights/pkg/service"
	"github.com/AccelByte/client-insights/pkg/summary"
)

// defaultSilentDays is the silent-client window when ?days is omitted.
const defaultSilentDays = 30

// InsightsHandler handles the client insights endpoints.
type InsightsHandler struct {
	scores  service.ScoreStore
	data    service.ClientDataStore
	manager *pipeline.Manager
	now     func() time.Time
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(scores service.ScoreStore, data service.ClientDataStore, manager *pipeline.Manager) *InsightsHandler {
	return &InsightsHandler{
		scores:  scores,
		data:    data,
		manager: manager,
		now:     time.Now,
	}
}

// SetClock overrides the evaluation clock. This is mostly useful for testing.
func (h *InsightsHandler) SetClock(now func() time.Time) {
	h.now = now
}

// GetEngagement handles GET /v1/clients/{clientId}/engagement
func (h *InsightsHandler) GetEngagement(w http.ResponseWriter, r *http.Request) {
	scope := common.GetScopeFromContext(r.Context(), "InsightsHandler.GetEngagement")
	defer scope.Finish()

	clientID := mux.Vars(r)["clientId"]
	scope.AddBaggage("clientId", clientID)

	score, err := h.scores.GetEngagementScore(scope.Ctx, clientID)
	if err != nil {
		scope.TraceError(err)
		writeError(w, http.StatusBadGateway, "failed to load engagement score")
		return
	}
	if score == nil {
		writeError(w, http.StatusNotFound, "client has not been scored yet")
		return
	}

	writeJSON(w, http.StatusOK, score)
}

// GetChurn handles GET /v1/clients/{clientId}/churn
func (h *InsightsHandler) GetChurn(w http.ResponseWriter, r *http.Request) {
	scope := common.GetScopeFromContext(r.Context(), "InsightsHandler.GetChurn")
	defer scope.Finish()

	clientID := mux.Vars(r)["clientId"]
	scope.AddBaggage("clientId", clientID)

	prediction, err := h.scores.GetChurnPrediction(scope.Ctx, clientID)
	if err != nil {
		scope.TraceError(err)
		writeError(w, http.StatusBadGateway, "failed to load churn prediction")
		return
	}
	if prediction == nil {
		writeError(w, http.StatusNotFound, "client has not been scored yet")
		return
	}

	writeJSON(w, http.StatusOK, prediction)
}

// recalculateResponse bundles both freshly computed records.
type recalculateResponse struct {
	Engagement *scoring.EngagementScore `json:"engagement"`
	Churn      *scoring.ChurnPrediction `json:"churn"`
}

// Recalculate handles POST /v1/clients/{clientId}/insights/recalculate
func (h *InsightsHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	scope := common.GetScopeFromContext(r.Context(), "InsightsHandler.Recalculate")
	defer scope.Finish()

	clientID := mux.Vars(r)["clientId"]
	scope.AddBaggage("clientId", clientID)

	engagement, churn, err := h.manager.RecalculateClient(scope.Ctx, clientID)
	if err != nil {
		scope.TraceError(err)
		writeError(w, http.StatusBadGateway, "failed to recalculate client insights")
		return
	}

	writeJSON(w, http.StatusOK, recalculateResponse{Engagement: engagement, Churn: churn})
}

// RecalculateAll handles POST /v1/insights/recalculate
func (h *InsightsHandler) RecalculateAll(w http.ResponseWriter, r *http.Request) {
	scope := common.GetScopeFromContext(r.Context(), "InsightsHandler.RecalculateAll")
	defer scope.Finish()

	result, err := h.manager.RecalculateAll(scope.Ctx)
	if err != nil {
		scope.TraceError(err)
		writeError(w, http.StatusBadGateway, "failed to run batch recalculation")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// summarizeRequest is the request body for meeting note summarization.
type summarizeRequest struct {
	Notes string `json:"notes"`
}

// Summarize handles POST /v1/meetings/summarize
func (h *InsightsHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	scope := common.GetScopeFromContext(r.Context(), "InsightsHandler.Summarize")
	defer scope.Finish()

	var req summarizeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	metrics.SummarizeRequestsTotal.Inc()
	result := summary.Summarize(req.Notes, h.now())

	writeJSON(w, http.StatusOK, result)
}

// SilentClients handles GET /v1/advisors/{advisorId}/silent-clients?days=N
func (h *InsightsHandler) SilentClients(w http.ResponseWriter, r *http.Request) {
	scope := common.GetScopeFromContext(r.Context(), "InsightsHandler.SilentClients")
	defer scope.Finish()

	advisorID := mux.Vars(r)["advisorId"]
	scope.AddBaggage("advisorId", advisorID)

	days := defaultSilentDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	now := h.now().UTC()
	clients, err := h.data.ListSilentClients(scope.Ctx, advisorID, now.AddDate(0, 0, -days), now)
	if err != nil {
		scope.TraceError(err)
		writeError(w, http.StatusBadGateway, "failed to list silent clients")
		return
	}
	if clients == nil {
		clients = []service.SilentClient{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"advisor_id":     advisorID,
		"days":           days,
		"silent_clients": clients,
	})
}

// Health handles GET /health
func (h *InsightsHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
