package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rehabstats/emgcore/internal/emg/session"
	"github.com/rehabstats/emgcore/internal/telemetry/tracing"
	"github.com/rehabstats/emgcore/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=sessions_test

type scoreService interface {
	Compute(ctx context.Context, req ComputeRequest) (session.Score, error)
	ComputeStored(ctx context.Context, sessionID string) (session.Score, error)
	UpdateConfig(ctx context.Context, cfg session.Config) (int, error)
	LatestScore(ctx context.Context, sessionID string) (session.Score, error)
}

type Handler struct {
	service scoreService
}

func NewHandler(service scoreService) *Handler {
	return &Handler{
		service: service,
	}
}

// HandleComputeScore scores caller-supplied channels + configuration
// synchronously, without touching stored session data.
func (h *Handler) HandleComputeScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.emg.sessions.computeScore")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	sessionID := mux.Vars(r)["id"]

	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("compute score, unmarshal json params: %s", err)
		http.Error(w, "compute score failed", http.StatusBadRequest)
		return
	}
	req.Config.SessionID = sessionID

	score, err := h.service.Compute(ctx, req)
	if err != nil {
		writeScoreError(w, "compute score", err)
		return
	}

	writeScore(w, score, http.StatusOK)
}

// HandleRecalculateScore recomputes the score from stored contractions
// and the latest stored configuration, persisting the result.
func (h *Handler) HandleRecalculateScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.emg.sessions.recalculateScore")
	defer span.End()

	sessionID := mux.Vars(r)["id"]

	score, err := h.service.ComputeStored(ctx, sessionID)
	if err != nil {
		writeScoreError(w, "recalculate score", err)
		return
	}

	writeScore(w, score, http.StatusOK)
}

// HandleGetScore returns the latest applied score of a session.
func (h *Handler) HandleGetScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.emg.sessions.getScore")
	defer span.End()

	sessionID := mux.Vars(r)["id"]

	score, err := h.service.LatestScore(ctx, sessionID)
	if err != nil {
		writeScoreError(w, "get score", err)
		return
	}

	writeScore(w, score, http.StatusOK)
}

type updateConfigResponse struct {
	SessionID string `json:"sessionId"`
	Revision  int    `json:"revision"`
}

// HandleUpdateConfig stores a new configuration revision and triggers a
// debounced recomputation. Responds 202: the new score arrives
// asynchronously.
func (h *Handler) HandleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.emg.sessions.updateConfig")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	sessionID := mux.Vars(r)["id"]

	var cfg session.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		log.Errorf("update config, unmarshal json params: %s", err)
		http.Error(w, "update config failed", http.StatusBadRequest)
		return
	}
	cfg.SessionID = sessionID

	revision, err := h.service.UpdateConfig(ctx, cfg)
	if err != nil {
		writeScoreError(w, "update config", err)
		return
	}

	resp, err := json.Marshal(updateConfigResponse{
		SessionID: sessionID,
		Revision:  revision,
	})
	if err != nil {
		log.Errorf("update config, marshal response: %s", err)
		http.Error(w, "update config failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resp, http.StatusAccepted)
}

func writeScore(w http.ResponseWriter, score session.Score, statusCode int) {
	scoreJson, err := json.Marshal(score)
	if err != nil {
		log.Errorf("failed to marshal session score: %s", err)
		http.Error(w, "error, failed to marshal score", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, scoreJson, statusCode)
}

func writeScoreError(w http.ResponseWriter, action string, err error) {
	log.Errorf("%s: %s", action, err)
	switch {
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, session.ErrScoreNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, session.ErrInvalidWeights):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, action+" failed", http.StatusInternalServerError)
	}
}
