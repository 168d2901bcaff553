package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/tmworl/golftracker/internal/error_values"
	"github.com/tmworl/golftracker/pkg/httputil"
)

type RateInsightRequest struct {
	Rating int `json:"rating"`
}

func (s *Server) GetLatestInsight(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get insight error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	insight, err := s.insightService.GetLatest(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrInsightNotFound) {
			logger.Error("get insight error: no insights yet")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "no insights yet", nil)
			return
		}
		logger.Error("get insight error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting insight", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, insight)
	logger.Info("insight provided")
}

func (s *Server) RateInsight(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("rate insight error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("rate insight error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid insight id in path value", nil)
		return
	}
	var req RateInsightRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("rate insight error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.insightService.RateInsight(ctx, id, uid, req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrInvalidRating):
			logger.Error("rate insight error: rating out of range")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "feedback rating must be between 1 and 3", nil)
		case errors.Is(err, errorvalues.ErrInsightNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("rate insight error: unexist insight")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "insight doesn't exist", nil)
		default:
			logger.Error("rate insight error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while rating insight", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"rated": true})
	logger.Info("insight rated", slog.Int("rating", req.Rating))
}
