package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/tmworl/golftracker/internal/error_values"
	"github.com/tmworl/golftracker/internal/service"
	"github.com/tmworl/golftracker/pkg/entity"
	"github.com/tmworl/golftracker/pkg/httputil"
	"github.com/tmworl/golftracker/pkg/scoring"
)

type StartRoundRequest struct {
	CourseName string `json:"course_name"`
	ClubName   string `json:"club_name"`
	Location   string `json:"location"`
	Par        int    `json:"par"`
}

type StartRoundResponse struct {
	Round  *entity.Round  `json:"round"`
	Course *entity.Course `json:"course"`
}

type FinishHoleRequest struct {
	// Counts maps shot type -> outcome -> count for the finished hole
	Counts scoring.HoleCounts `json:"counts"`
}

type GetRoundsResponse struct {
	UserID string          `json:"uid"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
	Rounds []*entity.Round `json:"rounds"`
}

func (s *Server) StartRound(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("start round error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req StartRoundRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("start round error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	round, course, err := s.roundService.StartRound(ctx, uid, &service.StartRoundRequest{
		CourseName: req.CourseName,
		ClubName:   req.ClubName,
		Location:   req.Location,
		Par:        req.Par,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("start round error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "couldn't start round: user doesn't exist", nil)
		default:
			logger.Error("start round error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while starting round", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, StartRoundResponse{
		Round:  round,
		Course: course,
	})
	logger.Info("round started", slog.String("round_id", round.ID.String()))
}

func (s *Server) GetRounds(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get rounds error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 || limit > 50 {
		limit = 10
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	rounds, err := s.roundService.GetUserRounds(ctx, uid, service.PaginationOpts{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Error("getting rounds list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting rounds list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetRoundsResponse{
		UserID: uid.String(),
		Page:   page,
		Limit:  limit,
		Rounds: rounds,
	})
	logger.Info("rounds provided")
}

func (s *Server) GetRound(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get round error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("get round error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid round id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	round, err := s.roundService.GetRound(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrRoundNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("get round error: unexist round")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "round doesn't exist", nil)
		default:
			logger.Error("get round error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting round", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, round)
	logger.Info("round provided")
}

func (s *Server) FinishHole(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("finish hole error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("finish hole error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid round id in path value", nil)
		return
	}
	hole, err := strconv.Atoi(r.PathValue("hole"))
	if err != nil {
		logger.Error("finish hole error: invalid hole in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid hole number in path value", nil)
		return
	}
	var req FinishHoleRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("finish hole error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	persisted, err := s.roundService.FinishHole(ctx, id, uid, hole, req.Counts)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrInvalidHole):
			logger.Error("finish hole error: hole outside the round")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "hole number outside the round", nil)
		case errors.Is(err, errorvalues.ErrUnknownShotType), errors.Is(err, errorvalues.ErrUnknownOutcome):
			logger.Error("finish hole error: label outside vocabulary")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "unknown shot type or outcome", err)
		case errors.Is(err, errorvalues.ErrRoundNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("finish hole error: unexist round")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "round doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrRoundComplete):
			logger.Error("finish hole error: round already complete")
			httputil.WriteErrorResponse(w, http.StatusConflict, "round is already complete", nil)
		default:
			logger.Error("finish hole error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while finishing hole", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"hole":            hole,
		"persisted_shots": persisted,
	})
	logger.Info("hole finished", slog.Int("hole", hole), slog.Int("persisted_shots", persisted))
}

func (s *Server) CompleteRound(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("complete round error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("complete round error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid round id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	round, err := s.roundService.CompleteRound(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrRoundNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("complete round error: unexist round")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "round doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrCourseNotFound):
			logger.Error("complete round error: course is gone")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "round's course doesn't exist", nil)
		default:
			logger.Error("complete round error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while completing round", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, round)
	logger.Info("round completed", slog.String("round_id", round.ID.String()))
}

func (s *Server) GetScorecard(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get scorecard error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("get scorecard error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid round id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	scorecard, err := s.scorecardService.GetScorecard(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrRoundNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("get scorecard error: unexist round")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "round doesn't exist", nil)
		default:
			logger.Error("get scorecard error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while building scorecard", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, scorecard)
	logger.Info("scorecard provided")
}
