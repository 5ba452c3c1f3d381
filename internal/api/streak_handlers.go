package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/service"
	"github.com/limbo/momentum/pkg/httputil"
)

type IncrementStreakRequest struct {
	OnDate string `json:"onDate"`
}

type RolloverStreakRequest struct {
	LastDay      string `json:"lastDay"`
	CompletedAll *bool  `json:"completedAll"`
	Today        string `json:"today"`
	Due          int    `json:"due"`
	Completed    int    `json:"completed"`
}

type MarkCheckRequest struct {
	Today string `json:"today"`
}

func (s *Server) GetStreak(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get streak error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	info, err := s.streakService.GetStreak(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			logger.Error("get streak error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user not found", nil)
			return
		}
		logger.Error("get streak error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting streak", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"streak":                 info.Streak,
		"lastDailyCheckDate":     info.LastDailyCheckDate,
		"streakIncreasedForDate": info.StreakIncreasedForDate,
		"completionHistory":      info.CompletionHistory,
	})
}

func (s *Server) IncrementStreak(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("increment streak error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req IncrementStreakRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("increment streak error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	info, err := s.streakService.Increment(ctx, uid, &service.IncrementRequest{OnDate: req.OnDate})
	if err != nil {
		s.writeStreakError(w, logger, "increment streak", "onDate required", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"streak":                 info.Streak,
		"streakIncreasedForDate": info.StreakIncreasedForDate,
	})
	logger.Info("streak increment processed")
}

func (s *Server) RolloverStreak(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("streak rollover error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req RolloverStreakRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("streak rollover error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if req.CompletedAll == nil {
		logger.Error("streak rollover error: missing completedAll")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "lastDay, completedAll, today are required", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	info, err := s.streakService.Rollover(ctx, uid, &service.RolloverRequest{
		LastDay:      req.LastDay,
		Today:        req.Today,
		Due:          req.Due,
		Completed:    req.Completed,
		CompletedAll: *req.CompletedAll,
	})
	if err != nil {
		s.writeStreakError(w, logger, "streak rollover", "lastDay, completedAll, today are required", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"streak":             info.Streak,
		"lastDailyCheckDate": info.LastDailyCheckDate,
		"completionHistory":  info.CompletionHistory,
	})
	logger.Info("streak rollover processed")
}

func (s *Server) MarkDailyCheck(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("mark check error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req MarkCheckRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("mark check error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	info, err := s.streakService.MarkCheck(ctx, uid, &service.MarkCheckRequest{Today: req.Today})
	if err != nil {
		s.writeStreakError(w, logger, "mark check", "today required", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"lastDailyCheckDate": info.LastDailyCheckDate,
	})
	logger.Info("daily check marked")
}

func (s *Server) writeStreakError(w http.ResponseWriter, logger *slog.Logger, op, badInputMsg string, err error) {
	switch {
	case errors.Is(err, errorvalues.ErrInvalidInput), errors.Is(err, errorvalues.ErrDayKeyRequired):
		logger.Error(op + " error: invalid input")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, badInputMsg, nil)
	case errors.Is(err, errorvalues.ErrUserNotFound):
		logger.Error(op + " error: unexist user")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "user not found", nil)
	default:
		logger.Error(op+" error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while processing streak", nil)
	}
}
