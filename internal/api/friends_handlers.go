package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/friendship"
	"github.com/limbo/momentum/pkg/httputil"
)

type FriendshipStatusResponse struct {
	OK     bool   `json:"ok"`
	Status string `json:"status"`
}

func (s *Server) RequestFriend(w http.ResponseWriter, r *http.Request) {
	s.friendshipMutation(w, r, "targetID", s.friendshipService.Request)
}

func (s *Server) AcceptFriend(w http.ResponseWriter, r *http.Request) {
	s.friendshipMutation(w, r, "requesterID", s.friendshipService.Accept)
}

func (s *Server) DeclineFriend(w http.ResponseWriter, r *http.Request) {
	s.friendshipMutation(w, r, "requesterID", s.friendshipService.Decline)
}

func (s *Server) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	s.friendshipMutation(w, r, "friendID", s.friendshipService.Remove)
}

// friendshipMutation handles the shared shape of all four pair
// operations: parse the peer id, run the operation, map the outcome.
func (s *Server) friendshipMutation(w http.ResponseWriter, r *http.Request, param string, op func(ctx context.Context, meID, otherID uuid.UUID) (friendship.Status, error)) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("friendship error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	otherID, err := uuid.Parse(r.PathValue(param))
	if err != nil {
		logger.Error("friendship error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid user id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	status, err := op(ctx, uid, otherID)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrSelfTarget):
			logger.Error("friendship error: self target")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "can't target yourself", nil)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("friendship error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, errorvalues.ErrNoPendingRequest):
			logger.Error("friendship error: no pending request")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "no pending request from this user", nil)
		case errors.Is(err, errorvalues.ErrPairConflict):
			// the pair update did not commit, safe to retry
			logger.Error("friendship error: pair update conflict", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusConflict, "conflicting friendship update, retry", nil)
		default:
			logger.Error("friendship error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during friendship update", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, FriendshipStatusResponse{
		OK:     true,
		Status: string(status),
	})
	logger.Info("friendship updated", slog.String("status", string(status)))
}

func (s *Server) ListFriends(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("list friends error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	friends, err := s.friendshipService.ListFriends(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			logger.Error("list friends error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user not found", nil)
			return
		}
		logger.Error("list friends error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting friends list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"data": friends})
	logger.Info("friends provided")
}

func (s *Server) Relationships(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("relationships error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	view, err := s.friendshipService.Relationships(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			logger.Error("relationships error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user not found", nil)
			return
		}
		logger.Error("relationships error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting relationships", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, view)
	logger.Info("relationships provided")
}
