package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/friendship"
	"github.com/limbo/momentum/internal/repository"
	"github.com/limbo/momentum/pkg/entity"
)

// FriendshipService applies the friendship state machine to account
// pairs. All mutations go through MutatePair so both sides of a
// relationship change land in one transaction, keeping the lists
// symmetric.
type FriendshipService struct {
	repo repository.AccountsRepositoryI
}

func NewFriendshipService(accountsRepo repository.AccountsRepositoryI) *FriendshipService {
	if accountsRepo == nil {
		log.Fatal("provided nil accountsRepo")
	}
	return &FriendshipService{
		repo: accountsRepo,
	}
}

func (fs *FriendshipService) Request(ctx context.Context, meID, targetID uuid.UUID) (friendship.Status, error) {
	return fs.mutate(ctx, meID, targetID, friendship.Request)
}

func (fs *FriendshipService) Accept(ctx context.Context, meID, requesterID uuid.UUID) (friendship.Status, error) {
	return fs.mutate(ctx, meID, requesterID, friendship.Accept)
}

func (fs *FriendshipService) Decline(ctx context.Context, meID, requesterID uuid.UUID) (friendship.Status, error) {
	return fs.mutate(ctx, meID, requesterID, friendship.Decline)
}

func (fs *FriendshipService) Remove(ctx context.Context, meID, friendID uuid.UUID) (friendship.Status, error) {
	return fs.mutate(ctx, meID, friendID, friendship.Remove)
}

func (fs *FriendshipService) mutate(ctx context.Context, meID, otherID uuid.UUID, op func(self, other *entity.Account) (friendship.Status, error)) (friendship.Status, error) {
	// self-targeting is rejected before anything is loaded
	if meID == otherID {
		return "", errorvalues.ErrSelfTarget
	}
	var status friendship.Status
	_, _, err := fs.repo.MutatePair(ctx, meID, otherID, func(self, other *entity.Account) error {
		var opErr error
		status, opErr = op(self, other)
		return opErr
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserNotFound),
			errors.Is(err, errorvalues.ErrSelfTarget),
			errors.Is(err, errorvalues.ErrNoPendingRequest),
			errors.Is(err, errorvalues.ErrPairConflict):
			return "", err
		}
		return "", errors.New("accounts repository error: " + err.Error())
	}
	return status, nil
}

func (fs *FriendshipService) ListFriends(ctx context.Context, meID uuid.UUID) ([]entity.AccountSummary, error) {
	me, err := fs.repo.FindByID(ctx, meID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("accounts repository error: " + err.Error())
	}
	friends, err := fs.repo.FindSummariesByIDs(ctx, me.Friends)
	if err != nil {
		return nil, errors.New("accounts repository error: " + err.Error())
	}
	return friends, nil
}

func (fs *FriendshipService) Relationships(ctx context.Context, meID uuid.UUID) (*RelationshipsView, error) {
	me, err := fs.repo.FindByID(ctx, meID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("accounts repository error: " + err.Error())
	}
	return &RelationshipsView{
		MeID:     me.ID.String(),
		Friends:  stringifyIDs(me.Friends),
		Sent:     stringifyIDs(me.RequestsSent),
		Received: stringifyIDs(me.RequestsReceived),
	}, nil
}

func stringifyIDs(ids []uuid.UUID) []string {
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		result = append(result, id.String())
	}
	return result
}
