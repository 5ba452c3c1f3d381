package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/repository"
	"github.com/limbo/momentum/internal/streak"
	"github.com/limbo/momentum/pkg/entity"
)

type StreakService struct {
	repo repository.AccountsRepositoryI
}

func NewStreakService(accountsRepo repository.AccountsRepositoryI) *StreakService {
	if accountsRepo == nil {
		log.Fatal("provided nil accountsRepo")
	}
	return &StreakService{
		repo: accountsRepo,
	}
}

func (ss *StreakService) GetStreak(ctx context.Context, uid uuid.UUID) (*StreakInfo, error) {
	acc, err := ss.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("accounts repository error: " + err.Error())
	}
	return streakInfo(acc), nil
}

func (ss *StreakService) Increment(ctx context.Context, uid uuid.UUID, req *IncrementRequest) (*StreakInfo, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	acc, err := ss.repo.MutateAccount(ctx, uid, func(acc *entity.Account) error {
		return streak.Increment(acc, req.OnDate)
	})
	if err != nil {
		return nil, streakMutationError(err)
	}
	return streakInfo(acc), nil
}

func (ss *StreakService) Rollover(ctx context.Context, uid uuid.UUID, req *RolloverRequest) (*StreakInfo, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	result := entity.CompletionRecord{
		Due:          req.Due,
		Completed:    req.Completed,
		AllCompleted: req.CompletedAll,
	}
	acc, err := ss.repo.MutateAccount(ctx, uid, func(acc *entity.Account) error {
		return streak.Rollover(acc, req.LastDay, result, req.Today)
	})
	if err != nil {
		return nil, streakMutationError(err)
	}
	return streakInfo(acc), nil
}

func (ss *StreakService) MarkCheck(ctx context.Context, uid uuid.UUID, req *MarkCheckRequest) (*StreakInfo, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	acc, err := ss.repo.MutateAccount(ctx, uid, func(acc *entity.Account) error {
		return streak.MarkCheck(acc, req.Today)
	})
	if err != nil {
		return nil, streakMutationError(err)
	}
	return streakInfo(acc), nil
}

func streakMutationError(err error) error {
	switch {
	case errors.Is(err, errorvalues.ErrUserNotFound),
		errors.Is(err, errorvalues.ErrDayKeyRequired):
		return err
	}
	return errors.New("accounts repository error: " + err.Error())
}

func streakInfo(acc *entity.Account) *StreakInfo {
	history := acc.CompletionHistory
	if history == nil {
		history = map[string]entity.CompletionRecord{}
	}
	return &StreakInfo{
		Streak:                 acc.Streak,
		HighestStreak:          acc.HighestStreak,
		LastDailyCheckDate:     acc.LastDailyCheckDate,
		StreakIncreasedForDate: acc.StreakIncreasedForDate,
		CompletionHistory:      history,
	}
}
