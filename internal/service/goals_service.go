package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/repository"
	"github.com/limbo/momentum/pkg/entity"
)

type GoalsService struct {
	repo repository.GoalsRepositoryI
}

func NewGoalsService(goalsRepo repository.GoalsRepositoryI) *GoalsService {
	if goalsRepo == nil {
		log.Fatal("provided nil goalsRepo")
	}
	return &GoalsService{
		repo: goalsRepo,
	}
}

func (gs *GoalsService) CreateGoal(ctx context.Context, uid uuid.UUID, req *CreateGoalRequest) (*entity.Goal, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	g := entity.Goal{
		UserID:      uid,
		Title:       req.Title,
		Description: req.Description,
		Frequency:   req.Frequency,
		Days:        req.Days,
	}
	id, err := gs.repo.Create(ctx, &g)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("goals repository error: " + err.Error())
	}
	goal, err := gs.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return nil, err
		}
		return nil, errors.New("goals repository error: " + err.Error())
	}
	return goal, nil
}

func (gs *GoalsService) GetUserGoals(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]*entity.Goal, error) {
	goals, err := gs.repo.GetByUserID(ctx, uid, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, errors.New("goals repository error: " + err.Error())
	}
	return goals, nil
}

func (gs *GoalsService) GetGoal(ctx context.Context, goalID, userID uuid.UUID) (*entity.Goal, error) {
	goal, err := gs.owned(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (gs *GoalsService) SetGoalCompleted(ctx context.Context, goalID, userID uuid.UUID, completed bool) (*entity.Goal, error) {
	goal, err := gs.owned(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}
	err = gs.repo.SetCompleted(ctx, goalID, completed)
	if err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return nil, err
		}
		return nil, errors.New("goals repository error: " + err.Error())
	}
	goal.Completed = completed
	return goal, nil
}

func (gs *GoalsService) DeleteGoal(ctx context.Context, goalID, userID uuid.UUID) error {
	_, err := gs.owned(ctx, goalID, userID)
	if err != nil {
		return err
	}
	err = gs.repo.Delete(ctx, goalID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return err
		}
		return errors.New("goals repository error: " + err.Error())
	}
	return nil
}

func (gs *GoalsService) owned(ctx context.Context, goalID, userID uuid.UUID) (*entity.Goal, error) {
	goal, err := gs.repo.GetByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return nil, err
		}
		return nil, errors.New("goals repository error: " + err.Error())
	}
	if goal.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	return goal, nil
}
