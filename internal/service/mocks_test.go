package service_test

import (
	"context"

	"github.com/google/uuid"

	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/pkg/entity"
)

// accountsRepoMock keeps accounts in memory and routes the mutation
// helpers through the same maps, so service tests observe real state
// transitions. Individual calls can be overridden per test via the
// func fields.
type accountsRepoMock struct {
	accounts map[uuid.UUID]*entity.Account

	createFn     func(ctx context.Context, acc *entity.Account) error
	mutatePairFn func(ctx context.Context, selfID, otherID uuid.UUID, fn func(self, other *entity.Account) error) (*entity.Account, *entity.Account, error)
	searchFn     func(ctx context.Context, selfID uuid.UUID, q string, limit, offset int) ([]entity.AccountSummary, int, error)
}

func newAccountsRepoMock(accs ...*entity.Account) *accountsRepoMock {
	m := &accountsRepoMock{accounts: map[uuid.UUID]*entity.Account{}}
	for _, acc := range accs {
		m.accounts[acc.ID] = acc
	}
	return m
}

func (m *accountsRepoMock) Create(ctx context.Context, acc *entity.Account) error {
	if m.createFn != nil {
		return m.createFn(ctx, acc)
	}
	for _, existing := range m.accounts {
		if existing.Username == acc.Username {
			return errorvalues.ErrUserExists
		}
	}
	stored := *acc
	stored.ID = uuid.New()
	m.accounts[stored.ID] = &stored
	return nil
}

func (m *accountsRepoMock) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	for _, acc := range m.accounts {
		if acc.Username == username {
			copied := *acc
			return &copied, nil
		}
	}
	return nil, errorvalues.ErrUserNotFound
}

func (m *accountsRepoMock) FindByID(ctx context.Context, uid uuid.UUID) (*entity.Account, error) {
	acc, ok := m.accounts[uid]
	if !ok {
		return nil, errorvalues.ErrUserNotFound
	}
	copied := *acc
	return &copied, nil
}

func (m *accountsRepoMock) FindSummariesByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.AccountSummary, error) {
	result := make([]entity.AccountSummary, 0, len(ids))
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			result = append(result, acc.Summary())
		}
	}
	return result, nil
}

func (m *accountsRepoMock) Search(ctx context.Context, selfID uuid.UUID, q string, limit, offset int) ([]entity.AccountSummary, int, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, selfID, q, limit, offset)
	}
	return []entity.AccountSummary{}, 0, nil
}

func (m *accountsRepoMock) UpdateProfile(ctx context.Context, acc *entity.Account) error {
	stored, ok := m.accounts[acc.ID]
	if !ok {
		return errorvalues.ErrUserNotFound
	}
	stored.Username = acc.Username
	stored.FullName = acc.FullName
	stored.ProfilePic = acc.ProfilePic
	return nil
}

func (m *accountsRepoMock) UsernameTaken(ctx context.Context, username string, exclude uuid.UUID) (bool, error) {
	for id, acc := range m.accounts {
		if acc.Username == username && id != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (m *accountsRepoMock) MutateAccount(ctx context.Context, uid uuid.UUID, fn func(*entity.Account) error) (*entity.Account, error) {
	acc, ok := m.accounts[uid]
	if !ok {
		return nil, errorvalues.ErrUserNotFound
	}
	if err := fn(acc); err != nil {
		return nil, err
	}
	copied := *acc
	return &copied, nil
}

func (m *accountsRepoMock) MutatePair(ctx context.Context, selfID, otherID uuid.UUID, fn func(self, other *entity.Account) error) (*entity.Account, *entity.Account, error) {
	if m.mutatePairFn != nil {
		return m.mutatePairFn(ctx, selfID, otherID, fn)
	}
	if selfID == otherID {
		return nil, nil, errorvalues.ErrSelfTarget
	}
	self, ok := m.accounts[selfID]
	if !ok {
		return nil, nil, errorvalues.ErrUserNotFound
	}
	other, ok := m.accounts[otherID]
	if !ok {
		return nil, nil, errorvalues.ErrUserNotFound
	}
	if err := fn(self, other); err != nil {
		return nil, nil, err
	}
	return self, other, nil
}

type goalsRepoMock struct {
	goals map[uuid.UUID]*entity.Goal

	createErr error
}

func newGoalsRepoMock(goals ...*entity.Goal) *goalsRepoMock {
	m := &goalsRepoMock{goals: map[uuid.UUID]*entity.Goal{}}
	for _, g := range goals {
		m.goals[g.ID] = g
	}
	return m
}

func (m *goalsRepoMock) Create(ctx context.Context, goal *entity.Goal) (uuid.UUID, error) {
	if m.createErr != nil {
		return uuid.UUID{}, m.createErr
	}
	stored := *goal
	stored.ID = uuid.New()
	m.goals[stored.ID] = &stored
	return stored.ID, nil
}

func (m *goalsRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	g, ok := m.goals[id]
	if !ok {
		return nil, errorvalues.ErrGoalNotFound
	}
	copied := *g
	return &copied, nil
}

func (m *goalsRepoMock) GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Goal, error) {
	result := make([]*entity.Goal, 0)
	for _, g := range m.goals {
		if g.UserID == uid {
			copied := *g
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *goalsRepoMock) Update(ctx context.Context, goal *entity.Goal) error {
	if _, ok := m.goals[goal.ID]; !ok {
		return errorvalues.ErrGoalNotFound
	}
	copied := *goal
	m.goals[goal.ID] = &copied
	return nil
}

func (m *goalsRepoMock) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) error {
	g, ok := m.goals[id]
	if !ok {
		return errorvalues.ErrGoalNotFound
	}
	g.Completed = completed
	return nil
}

func (m *goalsRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.goals[id]; !ok {
		return errorvalues.ErrGoalNotFound
	}
	delete(m.goals, id)
	return nil
}
