package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/limbo/momentum/internal/api"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/friendship"
	"github.com/limbo/momentum/internal/service"
	"github.com/limbo/momentum/pkg/entity"
)

type userServiceMock struct {
	registerFn      func(ctx context.Context, req *service.RegisterRequest) (*entity.Account, error)
	loginFn         func(ctx context.Context, username, password string) (*entity.Account, error)
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	getByUsernameFn func(ctx context.Context, username string) (*entity.Account, error)
	updateProfileFn func(ctx context.Context, id uuid.UUID, req *service.UpdateProfileRequest) (*entity.Account, error)
	searchFn        func(ctx context.Context, selfID uuid.UUID, q string, page, pageSize int) (*service.DirectoryPage, error)
}

func (m *userServiceMock) Register(ctx context.Context, req *service.RegisterRequest) (*entity.Account, error) {
	return m.registerFn(ctx, req)
}

func (m *userServiceMock) Login(ctx context.Context, username, password string) (*entity.Account, error) {
	return m.loginFn(ctx, username, password)
}

func (m *userServiceMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &entity.Account{ID: id, Username: "test_user"}, nil
}

func (m *userServiceMock) GetByUsername(ctx context.Context, username string) (*entity.Account, error) {
	return m.getByUsernameFn(ctx, username)
}

func (m *userServiceMock) UpdateProfile(ctx context.Context, id uuid.UUID, req *service.UpdateProfileRequest) (*entity.Account, error) {
	return m.updateProfileFn(ctx, id, req)
}

func (m *userServiceMock) Search(ctx context.Context, selfID uuid.UUID, q string, page, pageSize int) (*service.DirectoryPage, error) {
	return m.searchFn(ctx, selfID, q, page, pageSize)
}

type streakServiceMock struct {
	getStreakFn func(ctx context.Context, uid uuid.UUID) (*service.StreakInfo, error)
	incrementFn func(ctx context.Context, uid uuid.UUID, req *service.IncrementRequest) (*service.StreakInfo, error)
	rolloverFn  func(ctx context.Context, uid uuid.UUID, req *service.RolloverRequest) (*service.StreakInfo, error)
	markCheckFn func(ctx context.Context, uid uuid.UUID, req *service.MarkCheckRequest) (*service.StreakInfo, error)
}

func (m *streakServiceMock) GetStreak(ctx context.Context, uid uuid.UUID) (*service.StreakInfo, error) {
	return m.getStreakFn(ctx, uid)
}

func (m *streakServiceMock) Increment(ctx context.Context, uid uuid.UUID, req *service.IncrementRequest) (*service.StreakInfo, error) {
	return m.incrementFn(ctx, uid, req)
}

func (m *streakServiceMock) Rollover(ctx context.Context, uid uuid.UUID, req *service.RolloverRequest) (*service.StreakInfo, error) {
	return m.rolloverFn(ctx, uid, req)
}

func (m *streakServiceMock) MarkCheck(ctx context.Context, uid uuid.UUID, req *service.MarkCheckRequest) (*service.StreakInfo, error) {
	return m.markCheckFn(ctx, uid, req)
}

type friendshipServiceMock struct {
	requestFn       func(ctx context.Context, meID, targetID uuid.UUID) (friendship.Status, error)
	acceptFn        func(ctx context.Context, meID, requesterID uuid.UUID) (friendship.Status, error)
	declineFn       func(ctx context.Context, meID, requesterID uuid.UUID) (friendship.Status, error)
	removeFn        func(ctx context.Context, meID, friendID uuid.UUID) (friendship.Status, error)
	listFriendsFn   func(ctx context.Context, meID uuid.UUID) ([]entity.AccountSummary, error)
	relationshipsFn func(ctx context.Context, meID uuid.UUID) (*service.RelationshipsView, error)
}

func (m *friendshipServiceMock) Request(ctx context.Context, meID, targetID uuid.UUID) (friendship.Status, error) {
	return m.requestFn(ctx, meID, targetID)
}

func (m *friendshipServiceMock) Accept(ctx context.Context, meID, requesterID uuid.UUID) (friendship.Status, error) {
	return m.acceptFn(ctx, meID, requesterID)
}

func (m *friendshipServiceMock) Decline(ctx context.Context, meID, requesterID uuid.UUID) (friendship.Status, error) {
	return m.declineFn(ctx, meID, requesterID)
}

func (m *friendshipServiceMock) Remove(ctx context.Context, meID, friendID uuid.UUID) (friendship.Status, error) {
	return m.removeFn(ctx, meID, friendID)
}

func (m *friendshipServiceMock) ListFriends(ctx context.Context, meID uuid.UUID) ([]entity.AccountSummary, error) {
	return m.listFriendsFn(ctx, meID)
}

func (m *friendshipServiceMock) Relationships(ctx context.Context, meID uuid.UUID) (*service.RelationshipsView, error) {
	return m.relationshipsFn(ctx, meID)
}

type goalsServiceMock struct {
	createGoalFn       func(ctx context.Context, uid uuid.UUID, req *service.CreateGoalRequest) (*entity.Goal, error)
	getUserGoalsFn     func(ctx context.Context, uid uuid.UUID, pagination service.PaginationOpts) ([]*entity.Goal, error)
	getGoalFn          func(ctx context.Context, goalID, userID uuid.UUID) (*entity.Goal, error)
	setGoalCompletedFn func(ctx context.Context, goalID, userID uuid.UUID, completed bool) (*entity.Goal, error)
	deleteGoalFn       func(ctx context.Context, goalID, userID uuid.UUID) error
}

func (m *goalsServiceMock) CreateGoal(ctx context.Context, uid uuid.UUID, req *service.CreateGoalRequest) (*entity.Goal, error) {
	return m.createGoalFn(ctx, uid, req)
}

func (m *goalsServiceMock) GetUserGoals(ctx context.Context, uid uuid.UUID, pagination service.PaginationOpts) ([]*entity.Goal, error) {
	return m.getUserGoalsFn(ctx, uid, pagination)
}

func (m *goalsServiceMock) GetGoal(ctx context.Context, goalID, userID uuid.UUID) (*entity.Goal, error) {
	return m.getGoalFn(ctx, goalID, userID)
}

func (m *goalsServiceMock) SetGoalCompleted(ctx context.Context, goalID, userID uuid.UUID, completed bool) (*entity.Goal, error) {
	return m.setGoalCompletedFn(ctx, goalID, userID, completed)
}

func (m *goalsServiceMock) DeleteGoal(ctx context.Context, goalID, userID uuid.UUID) error {
	return m.deleteGoalFn(ctx, goalID, userID)
}

// jwtServiceMock accepts exactly one token string and resolves it to a
// fixed uid.
type jwtServiceMock struct {
	uid        uuid.UUID
	parseErr   error
	expiresAt  time.Time
	generateFn func(acc *entity.Account) (string, error)
}

const testToken = "test-token"

func (m *jwtServiceMock) GenerateToken(acc *entity.Account) (string, error) {
	if m.generateFn != nil {
		return m.generateFn(acc)
	}
	return testToken, nil
}

func (m *jwtServiceMock) ParseToken(tokenString string) (*api.JWTClaims, error) {
	if m.parseErr != nil {
		return nil, m.parseErr
	}
	if tokenString != testToken {
		return nil, errorvalues.ErrInvalidToken
	}
	expiresAt := m.expiresAt
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(time.Hour)
	}
	return &api.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		UserID:   m.uid.String(),
		Username: "test_user",
	}, nil
}

type serverMocks struct {
	uid        uuid.UUID
	user       *userServiceMock
	streak     *streakServiceMock
	friendship *friendshipServiceMock
	goals      *goalsServiceMock
	jwt        *jwtServiceMock
}

func newTestServer() (*api.Server, *serverMocks) {
	mocks := &serverMocks{
		uid:        uuid.New(),
		user:       &userServiceMock{},
		streak:     &streakServiceMock{},
		friendship: &friendshipServiceMock{},
		goals:      &goalsServiceMock{},
	}
	mocks.jwt = &jwtServiceMock{uid: mocks.uid}
	s := api.New(&api.ServicesList{
		UserService:       mocks.user,
		StreakService:     mocks.streak,
		FriendshipService: mocks.friendship,
		GoalsService:      mocks.goals,
		JwtService:        mocks.jwt,
	})
	return s, mocks
}

func doRequest(s *api.Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func authorize(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+testToken)
	return req
}
