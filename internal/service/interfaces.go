package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/limbo/momentum/internal/friendship"
	"github.com/limbo/momentum/pkg/entity"
)

type RegisterRequest struct {
	FullName string `validate:"max=100"`
	Username string `validate:"required,alphanum_underscore,min=3,max=100"`
	Password string `validate:"required,min=8,max=72"`
}

// UpdateProfileRequest carries optional profile changes, nil means
// "leave untouched".
type UpdateProfileRequest struct {
	Username   *string
	FullName   *string
	ProfilePic *string
}

type DirectoryPage struct {
	Data       []entity.AccountSummary
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

type UserServiceI interface {
	// Validates credentials, creates new row in database. Returns account data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.Account, error)
	// Compares given credentials. If ok, gives back account data with ID
	Login(ctx context.Context, username, password string) (*entity.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	GetByUsername(ctx context.Context, username string) (*entity.Account, error)
	// Applies trimmed profile changes, keeping usernames globally unique
	UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) (*entity.Account, error)
	// Paged directory search excluding the caller
	Search(ctx context.Context, selfID uuid.UUID, q string, page, pageSize int) (*DirectoryPage, error)
}

type IncrementRequest struct {
	OnDate string `validate:"required,datetime=2006-01-02"`
}

type RolloverRequest struct {
	LastDay      string `validate:"required,datetime=2006-01-02"`
	Today        string `validate:"required,datetime=2006-01-02"`
	Due          int    `validate:"min=0"`
	Completed    int    `validate:"min=0"`
	CompletedAll bool
}

type MarkCheckRequest struct {
	Today string `validate:"required,datetime=2006-01-02"`
}

// StreakInfo is the streak state reported back after reads and
// mutations.
type StreakInfo struct {
	Streak                 int
	HighestStreak          int
	LastDailyCheckDate     string
	StreakIncreasedForDate string
	CompletionHistory      map[string]entity.CompletionRecord
}

type StreakServiceI interface {
	GetStreak(ctx context.Context, uid uuid.UUID) (*StreakInfo, error)
	// Bumps the streak once per day, idempotent per day key
	Increment(ctx context.Context, uid uuid.UUID, req *IncrementRequest) (*StreakInfo, error)
	// Settles the previous day and stamps the new day boundary
	Rollover(ctx context.Context, uid uuid.UUID, req *RolloverRequest) (*StreakInfo, error)
	// Records today's check-in only
	MarkCheck(ctx context.Context, uid uuid.UUID, req *MarkCheckRequest) (*StreakInfo, error)
}

type RelationshipsView struct {
	MeID     string   `json:"meId"`
	Friends  []string `json:"friends"`
	Sent     []string `json:"sent"`
	Received []string `json:"received"`
}

type FriendshipServiceI interface {
	// Sends a friend request, auto-accepting a mutual pending one
	Request(ctx context.Context, meID, targetID uuid.UUID) (friendship.Status, error)
	// Accepts a pending inbound request
	Accept(ctx context.Context, meID, requesterID uuid.UUID) (friendship.Status, error)
	// Drops a pending inbound request, no-op when nothing is pending
	Decline(ctx context.Context, meID, requesterID uuid.UUID) (friendship.Status, error)
	// Ends a friendship from both sides
	Remove(ctx context.Context, meID, friendID uuid.UUID) (friendship.Status, error)
	ListFriends(ctx context.Context, meID uuid.UUID) ([]entity.AccountSummary, error)
	Relationships(ctx context.Context, meID uuid.UUID) (*RelationshipsView, error)
}

type CreateGoalRequest struct {
	Title       string   `validate:"required,min=1,max=200"`
	Description string   `validate:"required,max=2000"`
	Frequency   string   `validate:"required,oneof=daily weekly custom"`
	Days        []string `validate:"dive,oneof=sun mon tue wed thu fri sat"`
}

type PaginationOpts struct {
	Limit  int
	Offset int
}

type GoalsServiceI interface {
	CreateGoal(ctx context.Context, uid uuid.UUID, req *CreateGoalRequest) (*entity.Goal, error)
	GetUserGoals(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]*entity.Goal, error)
	GetGoal(ctx context.Context, goalID, userID uuid.UUID) (*entity.Goal, error)
	SetGoalCompleted(ctx context.Context, goalID, userID uuid.UUID, completed bool) (*entity.Goal, error)
	DeleteGoal(ctx context.Context, goalID, userID uuid.UUID) error
}
