package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/momentum/pkg/entity"
)

type AccountsRepositoryI interface {
	// Creates new account in database
	Create(ctx context.Context, acc *entity.Account) error
	// Looks up account by username. Can be used for login
	FindByUsername(ctx context.Context, username string) (*entity.Account, error)
	// Looks up account by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.Account, error)
	// Provides listing projections for a set of ids (friends lists)
	FindSummariesByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.AccountSummary, error)
	// Paged directory search over username/full name, excluding selfID.
	// Returns the page and the total match count
	Search(ctx context.Context, selfID uuid.UUID, q string, limit, offset int) ([]entity.AccountSummary, int, error)
	// Updates profile fields (username, full name, profile pic)
	UpdateProfile(ctx context.Context, acc *entity.Account) error
	// Best-effort pre-check before a username change
	UsernameTaken(ctx context.Context, username string, exclude uuid.UUID) (bool, error)
	// Applies fn to the account under a row lock and persists the streak
	// fields, so idempotence guards are re-verified at write time
	MutateAccount(ctx context.Context, uid uuid.UUID, fn func(*entity.Account) error) (*entity.Account, error)
	// Applies fn to both accounts of a pair inside one transaction,
	// persisting the relationship fields of both or neither
	MutatePair(ctx context.Context, selfID, otherID uuid.UUID, fn func(self, other *entity.Account) error) (*entity.Account, *entity.Account, error)
}

type GoalsRepositoryI interface {
	// Creates new goal in database. Only Title, UserID, Description, Frequency are necessary
	Create(ctx context.Context, goal *entity.Goal) (uuid.UUID, error)
	// Searches goal with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)
	// Lists goals owned by user with uid. Requires pagination params provided
	GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Goal, error)
	// Updates goal by ID (ID in goal is necessary)
	Update(ctx context.Context, goal *entity.Goal) error
	// Flips the completion flag of a goal
	SetCompleted(ctx context.Context, id uuid.UUID, completed bool) error
	// Deletes goal with id
	Delete(ctx context.Context, id uuid.UUID) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
