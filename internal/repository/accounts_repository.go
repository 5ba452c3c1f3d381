package repository

import (
	"bytes"
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/pkg/cleanup"
	"github.com/limbo/momentum/pkg/entity"
)

const accountColumns = `id, username, full_name, password_hash, profile_pic, created_at, streak, highest_streak, last_daily_check_date, streak_increased_for_date, completion_history, friends, requests_sent, requests_received`

const summaryColumns = `id, username, full_name, profile_pic, streak, highest_streak`

type AccountsRepository struct {
	conn PgConnection
}

func NewAccountsRepo(cfg DBConfig) *AccountsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for accountsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for accountsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &AccountsRepository{
		conn: pool,
	}
}

func NewAccountsRepoWithConn(conn PgConnection) *AccountsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for accountsRepo: " + err.Error())
	}
	return &AccountsRepository{
		conn: conn,
	}
}

func (ar *AccountsRepository) Create(ctx context.Context, acc *entity.Account) error {
	if acc == nil {
		return errors.New("account is nil")
	}
	_, err := ar.conn.Exec(ctx, `INSERT INTO accounts (username, full_name, password_hash, profile_pic) VALUES ($1, $2, $3, $4);`,
		acc.Username,
		acc.FullName,
		acc.PasswordHash,
		acc.ProfilePic,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return errorvalues.ErrUserExists
			}
		}
		return errors.New("creating account db error: " + err.Error())
	}
	return nil
}

func (ar *AccountsRepository) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	row := ar.conn.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE username = $1;`, username)
	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("searching account by username error: " + err.Error())
	}
	return acc, nil
}

func (ar *AccountsRepository) FindByID(ctx context.Context, uid uuid.UUID) (*entity.Account, error) {
	row := ar.conn.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1;`, uid)
	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("searching account by id error: " + err.Error())
	}
	return acc, nil
}

func (ar *AccountsRepository) FindSummariesByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.AccountSummary, error) {
	result := make([]entity.AccountSummary, 0, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	rows, err := ar.conn.Query(ctx, `SELECT `+summaryColumns+` FROM accounts WHERE id = ANY($1) ORDER BY username;`, ids)
	if err != nil {
		return nil, errors.New("getting accounts by ids error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		var s entity.AccountSummary
		err = rows.Scan(&s.ID, &s.Username, &s.FullName, &s.ProfilePic, &s.Streak, &s.HighestStreak)
		if err != nil {
			return nil, errors.New("unmarshalling account summary error: " + err.Error())
		}
		result = append(result, s)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return result, nil
}

func (ar *AccountsRepository) Search(ctx context.Context, selfID uuid.UUID, q string, limit, offset int) ([]entity.AccountSummary, int, error) {
	pattern := "%" + q + "%"
	var total int
	row := ar.conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM accounts WHERE id <> $1 AND ($2 = '' OR username ILIKE $3 OR full_name ILIKE $3);`,
		selfID, q, pattern,
	)
	if err := row.Scan(&total); err != nil {
		return nil, 0, errors.New("counting accounts error: " + err.Error())
	}
	rows, err := ar.conn.Query(ctx,
		`SELECT `+summaryColumns+` FROM accounts
		WHERE id <> $1 AND ($2 = '' OR username ILIKE $3 OR full_name ILIKE $3)
		ORDER BY created_at DESC LIMIT $4 OFFSET $5;`,
		selfID, q, pattern, limit, offset,
	)
	if err != nil {
		return nil, 0, errors.New("searching accounts error: " + err.Error())
	}
	defer rows.Close()
	result := make([]entity.AccountSummary, 0, limit)
	for rows.Next() {
		var s entity.AccountSummary
		err = rows.Scan(&s.ID, &s.Username, &s.FullName, &s.ProfilePic, &s.Streak, &s.HighestStreak)
		if err != nil {
			return nil, 0, errors.New("unmarshalling account summary error: " + err.Error())
		}
		result = append(result, s)
	}
	if rows.Err() != nil {
		return nil, 0, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return result, total, nil
}

func (ar *AccountsRepository) UpdateProfile(ctx context.Context, acc *entity.Account) error {
	ct, err := ar.conn.Exec(ctx, `UPDATE accounts SET username = $1, full_name = $2, profile_pic = $3 WHERE id = $4;`,
		acc.Username,
		acc.FullName,
		acc.ProfilePic,
		acc.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return errorvalues.ErrUserExists
		}
		return errors.New("updating account profile error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}

func (ar *AccountsRepository) UsernameTaken(ctx context.Context, username string, exclude uuid.UUID) (bool, error) {
	var taken bool
	row := ar.conn.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE username = $1 AND id <> $2);`, username, exclude)
	if err := row.Scan(&taken); err != nil {
		return false, errors.New("inspecting if username taken error: " + err.Error())
	}
	return taken, nil
}

// MutateAccount runs fn on the freshly loaded account under a row lock
// and writes the streak fields back in the same transaction. Guards like
// StreakIncreasedForDate are therefore re-checked against the value the
// write is based on, a concurrent increment can't slip in between.
func (ar *AccountsRepository) MutateAccount(ctx context.Context, uid uuid.UUID, fn func(*entity.Account) error) (*entity.Account, error) {
	tx, err := ar.conn.Begin(ctx)
	if err != nil {
		return nil, errors.New("starting account update error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	row := tx.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE;`, uid)
	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("loading account for update error: " + err.Error())
	}
	if err = fn(acc); err != nil {
		return nil, err
	}
	_, err = tx.Exec(ctx,
		`UPDATE accounts SET streak = $1, highest_streak = $2, last_daily_check_date = $3, streak_increased_for_date = $4, completion_history = $5 WHERE id = $6;`,
		acc.Streak,
		acc.HighestStreak,
		acc.LastDailyCheckDate,
		acc.StreakIncreasedForDate,
		historyOrEmpty(acc.CompletionHistory),
		acc.ID,
	)
	if err != nil {
		return nil, errors.New("writing streak update error: " + err.Error())
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, errors.New("committing streak update error: " + err.Error())
	}
	return acc, nil
}

// MutatePair runs fn on both accounts of a pair and writes the
// relationship fields of both inside one transaction, so either both
// sides of a friendship mutation become durable or neither does. Rows
// are locked in ascending id order regardless of caller order, two
// concurrent operations on the same pair can't deadlock. fn receives the
// accounts in (selfID, otherID) order.
func (ar *AccountsRepository) MutatePair(ctx context.Context, selfID, otherID uuid.UUID, fn func(self, other *entity.Account) error) (*entity.Account, *entity.Account, error) {
	if selfID == otherID {
		return nil, nil, errorvalues.ErrSelfTarget
	}
	first, second := selfID, otherID
	if bytes.Compare(second[:], first[:]) < 0 {
		first, second = second, first
	}
	tx, err := ar.conn.Begin(ctx)
	if err != nil {
		return nil, nil, errors.New("starting pair update error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	lower, err := scanAccount(tx.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE;`, first))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, errorvalues.ErrUserNotFound
		}
		return nil, nil, errors.New("loading pair account error: " + err.Error())
	}
	upper, err := scanAccount(tx.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE;`, second))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, errorvalues.ErrUserNotFound
		}
		return nil, nil, errors.New("loading pair account error: " + err.Error())
	}
	self, other := lower, upper
	if self.ID != selfID {
		self, other = upper, lower
	}
	if err = fn(self, other); err != nil {
		return nil, nil, err
	}
	for _, acc := range []*entity.Account{self, other} {
		_, err = tx.Exec(ctx,
			`UPDATE accounts SET friends = $1, requests_sent = $2, requests_received = $3 WHERE id = $4;`,
			idsOrEmpty(acc.Friends),
			idsOrEmpty(acc.RequestsSent),
			idsOrEmpty(acc.RequestsReceived),
			acc.ID,
		)
		if err != nil {
			return nil, nil, errors.Join(errorvalues.ErrPairConflict, err)
		}
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, nil, errors.Join(errorvalues.ErrPairConflict, err)
	}
	return self, other, nil
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var acc entity.Account
	err := row.Scan(
		&acc.ID,
		&acc.Username,
		&acc.FullName,
		&acc.PasswordHash,
		&acc.ProfilePic,
		&acc.CreatedAt,
		&acc.Streak,
		&acc.HighestStreak,
		&acc.LastDailyCheckDate,
		&acc.StreakIncreasedForDate,
		&acc.CompletionHistory,
		&acc.Friends,
		&acc.RequestsSent,
		&acc.RequestsReceived,
	)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// pgx encodes nil maps/slices as SQL NULL, the columns are NOT NULL.

func historyOrEmpty(h map[string]entity.CompletionRecord) map[string]entity.CompletionRecord {
	if h == nil {
		return map[string]entity.CompletionRecord{}
	}
	return h
}

func idsOrEmpty(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}
