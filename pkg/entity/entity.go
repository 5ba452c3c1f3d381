package entity

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// Account is one user document: profile, streak counters and the
// two-sided relationship lists. friends/requests stay symmetric with the
// paired account, enforced by the friendship package.
type Account struct {
	ID           uuid.UUID
	Username     string
	FullName     string
	PasswordHash string
	ProfilePic   string
	CreatedAt    time.Time

	Streak        int
	HighestStreak int
	// Day-keys ("YYYY-MM-DD"), empty string means never set.
	LastDailyCheckDate     string
	StreakIncreasedForDate string
	CompletionHistory      map[string]CompletionRecord

	Friends          []uuid.UUID
	RequestsSent     []uuid.UUID
	RequestsReceived []uuid.UUID
}

// CompletionRecord is one day's settlement result.
type CompletionRecord struct {
	Due          int  `json:"due"`
	Completed    int  `json:"completed"`
	AllCompleted bool `json:"allCompleted"`
}

// UnmarshalJSON accepts the legacy plain-boolean history entry and reads
// it as allCompleted only.
func (r *CompletionRecord) UnmarshalJSON(data []byte) error {
	var legacy bool
	if err := sonic.Unmarshal(data, &legacy); err == nil {
		*r = CompletionRecord{AllCompleted: legacy}
		return nil
	}
	type record CompletionRecord
	var full record
	if err := sonic.Unmarshal(data, &full); err != nil {
		return err
	}
	*r = CompletionRecord(full)
	return nil
}

// Goal is one personal goal. Completion per day is settled through the
// streak rollover, the flag here is the current in-day state.
type Goal struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"uid"`
	Title       string     `json:"title"`
	Description string     `json:"desc"`
	Frequency   string     `json:"frequency"`
	Days        []string   `json:"days,omitempty"`
	Completed   bool       `json:"completed"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// AccountSummary is the subset of fields exposed in directory listings
// and friends lists.
type AccountSummary struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	FullName      string    `json:"fullName"`
	ProfilePic    string    `json:"profilePic"`
	Streak        int       `json:"streak"`
	HighestStreak int       `json:"highestStreak"`
}

// Summary projects the listing fields out of a full account.
func (a *Account) Summary() AccountSummary {
	return AccountSummary{
		ID:            a.ID,
		Username:      a.Username,
		FullName:      a.FullName,
		ProfilePic:    a.ProfilePic,
		Streak:        a.Streak,
		HighestStreak: a.HighestStreak,
	}
}
