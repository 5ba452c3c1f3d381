package streak

import (
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/pkg/entity"
)

// Package streak holds the daily streak state machine. All functions
// mutate a single account in memory; callers persist the result under a
// per-account update scope. Day keys are opaque "YYYY-MM-DD" strings and
// are only ever compared for equality.

// Increment bumps the consecutive-day counter once per day key.
// Calling it again with the same day is a no-op, not an error: the
// StreakIncreasedForDate guard makes the operation idempotent.
func Increment(acc *entity.Account, day string) error {
	if day == "" {
		return errorvalues.ErrDayKeyRequired
	}
	if acc.StreakIncreasedForDate == day {
		return nil
	}
	acc.Streak++
	if acc.Streak > acc.HighestStreak {
		acc.HighestStreak = acc.Streak
	}
	acc.StreakIncreasedForDate = day
	return nil
}

// Rollover settles the previous day: records its completion result,
// breaks the streak when the day wasn't fully completed and stamps today
// as the last daily check. HighestStreak is never touched here.
func Rollover(acc *entity.Account, lastDay string, result entity.CompletionRecord, today string) error {
	if lastDay == "" || today == "" {
		return errorvalues.ErrDayKeyRequired
	}
	if acc.CompletionHistory == nil {
		acc.CompletionHistory = make(map[string]entity.CompletionRecord)
	}
	acc.CompletionHistory[lastDay] = result
	if !result.AllCompleted {
		acc.Streak = 0
	}
	acc.LastDailyCheckDate = today
	return nil
}

// MarkCheck records that the client performed its daily check-in today,
// independent of any rollover outcome.
func MarkCheck(acc *entity.Account, today string) error {
	if today == "" {
		return errorvalues.ErrDayKeyRequired
	}
	acc.LastDailyCheckDate = today
	return nil
}
