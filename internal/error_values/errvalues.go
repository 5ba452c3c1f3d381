package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong username or password")
	ErrInvalidToken     = errors.New("invalid token")

	ErrDayKeyRequired = errors.New("day key is required")
	ErrInvalidInput   = errors.New("invalid input")

	ErrGoalNotFound = errors.New("goal doesn't exists")
	ErrWrongOwner   = errors.New("goal has different owner")

	ErrSelfTarget       = errors.New("can't target yourself")
	ErrNoPendingRequest = errors.New("no pending request from this user")
	ErrPairConflict     = errors.New("conflicting update on friendship pair")
)
