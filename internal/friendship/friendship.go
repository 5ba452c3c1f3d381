package friendship

import (
	"github.com/google/uuid"

	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/pkg/entity"
)

// Package friendship holds the two-sided relationship state machine.
// Every operation takes the matched pair (self, other) loaded together
// and mirrors each mutation on both records, so the symmetry invariants
//
//	self.Friends ∋ other  ⇔  other.Friends ∋ self
//	self.RequestsSent ∋ other  ⇔  other.RequestsReceived ∋ self
//
// hold after every successful call. Persisting both records atomically
// is the caller's job.

// Status is the relationship state reported back to the caller.
type Status string

const (
	StatusNone        Status = "none"
	StatusRequestSent Status = "request_sent"
	StatusFriends     Status = "friends"
)

// Request sends a friend request from self to other. Already friends or
// an already sent request is an idempotent no-op. A pending request in
// the opposite direction collapses straight into friendship.
func Request(self, other *entity.Account) (Status, error) {
	if self.ID == other.ID {
		return "", errorvalues.ErrSelfTarget
	}
	if contains(self.Friends, other.ID) {
		return StatusFriends, nil
	}
	if contains(self.RequestsSent, other.ID) {
		return StatusRequestSent, nil
	}
	if contains(self.RequestsReceived, other.ID) {
		self.RequestsReceived = pull(self.RequestsReceived, other.ID)
		other.RequestsSent = pull(other.RequestsSent, self.ID)
		self.Friends = addToSet(self.Friends, other.ID)
		other.Friends = addToSet(other.Friends, self.ID)
		return StatusFriends, nil
	}
	self.RequestsSent = addToSet(self.RequestsSent, other.ID)
	other.RequestsReceived = addToSet(other.RequestsReceived, self.ID)
	return StatusRequestSent, nil
}

// Accept turns a pending request from other into friendship. Accepting
// without a pending inbound request is an error and mutates nothing.
func Accept(self, other *entity.Account) (Status, error) {
	if self.ID == other.ID {
		return "", errorvalues.ErrSelfTarget
	}
	if !contains(self.RequestsReceived, other.ID) {
		return "", errorvalues.ErrNoPendingRequest
	}
	self.RequestsReceived = pull(self.RequestsReceived, other.ID)
	other.RequestsSent = pull(other.RequestsSent, self.ID)
	self.Friends = addToSet(self.Friends, other.ID)
	other.Friends = addToSet(other.Friends, self.ID)
	return StatusFriends, nil
}

// Decline drops a pending request from other. Declining when nothing is
// pending is an idempotent no-op.
func Decline(self, other *entity.Account) (Status, error) {
	if self.ID == other.ID {
		return "", errorvalues.ErrSelfTarget
	}
	self.RequestsReceived = pull(self.RequestsReceived, other.ID)
	other.RequestsSent = pull(other.RequestsSent, self.ID)
	return StatusNone, nil
}

// Remove ends a friendship from both sides. Removing a non-friend is an
// idempotent no-op.
func Remove(self, other *entity.Account) (Status, error) {
	if self.ID == other.ID {
		return "", errorvalues.ErrSelfTarget
	}
	self.Friends = pull(self.Friends, other.ID)
	other.Friends = pull(other.Friends, self.ID)
	return StatusNone, nil
}

func contains(set []uuid.UUID, id uuid.UUID) bool {
	for _, x := range set {
		if x == id {
			return true
		}
	}
	return false
}

func addToSet(set []uuid.UUID, id uuid.UUID) []uuid.UUID {
	if contains(set, id) {
		return set
	}
	return append(set, id)
}

func pull(set []uuid.UUID, id uuid.UUID) []uuid.UUID {
	result := set[:0]
	for _, x := range set {
		if x != id {
			result = append(result, x)
		}
	}
	return result
}
