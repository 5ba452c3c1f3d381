package friendship_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/friendship"
	"github.com/limbo/momentum/pkg/entity"
)

func newPair() (*entity.Account, *entity.Account) {
	return &entity.Account{ID: uuid.New(), Username: "alice"},
		&entity.Account{ID: uuid.New(), Username: "bob"}
}

// assertSymmetric checks both pair invariants for a and b.
func assertSymmetric(t *testing.T, a, b *entity.Account) {
	t.Helper()
	assert.Equal(t, has(a.Friends, b.ID), has(b.Friends, a.ID))
	assert.Equal(t, has(a.RequestsSent, b.ID), has(b.RequestsReceived, a.ID))
	assert.Equal(t, has(a.RequestsReceived, b.ID), has(b.RequestsSent, a.ID))
	if has(a.Friends, b.ID) {
		assert.False(t, has(a.RequestsSent, b.ID))
		assert.False(t, has(a.RequestsReceived, b.ID))
	}
}

func has(set []uuid.UUID, id uuid.UUID) bool {
	for _, x := range set {
		if x == id {
			return true
		}
	}
	return false
}

func TestRequest(t *testing.T) {
	t.Run("from none", func(t *testing.T) {
		a, b := newPair()
		status, err := friendship.Request(a, b)
		require.NoError(t, err)
		assert.Equal(t, friendship.StatusRequestSent, status)
		assert.True(t, has(a.RequestsSent, b.ID))
		assert.True(t, has(b.RequestsReceived, a.ID))
		assertSymmetric(t, a, b)
	})
	t.Run("repeated request is a no-op", func(t *testing.T) {
		a, b := newPair()
		_, err := friendship.Request(a, b)
		require.NoError(t, err)
		status, err := friendship.Request(a, b)
		require.NoError(t, err)
		assert.Equal(t, friendship.StatusRequestSent, status)
		assert.Len(t, a.RequestsSent, 1)
		assert.Len(t, b.RequestsReceived, 1)
	})
	t.Run("mutual request auto-accepts", func(t *testing.T) {
		a, b := newPair()
		_, err := friendship.Request(b, a)
		require.NoError(t, err)
		status, err := friendship.Request(a, b)
		require.NoError(t, err)
		assert.Equal(t, friendship.StatusFriends, status)
		assert.True(t, has(a.Friends, b.ID))
		assert.True(t, has(b.Friends, a.ID))
		assert.Empty(t, a.RequestsSent)
		assert.Empty(t, a.RequestsReceived)
		assert.Empty(t, b.RequestsSent)
		assert.Empty(t, b.RequestsReceived)
		assertSymmetric(t, a, b)
	})
	t.Run("request while already friends is a no-op", func(t *testing.T) {
		a, b := newPair()
		a.Friends = []uuid.UUID{b.ID}
		b.Friends = []uuid.UUID{a.ID}
		status, err := friendship.Request(a, b)
		require.NoError(t, err)
		assert.Equal(t, friendship.StatusFriends, status)
		assert.Empty(t, a.RequestsSent)
		assertSymmetric(t, a, b)
	})
	t.Run("self target", func(t *testing.T) {
		a, _ := newPair()
		_, err := friendship.Request(a, a)
		assert.ErrorIs(t, err, errorvalues.ErrSelfTarget)
	})
}

func TestAccept(t *testing.T) {
	t.Run("pending request becomes friendship", func(t *testing.T) {
		a, b := newPair()
		_, err := friendship.Request(a, b)
		require.NoError(t, err)
		status, err := friendship.Accept(b, a)
		require.NoError(t, err)
		assert.Equal(t, friendship.StatusFriends, status)
		assert.True(t, has(a.Friends, b.ID))
		assert.True(t, has(b.Friends, a.ID))
		assert.Empty(t, a.RequestsSent)
		assert.Empty(t, b.RequestsReceived)
		assertSymmetric(t, a, b)
	})
	t.Run("accept without pending request fails and mutates nothing", func(t *testing.T) {
		a, b := newPair()
		_, err := friendship.Accept(a, b)
		assert.ErrorIs(t, err, errorvalues.ErrNoPendingRequest)
		assert.Empty(t, a.Friends)
		assert.Empty(t, b.Friends)
	})
	t.Run("accept on already friends fails", func(t *testing.T) {
		a, b := newPair()
		_, err := friendship.Request(a, b)
		require.NoError(t, err)
		_, err = friendship.Accept(b, a)
		require.NoError(t, err)
		_, err = friendship.Accept(b, a)
		assert.ErrorIs(t, err, errorvalues.ErrNoPendingRequest)
	})
	t.Run("self target", func(t *testing.T) {
		a, _ := newPair()
		_, err := friendship.Accept(a, a)
		assert.ErrorIs(t, err, errorvalues.ErrSelfTarget)
	})
}

func TestDecline(t *testing.T) {
	t.Run("pending request is dropped on both sides", func(t *testing.T) {
		a, b := newPair()
		_, err := friendship.Request(a, b)
		require.NoError(t, err)
		status, err := friendship.Decline(b, a)
		require.NoError(t, err)
		assert.Equal(t, friendship.StatusNone, status)
		assert.Empty(t, a.RequestsSent)
		assert.Empty(t, b.RequestsReceived)
		assertSymmetric(t, a, b)
	})
	t.Run("decline without pending request is a no-op", func(t *testing.T) {
		a, b := newPair()
		status, err := friendship.Decline(a, b)
		require.NoError(t, err)
		assert.Equal(t, friendship.StatusNone, status)
	})
}

func TestRemove(t *testing.T) {
	t.Run("friendship removed on both sides", func(t *testing.T) {
		a, b := newPair()
		a.Friends = []uuid.UUID{b.ID}
		b.Friends = []uuid.UUID{a.ID}
		status, err := friendship.Remove(a, b)
		require.NoError(t, err)
		assert.Equal(t, friendship.StatusNone, status)
		assert.Empty(t, a.Friends)
		assert.Empty(t, b.Friends)
		assertSymmetric(t, a, b)
	})
	t.Run("removing a non-friend is a no-op", func(t *testing.T) {
		a, b := newPair()
		status, err := friendship.Remove(a, b)
		require.NoError(t, err)
		assert.Equal(t, friendship.StatusNone, status)
	})
	t.Run("unrelated friendships survive removal", func(t *testing.T) {
		a, b := newPair()
		c := uuid.New()
		a.Friends = []uuid.UUID{c, b.ID}
		b.Friends = []uuid.UUID{a.ID}
		_, err := friendship.Remove(a, b)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{c}, a.Friends)
	})
}

// Full lifecycle: request, accept, remove.
func TestPairLifecycle(t *testing.T) {
	a, b := newPair()

	status, err := friendship.Request(a, b)
	require.NoError(t, err)
	assert.Equal(t, friendship.StatusRequestSent, status)
	assert.True(t, has(a.RequestsSent, b.ID))
	assert.True(t, has(b.RequestsReceived, a.ID))
	assertSymmetric(t, a, b)

	status, err = friendship.Accept(b, a)
	require.NoError(t, err)
	assert.Equal(t, friendship.StatusFriends, status)
	assert.Empty(t, a.RequestsSent)
	assert.Empty(t, b.RequestsReceived)
	assertSymmetric(t, a, b)

	status, err = friendship.Remove(a, b)
	require.NoError(t, err)
	assert.Equal(t, friendship.StatusNone, status)
	assert.Empty(t, a.Friends)
	assert.Empty(t, b.Friends)
	assertSymmetric(t, a, b)
}

// Symmetry holds after arbitrary operation sequences.
func TestSymmetryAcrossSequences(t *testing.T) {
	ops := []func(x, y *entity.Account) error{
		func(x, y *entity.Account) error { _, err := friendship.Request(x, y); return err },
		func(x, y *entity.Account) error { _, err := friendship.Accept(x, y); return err },
		func(x, y *entity.Account) error { _, err := friendship.Decline(x, y); return err },
		func(x, y *entity.Account) error { _, err := friendship.Remove(x, y); return err },
	}
	// deterministic walk over op/direction combinations
	for seed := 0; seed < len(ops)*len(ops)*len(ops); seed++ {
		a, b := newPair()
		n := seed
		for step := 0; step < 3; step++ {
			op := ops[n%len(ops)]
			n /= len(ops)
			self, other := a, b
			if (seed+step)%2 == 1 {
				self, other = b, a
			}
			// NoPendingRequest is an allowed failure; state must stay valid
			_ = op(self, other)
			assertSymmetric(t, a, b)
		}
	}
}
