package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placenet/internal/common"
)

type item struct {
	ID     string
	Status string
}

func newItemCollection(initial []item) *Collection[[]item] {
	return NewCollection(initial, CloneSlice[item])
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate() { c.calls++ }

func TestDoAppliesOptimisticallyAndKeepsResult(t *testing.T) {
	coll := newItemCollection([]item{{ID: "a", Status: "applied"}})
	secondary := &countingInvalidator{}
	mutator := NewMutator(coll, time.Second, secondary)

	var observedDuringCall []item
	err := mutator.Do(context.Background(), Mutation[[]item]{
		Apply: func(items []item) []item {
			items[0].Status = "screening"
			return items
		},
		Call: func(ctx context.Context) error {
			observedDuringCall = coll.Get()
			return nil
		},
	})
	require.NoError(t, err)

	// The optimistic value is visible while the call is in flight and is
	// kept afterwards rather than refetched.
	require.Len(t, observedDuringCall, 1)
	assert.Equal(t, "screening", observedDuringCall[0].Status)
	assert.Equal(t, "screening", coll.Get()[0].Status)
	assert.Equal(t, 1, secondary.calls)
	assert.True(t, coll.Stale())
}

func TestDoRestoresSnapshotOnFailure(t *testing.T) {
	coll := newItemCollection([]item{{ID: "a", Status: "applied"}, {ID: "b", Status: "interview"}})
	secondary := &countingInvalidator{}
	mutator := NewMutator(coll, time.Second, secondary)

	callErr := common.NewError(common.CodeInvalidTransition, "invalid status transition", nil)
	err := mutator.Do(context.Background(), Mutation[[]item]{
		Apply: func(items []item) []item {
			items[0].Status = "hired"
			return items
		},
		Call: func(ctx context.Context) error { return callErr },
	})
	require.Error(t, err)
	assert.True(t, common.Is(err, common.CodeInvalidTransition))

	// Rollback restores the exact pre-mutation value.
	got := coll.Get()
	require.Len(t, got, 2)
	assert.Equal(t, "applied", got[0].Status)
	assert.Equal(t, "interview", got[1].Status)
	assert.Equal(t, 0, secondary.calls)
	assert.True(t, coll.Stale(), "a failed mutation still marks the collection stale")
}

func TestDoRollbackIsIsolatedFromLaterMutation(t *testing.T) {
	coll := newItemCollection([]item{{ID: "a", Status: "applied"}})
	mutator := NewMutator(coll, time.Second)

	// The optimistic transform mutates the slice it receives in place. The
	// snapshot must not share backing storage with it.
	err := mutator.Do(context.Background(), Mutation[[]item]{
		Apply: func(items []item) []item {
			items[0].Status = "rejected"
			return items
		},
		Call: func(ctx context.Context) error { return errors.New("boom") },
	})
	require.Error(t, err)
	assert.Equal(t, "applied", coll.Get()[0].Status)
}

func TestDoTreatsNotFoundAsSuccessWhenIdempotent(t *testing.T) {
	coll := newItemCollection([]item{{ID: "a", Status: "applied"}})
	secondary := &countingInvalidator{}
	mutator := NewMutator(coll, time.Second, secondary)

	err := mutator.Do(context.Background(), Mutation[[]item]{
		Apply:      func(items []item) []item { return nil },
		Call:       func(ctx context.Context) error { return common.NewError(common.CodeNotFound, "already gone", nil) },
		Idempotent: true,
	})
	require.NoError(t, err)
	assert.Empty(t, coll.Get())
	assert.Equal(t, 1, secondary.calls)
}

func TestDoNotFoundStillFailsWhenNotIdempotent(t *testing.T) {
	coll := newItemCollection([]item{{ID: "a", Status: "applied"}})
	mutator := NewMutator(coll, time.Second)

	err := mutator.Do(context.Background(), Mutation[[]item]{
		Apply: func(items []item) []item { return nil },
		Call:  func(ctx context.Context) error { return common.NewError(common.CodeNotFound, "gone", nil) },
	})
	require.Error(t, err)
	assert.Len(t, coll.Get(), 1)
}

func TestDoBoundsTheCall(t *testing.T) {
	coll := newItemCollection(nil)
	mutator := NewMutator(coll, 10*time.Millisecond)

	err := mutator.Do(context.Background(), Mutation[[]item]{
		Call: func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Second):
				return nil
			}
		},
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRevalidateOnlyWhenStale(t *testing.T) {
	coll := newItemCollection([]item{{ID: "a", Status: "applied"}})

	fetches := 0
	fetch := func() ([]item, error) {
		fetches++
		return []item{{ID: "a", Status: "hired"}}, nil
	}

	require.NoError(t, coll.Revalidate(fetch))
	assert.Equal(t, 0, fetches, "a fresh collection must not refetch")

	coll.MarkStale()
	require.NoError(t, coll.Revalidate(fetch))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "hired", coll.Get()[0].Status)
	assert.False(t, coll.Stale())
}

func TestRevalidateKeepsStaleOnFetchError(t *testing.T) {
	coll := newItemCollection(nil)
	coll.MarkStale()

	err := coll.Revalidate(func() ([]item, error) { return nil, errors.New("offline") })
	require.Error(t, err)
	assert.True(t, coll.Stale())
}

func TestGetReturnsIsolatedCopy(t *testing.T) {
	coll := newItemCollection([]item{{ID: "a", Status: "applied"}})

	got := coll.Get()
	got[0].Status = "tampered"
	assert.Equal(t, "applied", coll.Get()[0].Status)
}
