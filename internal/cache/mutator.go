package cache

import (
	"context"
	"time"

	"placenet/internal/common"
)

// DefaultTimeout bounds a mutation's network call. A hung call past the
// deadline is treated as a failure and rolled back.
const DefaultTimeout = 30 * time.Second

// Invalidator is a secondary derived cache (aggregate metrics and the like)
// that is not safe to update optimistically and is invalidated after a
// successful mutation instead.
type Invalidator interface {
	Invalidate()
}

// Mutation describes one mutating action against a collection.
type Mutation[T any] struct {
	// Apply transforms the cached value as if the mutation already
	// succeeded.
	Apply func(T) T
	// Call issues the mutation to the server.
	Call func(ctx context.Context) error
	// Idempotent marks delete-like mutations for which a not_found
	// rejection means the work was already done; it is treated as success
	// rather than failure.
	Idempotent bool
}

// Mutator runs mutations against a collection under the synchronization
// protocol.
type Mutator[T any] struct {
	collection  *Collection[T]
	secondaries []Invalidator
	timeout     time.Duration
}

func NewMutator[T any](collection *Collection[T], timeout time.Duration, secondaries ...Invalidator) *Mutator[T] {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Mutator[T]{collection: collection, secondaries: secondaries, timeout: timeout}
}

// Do executes the mutation protocol:
//
//  1. snapshot the cached value
//  2. apply the optimistic transform
//  3. issue the bounded network call
//  4. on success, invalidate secondary caches; the primary is not refetched
//  5. on failure, restore the snapshot exactly
//  6. on settle, mark the primary stale for the next natural revalidation
func (m *Mutator[T]) Do(ctx context.Context, mut Mutation[T]) error {
	snapshot := m.collection.snapshot()
	if mut.Apply != nil {
		m.collection.apply(mut.Apply)
	}

	callCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var err error
	if mut.Call != nil {
		err = mut.Call(callCtx)
	}
	if err != nil && mut.Idempotent && common.Is(err, common.CodeNotFound) {
		err = nil
	}

	if err != nil {
		m.collection.restore(snapshot)
	} else {
		for _, secondary := range m.secondaries {
			secondary.Invalidate()
		}
	}
	m.collection.MarkStale()
	return err
}
