package keylock_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"shoporders/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocker_SerializesSameKey(t *testing.T) {
	l := keylock.New()
	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup

	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(t.Context(), "order-1")
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			n := inside.Add(1)
			for {
				current := maxInside.Load()
				if n <= current || maxInside.CompareAndSwap(current, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside.Load())
	assert.Equal(t, 0, l.Len())
}

func TestLocker_DifferentKeysDoNotContend(t *testing.T) {
	l := keylock.New()

	unlockA, err := l.Lock(t.Context(), "order-a")
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(t.Context(), time.Second)
	defer cancel()

	unlockB, err := l.Lock(ctx, "order-b")
	require.NoError(t, err)
	unlockB()
}

func TestLocker_ContextCancellation(t *testing.T) {
	l := keylock.New()

	unlock, err := l.Lock(t.Context(), "order-1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()

	_, err = l.Lock(ctx, "order-1")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	assert.Equal(t, 0, l.Len())
}

func TestLocker_UnlockIsIdempotent(t *testing.T) {
	l := keylock.New()

	unlock, err := l.Lock(t.Context(), "order-1")
	require.NoError(t, err)
	unlock()
	unlock()

	unlock, err = l.Lock(t.Context(), "order-1")
	require.NoError(t, err)
	unlock()
	assert.Equal(t, 0, l.Len())
}
