package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio/portfolio-cms/internal/challenge"
)

type countingSweeper struct {
	calls atomic.Int32
	err   error
}

func (s *countingSweeper) DeleteExpired(ctx context.Context) (int64, error) {
	s.calls.Add(1)
	return 1, s.err
}

func TestSweepJob(t *testing.T) {
	t.Run("creates job with correct interval", func(t *testing.T) {
		job := NewSweepJob(5 * time.Minute)

		assert.NotNil(t, job)
		assert.Equal(t, 5*time.Minute, job.interval)
	})

	t.Run("sweeps on start and on every tick", func(t *testing.T) {
		s := &countingSweeper{}
		job := NewSweepJob(10 * time.Millisecond)
		job.Register("challenges", s)

		job.Start()
		require.Eventually(t, func() bool { return s.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
		job.Stop()
	})

	t.Run("keeps running after a failing target", func(t *testing.T) {
		bad := &countingSweeper{err: errors.New("boom")}
		good := &countingSweeper{}
		job := NewSweepJob(10 * time.Millisecond)
		job.Register("bad", bad)
		job.Register("good", good)

		job.Start()
		require.Eventually(t, func() bool { return good.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
		job.Stop()
		assert.GreaterOrEqual(t, bad.calls.Load(), int32(2))
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		job := NewSweepJob(time.Hour)
		job.Start()
		job.Stop()
		job.Stop()
	})

	t.Run("purges expired challenges from the memory store", func(t *testing.T) {
		store := challenge.NewMemoryStore()
		ctx := context.Background()
		require.NoError(t, store.Put(ctx, challenge.Record{
			Identity:  "owner@example.com",
			CodeHash:  "hash",
			ExpiresAt: time.Now().Add(-time.Minute),
		}, time.Minute))
		require.Equal(t, 1, store.Len())

		job := NewSweepJob(time.Hour)
		job.Register("challenges", store)
		job.Start()
		require.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
		job.Stop()
	})
}
