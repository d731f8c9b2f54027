package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_Every(t *testing.T) {
	s := New(quietLogger(), time.UTC)
	var runs int32
	require.NoError(t, s.Every(time.Second, "tick", func(ctx context.Context) {
		atomic.AddInt32(&runs, 1)
	}))

	s.Start()
	defer func() { _ = s.Stop(context.Background()) }()

	require.Eventually(t, func() bool { return atomic.LoadInt32(&runs) >= 1 }, 3*time.Second, 50*time.Millisecond)
}

func TestScheduler_RejectsBadInput(t *testing.T) {
	s := New(quietLogger(), nil)
	assert.Error(t, s.Every(0, "zero", func(context.Context) {}))
	assert.Error(t, s.Cron("not a spec", "bad", func(context.Context) {}))
	assert.NoError(t, s.Cron("@daily", "daily", func(context.Context) {}))
}

func TestScheduler_StopCancelsRunningJob(t *testing.T) {
	s := New(quietLogger(), time.UTC)
	started := make(chan struct{})
	var cancelled int32
	require.NoError(t, s.Cron("@every 1s", "long", func(ctx context.Context) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-ctx.Done()
		atomic.StoreInt32(&cancelled, 1)
	}))
	s.Start()

	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("job never started")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.Equal(t, int32(1), atomic.LoadInt32(&cancelled))
}

func TestScheduler_RecoversPanics(t *testing.T) {
	s := New(quietLogger(), time.UTC)
	var runs int32
	require.NoError(t, s.Every(time.Second, "panicky", func(context.Context) {
		atomic.AddInt32(&runs, 1)
		panic("boom")
	}))
	s.Start()
	defer func() { _ = s.Stop(context.Background()) }()

	require.Eventually(t, func() bool { return atomic.LoadInt32(&runs) >= 2 }, 4*time.Second, 50*time.Millisecond)
}

func TestScheduler_PanicDoesNotBlockLaterRuns(t *testing.T) {
	s := New(quietLogger(), time.UTC)
	var runs int32
	require.NoError(t, s.Cron("@every 1h", "panicky", func(context.Context) {
		atomic.AddInt32(&runs, 1)
		panic("boom")
	}))
	s.Start()
	defer func() { _ = s.Stop(context.Background()) }()

	for i := 1; i <= 3; i++ {
		require.NoError(t, s.RunNow("panicky"))
		want := int32(i)
		require.Eventually(t, func() bool { return atomic.LoadInt32(&runs) == want }, 2*time.Second, 10*time.Millisecond,
			"run %d was skipped after an earlier panic", i)
	}
}

func TestScheduler_RunNow(t *testing.T) {
	s := New(quietLogger(), time.UTC)
	release := make(chan struct{})
	var runs int32
	require.NoError(t, s.Every(time.Hour, "slow", func(ctx context.Context) {
		atomic.AddInt32(&runs, 1)
		<-release
	}))
	s.Start()

	assert.Error(t, s.RunNow("unknown"))

	require.NoError(t, s.RunNow("slow"))
	require.Eventually(t, func() bool { return atomic.LoadInt32(&runs) == 1 }, 2*time.Second, 10*time.Millisecond)

	// A second trigger while the first is still running is skipped.
	require.NoError(t, s.RunNow("slow"))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&runs))

	close(release)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.Equal(t, int32(1), atomic.LoadInt32(&runs))
}
