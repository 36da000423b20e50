package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testInterval = 10 * time.Millisecond

func TestScheduler_FirstFireAfterInterval(t *testing.T) {
	var fires atomic.Int32
	s := NewScheduler(200*time.Millisecond, func(context.Context) { fires.Add(1) }, nil)

	s.Start(context.Background())
	t.Cleanup(s.Stop)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), fires.Load(), "scheduler fired before the first interval elapsed")

	require.Eventually(t, func() bool { return fires.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_KeepsFiring(t *testing.T) {
	var fires atomic.Int32
	s := NewScheduler(testInterval, func(context.Context) { fires.Add(1) }, nil)

	s.Start(context.Background())
	t.Cleanup(s.Stop)

	require.Eventually(t, func() bool { return fires.Load() >= 3 }, 2*time.Second, testInterval)
}

func TestScheduler_DefaultInterval(t *testing.T) {
	s := NewScheduler(0, func(context.Context) {}, nil)
	assert.Equal(t, defaultPollInterval, s.Interval())
}

func TestScheduler_StopIsIdempotentAndSafeBeforeStart(t *testing.T) {
	var fires atomic.Int32
	s := NewScheduler(testInterval, func(context.Context) { fires.Add(1) }, nil)

	assert.NotPanics(t, func() {
		s.Stop()
		s.Stop()
	})

	s.Start(context.Background())
	time.Sleep(5 * testInterval)
	assert.Equal(t, int32(0), fires.Load(), "Start after Stop must not fire")
}

func TestScheduler_NoFireAfterStopReturns(t *testing.T) {
	var fires atomic.Int32
	s := NewScheduler(testInterval, func(context.Context) { fires.Add(1) }, nil)

	s.Start(context.Background())
	require.Eventually(t, func() bool { return fires.Load() >= 2 }, 2*time.Second, testInterval)

	s.Stop()
	s.Wait()
	after := fires.Load()

	time.Sleep(10 * testInterval)
	assert.Equal(t, after, fires.Load())

	assert.NotPanics(t, s.Stop)
}

func TestScheduler_PanickingTickDoesNotStopLaterTicks(t *testing.T) {
	var fires atomic.Int32
	s := NewScheduler(testInterval, func(context.Context) {
		if fires.Add(1) == 1 {
			panic("boom")
		}
	}, nil)

	s.Start(context.Background())
	t.Cleanup(s.Stop)

	require.Eventually(t, func() bool { return fires.Load() >= 3 }, 2*time.Second, testInterval)
}

func TestScheduler_SlowTicksOverlap(t *testing.T) {
	release := make(chan struct{})
	var running, peak atomic.Int32

	s := NewScheduler(testInterval, func(context.Context) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		<-release
		running.Add(-1)
	}, nil)

	s.Start(context.Background())
	require.Eventually(t, func() bool { return peak.Load() >= 2 }, 2*time.Second, testInterval)

	s.Stop()
	close(release)
	s.Wait()
	assert.Equal(t, int32(0), running.Load())
}

func TestScheduler_ContextCancelStopsTicks(t *testing.T) {
	var fires atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(testInterval, func(context.Context) { fires.Add(1) }, nil)

	s.Start(ctx)
	require.Eventually(t, func() bool { return fires.Load() >= 1 }, 2*time.Second, testInterval)

	cancel()
	s.Stop()
	s.Wait()
	after := fires.Load()
	time.Sleep(5 * testInterval)
	assert.Equal(t, after, fires.Load())
}
