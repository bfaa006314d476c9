package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestCartSweeperRunsUntilStopped(t *testing.T) {
	defer goleak.VerifyNone(t)

	var calls atomic.Int32
	sweeper := NewCartSweeper(5*time.Millisecond, func() int {
		calls.Add(1)
		return 0
	})

	done := make(chan error, 1)
	go func() { done <- sweeper.Start(context.Background()) }()

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, time.Millisecond)
	require.NoError(t, sweeper.Stop(context.Background()))
	require.NoError(t, sweeper.Stop(context.Background()))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not return after Stop")
	}
}

func TestCartSweeperReturnsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	sweeper := NewCartSweeper(time.Hour, func() int { return 0 })
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sweeper.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not return after cancel")
	}
}
