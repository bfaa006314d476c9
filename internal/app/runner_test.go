package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kantin-next/internal/config"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeService struct {
	name     string
	startErr error
	exitNow  bool

	mu      sync.Mutex
	stopLog *[]string
	quit    chan struct{}
	once    sync.Once
}

func newFakeService(name string, stopLog *[]string) *fakeService {
	return &fakeService{name: name, stopLog: stopLog, quit: make(chan struct{})}
}

func (f *fakeService) Name() string { return f.name }

func (f *fakeService) Start(ctx context.Context) error {
	if f.exitNow {
		return f.startErr
	}
	select {
	case <-ctx.Done():
	case <-f.quit:
	}
	return nil
}

func (f *fakeService) Stop(context.Context) error {
	f.mu.Lock()
	*f.stopLog = append(*f.stopLog, f.name)
	f.mu.Unlock()
	f.once.Do(func() { close(f.quit) })
	return nil
}

func TestRunnerStopsInReverseOrderOnFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	var stopped []string
	api := newFakeService("api", &stopped)
	sweeper := newFakeService("cart-sweeper", &stopped)
	broken := newFakeService("worker", &stopped)
	broken.exitNow = true
	broken.startErr = errors.New("redis unreachable")

	runner := &Runner{}
	runner.Add(api)
	runner.Add(sweeper)
	runner.Add(nil)
	runner.Add(broken)
	require.Equal(t, []string{"api", "cart-sweeper", "worker"}, runner.Names())

	err := runner.Run(context.Background(), time.Second, nil)
	require.ErrorContains(t, err, "redis unreachable")
	require.Equal(t, []string{"worker", "cart-sweeper", "api"}, stopped)
}

func TestRunnerTreatsCancelAsCleanShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	var stopped []string
	runner := &Runner{}
	runner.Add(newFakeService("api", &stopped))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx, time.Second, nil) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop after cancel")
	}
	require.Equal(t, []string{"api"}, stopped)
}

func TestRunnerWithoutServices(t *testing.T) {
	require.Error(t, (&Runner{}).Run(context.Background(), time.Second, nil))
}

func TestAssembleValidatesModeBeforeWiring(t *testing.T) {
	_, err := Assemble(nil, ModeAll)
	require.Error(t, err)

	_, err = Assemble(&config.Config{}, "cron")
	require.ErrorContains(t, err, `unknown mode "cron"`)

	_, err = Assemble(&config.Config{}, ModeWorker)
	require.ErrorContains(t, err, "queue.enabled")
}
