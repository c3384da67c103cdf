package model

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient counts lifecycle calls and can block or fail loads.
type fakeClient struct {
	mu      sync.Mutex
	loads   int
	unloads int
	loaded  bool

	loadErr   error
	loadGate  chan struct{} // when set, LoadModel blocks until closed
	loadBegan chan struct{} // signaled once per LoadModel entry
}

func newFakeClient() *fakeClient {
	return &fakeClient{loadBegan: make(chan struct{}, 16)}
}

func (f *fakeClient) LoadModel(ctx context.Context, id string) error {
	f.loadBegan <- struct{}{}
	if f.loadGate != nil {
		<-f.loadGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.loadErr != nil {
		return f.loadErr
	}
	f.loaded = true
	return nil
}

func (f *fakeClient) UnloadModel(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unloads++
	f.loaded = false
	return nil
}

func (f *fakeClient) IsModelLoaded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded
}

func (f *fakeClient) IsAvailable() bool { return true }

func (f *fakeClient) Infer(ctx context.Context, prompt string, opts InferOptions) (*InferResult, error) {
	return &InferResult{Text: "はい"}, nil
}

func (f *fakeClient) counts() (loads, unloads int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads, f.unloads
}

func newTestController(t *testing.T, client Client, cooldown time.Duration) *Controller {
	t.Helper()
	c, err := NewController(&ControllerConfig{
		Client:   client,
		ModelID:  "test-model",
		Cooldown: cooldown,
	})
	require.NoError(t, err)
	return c
}

func TestRequestValidationLoadsOnce(t *testing.T) {
	fc := newFakeClient()
	c := newTestController(t, fc, time.Hour)

	err := c.RequestValidation(context.Background(), func(ctx context.Context) error {
		return nil
	})
	require.NoError(t, err)

	loads, _ := fc.counts()
	assert.Equal(t, 1, loads)
	assert.Equal(t, StateCooling, c.State())
}

func TestConcurrentRequestsSingleLoad(t *testing.T) {
	fc := newFakeClient()
	fc.loadGate = make(chan struct{})
	c := newTestController(t, fc, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.RequestValidation(context.Background(), func(ctx context.Context) error {
				return nil
			})
		}()
	}

	// Wait until the first caller is inside LoadModel, then let it
	// finish while the second caller is still queued.
	<-fc.loadBegan
	close(fc.loadGate)
	wg.Wait()

	loads, _ := fc.counts()
	assert.Equal(t, 1, loads, "exactly one underlying load across concurrent callers")
}

func TestCooldownUnloadsExactlyOnce(t *testing.T) {
	fc := newFakeClient()
	c := newTestController(t, fc, 20*time.Millisecond)

	require.NoError(t, c.RequestValidation(context.Background(), func(ctx context.Context) error {
		return nil
	}))

	assert.Eventually(t, func() bool {
		_, unloads := fc.counts()
		return unloads == 1
	}, time.Second, 5*time.Millisecond)

	// No second unload after the first.
	time.Sleep(60 * time.Millisecond)
	_, unloads := fc.counts()
	assert.Equal(t, 1, unloads)
	assert.Equal(t, StateIdle, c.State())
}

func TestRequestDuringCooldownCancelsUnload(t *testing.T) {
	fc := newFakeClient()
	c := newTestController(t, fc, 50*time.Millisecond)

	require.NoError(t, c.RequestValidation(context.Background(), func(ctx context.Context) error {
		return nil
	}))
	require.Equal(t, StateCooling, c.State())

	// Second request arrives mid-cooldown: the pending unload must not
	// fire before its task runs.
	var unloadsAtTask int
	require.NoError(t, c.RequestValidation(context.Background(), func(ctx context.Context) error {
		_, unloadsAtTask = fc.counts()
		return nil
	}))
	assert.Equal(t, 0, unloadsAtTask, "unload must not precede the interrupting request's task")

	loads, _ := fc.counts()
	assert.Equal(t, 1, loads, "model stayed loaded across the cooldown interruption")
}

func TestLoadFailureRecovers(t *testing.T) {
	fc := newFakeClient()
	fc.loadErr = errors.New("backend down")
	c := newTestController(t, fc, time.Hour)

	taskRan := false
	err := c.RequestValidation(context.Background(), func(ctx context.Context) error {
		taskRan = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, taskRan, "task must not run after a failed load")
	assert.Equal(t, StateIdle, c.State(), "failed load leaves a recoverable state")

	// The serialization primitive was released: the next request can
	// proceed and retry the load.
	fc.mu.Lock()
	fc.loadErr = nil
	fc.mu.Unlock()
	require.NoError(t, c.RequestValidation(context.Background(), func(ctx context.Context) error {
		return nil
	}))
	loads, _ := fc.counts()
	assert.Equal(t, 2, loads)
}

func TestTaskErrorStillStartsCooldown(t *testing.T) {
	fc := newFakeClient()
	c := newTestController(t, fc, 20*time.Millisecond)

	taskErr := errors.New("validation blew up")
	err := c.RequestValidation(context.Background(), func(ctx context.Context) error {
		return taskErr
	})
	assert.ErrorIs(t, err, taskErr)
	assert.Equal(t, StateCooling, c.State())

	assert.Eventually(t, func() bool {
		_, unloads := fc.counts()
		return unloads == 1
	}, time.Second, 5*time.Millisecond)
}

func TestUnloadFromIdleIsNoop(t *testing.T) {
	fc := newFakeClient()
	c := newTestController(t, fc, time.Hour)

	require.NoError(t, c.Unload(context.Background()))
	_, unloads := fc.counts()
	assert.Zero(t, unloads)
}

func TestUnloadCancelsCooldown(t *testing.T) {
	fc := newFakeClient()
	c := newTestController(t, fc, 30*time.Millisecond)

	require.NoError(t, c.RequestValidation(context.Background(), func(ctx context.Context) error {
		return nil
	}))
	require.NoError(t, c.Unload(context.Background()))
	assert.Equal(t, StateIdle, c.State())

	// The canceled timer must not unload a second time.
	time.Sleep(80 * time.Millisecond)
	_, unloads := fc.counts()
	assert.Equal(t, 1, unloads)
}

func TestObserversSeeEveryTransition(t *testing.T) {
	fc := newFakeClient()
	c := newTestController(t, fc, time.Hour)

	var mu sync.Mutex
	var seen []State
	c.Subscribe(func(s State) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})

	require.NoError(t, c.RequestValidation(context.Background(), func(ctx context.Context) error {
		return nil
	}))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []State{StateLoading, StateReady, StateActive, StateCooling}, seen)
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "IDLE", StateIdle.String())
	assert.Equal(t, "COOLING", StateCooling.String())
	assert.Equal(t, "UNKNOWN", State(99).String())
}

func TestRequestValidationCanceledContext(t *testing.T) {
	fc := newFakeClient()
	c := newTestController(t, fc, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.RequestValidation(ctx, func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
