package model

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// State is the lifecycle controller's position in the load/unload
// cycle.
type State int

const (
	StateIdle State = iota // no model resident
	StateLoading
	StateReady
	StateActive // a validation task is running
	StateCooling
	StateUnloading
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateLoading:
		return "LOADING"
	case StateReady:
		return "READY"
	case StateActive:
		return "ACTIVE"
	case StateCooling:
		return "COOLING"
	case StateUnloading:
		return "UNLOADING"
	default:
		return "UNKNOWN"
	}
}

// Observer receives every state transition, synchronously. Observers
// must be fast and must not call back into the controller.
type Observer func(State)

// DefaultCooldown is how long the controller keeps an inactive model
// loaded before releasing it.
const DefaultCooldown = 60 * time.Second

// ControllerConfig configures a lifecycle controller.
type ControllerConfig struct {
	Client   Client
	ModelID  string        // model id passed to LoadModel
	Cooldown time.Duration // idle window before unload (default 60s)
	Logger   *slog.Logger
}

// Controller owns the shared model resource. It guarantees at most one
// in-flight load across concurrent callers, releases the model after a
// cooldown with no new requests, and keeps at most one cooldown timer
// outstanding.
type Controller struct {
	client   Client
	modelID  string
	cooldown time.Duration
	logger   *slog.Logger

	// loadSem serializes the load decision and the unload path. A
	// weighted semaphore rather than a plain mutex: acquisition is
	// context-aware and FIFO, so queued callers are serviced in
	// arrival order.
	loadSem *semaphore.Weighted

	mu            sync.Mutex
	state         State
	cooldownTimer *time.Timer
	observers     []Observer
}

// NewController creates a lifecycle controller in the IDLE state.
func NewController(cfg *ControllerConfig) (*Controller, error) {
	if cfg == nil || cfg.Client == nil {
		return nil, fmt.Errorf("model client is required")
	}
	cooldown := cfg.Cooldown
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		client:   cfg.Client,
		modelID:  cfg.ModelID,
		cooldown: cooldown,
		logger:   logger,
		loadSem:  semaphore.NewWeighted(1),
		state:    StateIdle,
	}, nil
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers an observer for state transitions.
func (c *Controller) Subscribe(obs Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, obs)
}

// setState transitions and notifies observers. Callers hold c.mu.
func (c *Controller) setState(next State) {
	if c.state == next {
		return
	}
	prev := c.state
	c.state = next
	c.logger.Debug("model lifecycle transition", "from", prev.String(), "to", next.String())
	for _, obs := range c.observers {
		obs(next)
	}
}

// cancelCooldownLocked stops any pending cooldown timer. Callers hold c.mu.
func (c *Controller) cancelCooldownLocked() {
	if c.cooldownTimer != nil {
		c.cooldownTimer.Stop()
		c.cooldownTimer = nil
	}
}

// RequestValidation guarantees the model is loaded, runs task, and
// starts the idle cooldown regardless of the task's outcome.
//
// Request activity resets the idle-out logic: any pending cooldown
// timer is canceled before the load decision. Load failures restore
// IDLE and return the error; the next request simply retries.
func (c *Controller) RequestValidation(ctx context.Context, task func(context.Context) error) error {
	c.mu.Lock()
	c.cancelCooldownLocked()
	c.mu.Unlock()

	if err := c.loadSem.Acquire(ctx, 1); err != nil {
		return err
	}

	c.mu.Lock()
	// A cooldown may have started while we queued on the semaphore.
	c.cancelCooldownLocked()
	needLoad := c.state == StateIdle || c.state == StateUnloading
	if needLoad {
		c.setState(StateLoading)
	}
	c.mu.Unlock()

	if needLoad {
		if err := c.client.LoadModel(ctx, c.modelID); err != nil {
			c.mu.Lock()
			c.setState(StateIdle)
			c.mu.Unlock()
			c.loadSem.Release(1)
			return fmt.Errorf("load model %q: %w", c.modelID, err)
		}
		c.mu.Lock()
		c.setState(StateReady)
		c.mu.Unlock()
	}
	c.loadSem.Release(1)

	c.mu.Lock()
	c.setState(StateActive)
	c.mu.Unlock()

	taskErr := task(ctx)

	c.startCooldown()
	return taskErr
}

// startCooldown moves to COOLING and arms the single cooldown timer,
// replacing any previous one.
func (c *Controller) startCooldown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setState(StateCooling)
	c.cancelCooldownLocked()
	c.cooldownTimer = time.AfterFunc(c.cooldown, c.cooldownExpired)
}

// cooldownExpired runs when the idle window elapses. If any request
// activity interrupted the cooldown the unload is skipped.
func (c *Controller) cooldownExpired() {
	// A request holding or waiting on the semaphore wins: skip the
	// unload entirely rather than racing its load.
	if !c.loadSem.TryAcquire(1) {
		return
	}
	defer c.loadSem.Release(1)

	c.mu.Lock()
	if c.state != StateCooling {
		c.mu.Unlock()
		return
	}
	c.setState(StateUnloading)
	c.mu.Unlock()

	err := c.client.UnloadModel(context.Background())

	c.mu.Lock()
	if err != nil {
		c.logger.Warn("model unload failed", "error", err)
	}
	c.setState(StateIdle)
	c.mu.Unlock()
}

// Unload releases the model immediately, from any state. Pending
// cooldowns are canceled first. Unloading from IDLE is a no-op.
func (c *Controller) Unload(ctx context.Context) error {
	c.mu.Lock()
	c.cancelCooldownLocked()
	c.mu.Unlock()

	if err := c.loadSem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer c.loadSem.Release(1)

	c.mu.Lock()
	if c.state == StateIdle {
		c.mu.Unlock()
		return nil
	}
	c.setState(StateUnloading)
	c.mu.Unlock()

	err := c.client.UnloadModel(ctx)

	c.mu.Lock()
	c.setState(StateIdle)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("unload model: %w", err)
	}
	return nil
}
