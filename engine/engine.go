package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/legion/common"
	"github.com/Carmen-Shannon/legion/engine/frame"
	"github.com/Carmen-Shannon/legion/engine/profiler"
	"github.com/Carmen-Shannon/legion/engine/renderer"
	"github.com/Carmen-Shannon/legion/engine/window"
)

// ErrLevelInit is returned by LoadLevel when a manager fails to initialize the level.
var ErrLevelInit = errors.New("engine: level init failed")

// DefaultLevelPollInterval is the pause between polls of a manager that reported LevelNotFinished.
const DefaultLevelPollInterval = 10 * time.Millisecond

// frameStatsSource is implemented by managers that can report per-frame statistics to the profiler.
type frameStatsSource interface {
	LastFrame() frame.Stats
}

// engine implements the Engine interface.
type engine struct {
	managers []common.Manager

	window   window.Window
	renderer renderer.Renderer

	initialized bool
	inLevel     bool

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	profiler         *profiler.Profiler
	profilingEnabled bool

	levelPollInterval time.Duration
	renderFrameLimit  time.Duration // minimum frame duration; 0 = uncapped
}

// Engine owns the ordered manager list and drives it: startup, level load and
// shutdown sequencing, and one Update per manager per frame.
//
// Managers are initialized, level-initialized and updated in registration order,
// and level-shut-down and shut down in reverse order. Frames are run one at a time
// on the calling goroutine.
type Engine interface {
	// Window returns the window frames are presented to, or nil when headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Managers returns the registered managers in order.
	//
	// Returns:
	//   - []common.Manager: a copy of the manager list
	Managers() []common.Manager

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the frame loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Init initializes every manager in order. If one fails, the managers before it are shut down in reverse.
	//
	// Returns:
	//   - error: the wrapped error of the failing manager
	Init() error

	// LoadLevel polls LevelInit on every manager in order until each stops reporting LevelNotFinished.
	// On failure every manager up to and including the failing one is level-shut-down in reverse order.
	//
	// Parameters:
	//   - ctx: cancels the load while a manager is still polling
	//
	// Returns:
	//   - error: nil on success, otherwise an error wrapping ErrLevelInit
	LoadLevel(ctx context.Context) error

	// UnloadLevel level-shuts-down every manager in reverse order. It does nothing outside a level.
	UnloadLevel()

	// InLevel reports whether a level is loaded.
	//
	// Returns:
	//   - bool: true between a successful LoadLevel and UnloadLevel
	InLevel() bool

	// Step runs one frame: Update on every manager in order.
	//
	// Parameters:
	//   - dt: the elapsed time since the previous frame in seconds
	//
	// Returns:
	//   - error: the joined Update errors, or nil
	Step(dt float32) error

	// RunFrames runs n frames with a fixed dt, or fewer if Quit is called. Frame errors are logged.
	//
	// Parameters:
	//   - n: the number of frames
	//   - dt: the delta time passed to every frame
	//
	// Returns:
	//   - error: the first frame error, or nil
	RunFrames(n int, dt float32) error

	// Run runs frames with wall-clock delta times until Quit is called or the window is closed.
	Run()

	// Quit signals the frame loop to stop. Safe to call multiple times.
	Quit()

	// Shutdown unloads the level if one is loaded, then shuts down every manager in reverse order.
	Shutdown()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (managers, window, profiling, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel:       make(chan struct{}),
		profiler:          profiler.NewProfiler(),
		levelPollInterval: DefaultLevelPollInterval,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil && e.renderer != nil {
		e.window.SetResizeCallback(func(width, height int) {
			e.renderer.Resize(width, height)
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Managers() []common.Manager {
	return append([]common.Manager(nil), e.managers...)
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetRenderFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the frame loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) Init() error {
	if e.initialized {
		return nil
	}
	for i, m := range e.managers {
		if err := m.Init(); err != nil {
			for j := i - 1; j >= 0; j-- {
				e.managers[j].Shutdown()
			}
			return fmt.Errorf("init %s: %w", m.Name(), err)
		}
	}
	e.initialized = true
	log.Printf("[Engine] initialized %d managers", len(e.managers))
	return nil
}

func (e *engine) LoadLevel(ctx context.Context) error {
	if e.inLevel {
		e.UnloadLevel()
	}

	for i, m := range e.managers {
		status, err := e.pollLevelInit(ctx, m)
		if status == common.LevelFinished {
			continue
		}

		log.Printf("[Engine] level init failed in %s: %v", m.Name(), err)
		e.shutdownLevel(e.managers[:i+1])
		if err != nil {
			return fmt.Errorf("%s: %w: %w", m.Name(), ErrLevelInit, err)
		}
		return fmt.Errorf("%s: %w", m.Name(), ErrLevelInit)
	}

	e.inLevel = true
	log.Printf("[Engine] level loaded")
	return nil
}

// pollLevelInit calls LevelInit on m until it reports something other than LevelNotFinished.
func (e *engine) pollLevelInit(ctx context.Context, m common.Manager) (common.LevelStatus, error) {
	first := true
	for {
		status, err := m.LevelInit(first)
		first = false
		if status != common.LevelNotFinished {
			return status, err
		}

		select {
		case <-ctx.Done():
			return common.LevelFailed, ctx.Err()
		case <-time.After(e.levelPollInterval):
		}
	}
}

func (e *engine) UnloadLevel() {
	if !e.inLevel {
		return
	}
	e.shutdownLevel(e.managers)
	e.inLevel = false
	log.Printf("[Engine] level unloaded")
}

// shutdownLevel polls LevelShutdown on managers in reverse order.
func (e *engine) shutdownLevel(managers []common.Manager) {
	for i := len(managers) - 1; i >= 0; i-- {
		m := managers[i]
		for first := true; m.LevelShutdown(first) == common.LevelNotFinished; first = false {
			time.Sleep(e.levelPollInterval)
		}
	}
}

func (e *engine) InLevel() bool {
	return e.inLevel
}

func (e *engine) Step(dt float32) error {
	var errs []error
	for _, m := range e.managers {
		if err := m.Update(dt); err != nil {
			errs = append(errs, fmt.Errorf("%s update: %w", m.Name(), err))
		}
	}

	if e.profilingEnabled {
		sample := profiler.Sample{DeltaTime: dt}
		for _, m := range e.managers {
			if src, ok := m.(frameStatsSource); ok {
				stats := src.LastFrame()
				sample.Markers += stats.Markers
				sample.PeakDepth = max(sample.PeakDepth, stats.PeakDepth)
			}
		}
		e.profiler.Tick(sample)
	}

	return errors.Join(errs...)
}

func (e *engine) RunFrames(n int, dt float32) error {
	var first error
	for i := 0; i < n && !e.quitting(); i++ {
		if err := e.Step(dt); err != nil {
			log.Printf("[Engine] frame %d: %v", i, err)
			if first == nil {
				first = err
			}
		}
	}
	return first
}

func (e *engine) Run() {
	last := time.Now()
	tick := func() bool {
		if e.quitting() {
			return false
		}
		start := time.Now()
		dt := float32(start.Sub(last).Seconds())
		last = start

		if err := e.Step(dt); err != nil {
			log.Printf("[Engine] frame: %v", err)
		}

		// Frame rate limiting
		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(start); remaining > 0 {
				time.Sleep(remaining)
			}
		}
		return true
	}

	if e.window == nil {
		for tick() {
		}
		return
	}

	e.window.SetUpdateCallback(func() {
		if !tick() {
			_ = e.window.Close()
		}
	})
	e.window.ProcessMessages()
}

// Quit signals the frame loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// quitting reports whether Quit has been called.
func (e *engine) quitting() bool {
	select {
	case <-e.quitChannel:
		return true
	default:
		return false
	}
}

func (e *engine) Shutdown() {
	e.UnloadLevel()
	if e.initialized {
		for i := len(e.managers) - 1; i >= 0; i-- {
			e.managers[i].Shutdown()
		}
		e.initialized = false
	}
	if e.window != nil && e.window.IsRunning() {
		_ = e.window.Close()
	}
	log.Printf("[Engine] shutdown")
}

// frameDuration converts a frame rate cap into a minimum frame duration. Non-positive rates mean uncapped.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
