package frame

import (
	"errors"
	"fmt"
	"log"

	"github.com/Carmen-Shannon/legion/common"
	"github.com/Carmen-Shannon/legion/engine/camera"
	"github.com/Carmen-Shannon/legion/engine/config"
	"github.com/Carmen-Shannon/legion/engine/overlay"
	"github.com/Carmen-Shannon/legion/engine/projection"
	"github.com/Carmen-Shannon/legion/engine/transform"
	"github.com/Carmen-Shannon/legion/engine/world"
	"github.com/go-gl/mathgl/mgl32"
)

// BackgroundColor is cleared to while no level is loaded.
var BackgroundColor = common.Color{R: 76, G: 88, B: 68, A: 255}

// State is the orchestrator's level state.
type State int

const (
	OutOfLevel State = iota
	InLevel
)

func (s State) String() string {
	switch s {
	case OutOfLevel:
		return "out of level"
	case InLevel:
		return "in level"
	default:
		return "unknown"
	}
}

// Device is the draw API a frame is recorded through. renderer.Renderer satisfies it.
type Device interface {
	BeginFrame() error
	EndFrame() error
	ClearColor(c common.Color)
	ClearBuffers()
	Viewport(x, y, width, height int)
	DepthRange(near, far float32)
	RenderTargetDimensions() (int, int)
	LoadMatrix(mode common.MatrixMode, m mgl32.Mat4)
	BindMaterial(name string)
	DrawPrimitives(kind common.PrimitiveType, vertices []common.Vertex) error
	SwapBuffers()
}

// Scene is the world-state the world pass reads. world.World satisfies it.
type Scene interface {
	Player() *world.Player
	Entities() []common.AnnotatedEntity
	DrawWorld(drawer world.Drawer, frustum *common.Frustum) (int, error)
}

// UI draws the screen-space UI pass. The projection is an orthographic pixel
// projection over the whole render target when DrawUI is called.
type UI interface {
	DrawUI(device Device, state State, target common.Rect) error
}

// Stats describes the last frame.
type Stats struct {
	State        State
	TerrainCells int
	Markers      int
	PeakDepth    int
}

// Orchestrator runs one frame per Update: the world pass with the overlay inside it, then the UI pass.
type Orchestrator interface {
	common.Manager

	// State returns whether a level is loaded.
	//
	// Returns:
	//   - State: the current state
	State() State

	// RenderWorldFullscreen makes the world pass cover the whole render target, re-read every frame.
	RenderWorldFullscreen()

	// RenderWorldInRect confines the world pass to rect.
	//
	// Parameters:
	//   - rect: the viewport rectangle in pixels, origin top-left
	RenderWorldInRect(rect common.Rect)

	// Viewport returns the world pass viewport as of the last frame.
	//
	// Returns:
	//   - common.Viewport: the viewport
	Viewport() common.Viewport

	// Frustum returns the frustum of the last world pass, or nil outside a level.
	//
	// Returns:
	//   - *common.Frustum: the frustum
	Frustum() *common.Frustum

	// Stack returns the transform stack frames are drawn with.
	//
	// Returns:
	//   - transform.Stack: the stack
	Stack() transform.Stack

	// LastFrame returns statistics of the last frame.
	//
	// Returns:
	//   - Stats: the statistics
	LastFrame() Stats
}

// orchestrator is the implementation of Orchestrator.
type orchestrator struct {
	device     Device
	scene      Scene
	source     config.Source
	overlay    overlay.Renderer
	integrator camera.Integrator
	projector  projection.Builder
	stack      transform.Stack
	ui         UI

	state    State
	viewport common.Viewport
	frustum  *common.Frustum
	last     Stats
}

var _ Orchestrator = &orchestrator{}

// NewOrchestrator creates an Orchestrator drawing scene through device. The world pass starts fullscreen.
//
// Parameters:
//   - device: the draw API
//   - scene: the world-state provider
//   - options: functional options to configure the orchestrator
//
// Returns:
//   - Orchestrator: the orchestrator
func NewOrchestrator(device Device, scene Scene, options ...OrchestratorBuilderOption) Orchestrator {
	o := &orchestrator{
		device:   device,
		scene:    scene,
		source:   config.Static(config.Default()),
		viewport: common.Viewport{Fullscreen: true},
	}
	for _, opt := range options {
		opt(o)
	}
	if o.overlay == nil {
		o.overlay = overlay.NewRenderer(overlay.WithConfigSource(o.source))
	}
	if o.integrator == nil {
		o.integrator = camera.NewIntegrator()
	}
	if o.projector == nil {
		o.projector = projection.NewBuilder()
	}
	if o.stack == nil {
		o.stack = transform.NewStack(transform.WithSink(device))
	}
	return o
}

func (o *orchestrator) Name() string {
	return "Frame"
}

func (o *orchestrator) Init() error {
	if o.device == nil || o.scene == nil {
		return errors.New("frame: orchestrator needs a device and a scene")
	}
	return nil
}

func (o *orchestrator) LevelInit(firstCall bool) (common.LevelStatus, error) {
	if p := o.scene.Player(); p == nil || p.Camera == nil {
		return common.LevelFailed, fmt.Errorf("frame level init: %w", camera.ErrNoCamera)
	}
	o.state = InLevel
	log.Printf("[Frame] %s", o.state)
	return common.LevelFinished, nil
}

func (o *orchestrator) Update(dt float32) error {
	o.last = Stats{State: o.state}
	if o.state == OutOfLevel {
		return o.run(BackgroundColor, nil)
	}

	player := o.scene.Player()
	if player == nil || player.Camera == nil {
		panic(fmt.Errorf("frame update: %w", camera.ErrNoCamera))
	}
	o.integrator.Advance(player.Camera, dt)
	return o.run(common.ColorBlack, func() error {
		return o.balanced(func() error { return o.worldPass(player.Camera) })
	})
}

func (o *orchestrator) LevelShutdown(firstCall bool) common.LevelStatus {
	o.state = OutOfLevel
	o.frustum = nil
	log.Printf("[Frame] %s", o.state)
	return common.LevelFinished
}

func (o *orchestrator) Shutdown() {}

func (o *orchestrator) State() State {
	return o.state
}

func (o *orchestrator) RenderWorldFullscreen() {
	o.viewport.Fullscreen = true
}

func (o *orchestrator) RenderWorldInRect(rect common.Rect) {
	o.viewport = common.Viewport{Rect: rect}
}

func (o *orchestrator) Viewport() common.Viewport {
	return o.viewport
}

func (o *orchestrator) Frustum() *common.Frustum {
	return o.frustum
}

func (o *orchestrator) Stack() transform.Stack {
	return o.stack
}

func (o *orchestrator) LastFrame() Stats {
	return o.last
}

// run records one frame: clear, the optional world pass, then the UI pass.
// The frame is ended and presented even when a pass fails.
func (o *orchestrator) run(clear common.Color, worldPass func() error) error {
	if err := o.device.BeginFrame(); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	o.device.ClearColor(clear)
	o.device.ClearBuffers()

	var err error
	if worldPass != nil {
		err = worldPass()
	}
	if err == nil && o.ui != nil {
		err = o.balanced(o.uiPass)
	}

	if endErr := o.device.EndFrame(); endErr != nil {
		err = errors.Join(err, fmt.Errorf("end frame: %w", endErr))
	}
	o.device.SwapBuffers()
	return err
}

// balanced runs pass and panics with transform.ErrUnbalanced if it changed any stack depth.
func (o *orchestrator) balanced(pass func() error) error {
	before := o.stack.Depths()
	o.stack.ResetPeak()
	err := pass()
	o.stack.Check(before)
	o.last.PeakDepth = max(o.last.PeakDepth, o.stack.PeakDepth())
	return err
}

func (o *orchestrator) worldPass(state *camera.State) error {
	release := o.stack.Scope(transform.AllChannels...)
	defer release()
	o.stack.LoadIdentity(common.MatrixModel)

	if o.viewport.Fullscreen {
		w, h := o.device.RenderTargetDimensions()
		o.viewport.Rect = common.Rect{Width: w, Height: h}
	}
	vp := o.viewport.Rect
	o.device.DepthRange(0, 1)
	o.device.Viewport(vp.X, vp.Y, vp.Width, vp.Height)

	fov := common.Coalesce(o.source.Config().Render.FOV, projection.DefaultFOV)
	proj := o.projector.Perspective(vp.Width, vp.Height, fov)
	view := projection.BuildView(state)
	o.stack.LoadMatrix(common.MatrixProjection, proj)
	o.stack.LoadMatrix(common.MatrixView, view)

	frustum := common.ExtractFrustumFromMatrix(o.stack.Combined())
	o.frustum = &frustum

	cells, err := o.scene.DrawWorld(o.device, &frustum)
	o.last.TerrainCells = cells
	if err != nil {
		return fmt.Errorf("world pass: %w", err)
	}

	markers, err := o.overlay.Draw(o.device, o.stack, state, o.scene.Entities(), o.viewport)
	o.last.Markers = len(markers)
	if err != nil {
		return fmt.Errorf("overlay pass: %w", err)
	}
	return nil
}

func (o *orchestrator) uiPass() error {
	w, h := o.device.RenderTargetDimensions()

	release := o.stack.Scope(transform.AllChannels...)
	defer release()
	for _, mode := range transform.AllChannels {
		o.stack.LoadIdentity(mode)
	}
	o.stack.LoadMatrix(common.MatrixProjection, o.projector.Orthographic(w, h))
	o.device.Viewport(0, 0, w, h)

	if err := o.ui.DrawUI(o.device, o.state, common.Rect{Width: w, Height: h}); err != nil {
		return fmt.Errorf("ui pass: %w", err)
	}
	return nil
}
