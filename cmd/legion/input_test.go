package main

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/legion/common"
	"github.com/Carmen-Shannon/legion/engine/camera"
	"github.com/Carmen-Shannon/legion/engine/config"
	"github.com/Carmen-Shannon/legion/engine/frame"
	"github.com/Carmen-Shannon/legion/engine/renderer"
	"github.com/Carmen-Shannon/legion/engine/world"
	"github.com/go-gl/mathgl/mgl32"
)

type fixedPlayer struct {
	player *world.Player
}

func (f *fixedPlayer) Player() *world.Player { return f.player }

type fakeViewport struct {
	vp common.Viewport
}

func (f *fakeViewport) Viewport() common.Viewport { return f.vp }
func (f *fakeViewport) RenderWorldFullscreen() { f.vp = common.Viewport{Fullscreen: true} }
func (f *fakeViewport) RenderWorldInRect(rect common.Rect) { f.vp = common.Viewport{Rect: rect} }

type fixedTarget struct{}

func (fixedTarget) RenderTargetDimensions() (int, int) { return 800, 600 }

func newTestBindings() (*bindings, *config.Store, *world.Player, *fakeViewport) {
	store := config.NewStore(config.Default())
	state := camera.NewState()
	player := &world.Player{Camera: state, Controller: camera.NewController(state, camera.WithConfigSource(store))}
	vp := &fakeViewport{vp: common.Viewport{Fullscreen: true}}
	return newBindings(store, &fixedPlayer{player: player}, vp, fixedTarget{}), store, player, vp
}

func TestMovementKeys(t *testing.T) {
	b, store, player, _ := newTestBindings()
	speed := store.Config().Camera.ForwardSpeed

	b.keyDown(common.KeyW)
	if got := player.Camera.Velocity; got != (mgl32.Vec3{speed, 0, 0}) {
		t.Errorf("velocity after W = %v", got)
	}
	b.keyDown(common.KeyUp)
	if got := player.Camera.Velocity; got != (mgl32.Vec3{speed, 0, 0}) {
		t.Errorf("Up while W held changed velocity to %v", got)
	}
	b.keyUp(common.KeyW)
	b.keyDown(common.KeyDown)
	if got := player.Camera.Velocity; got != (mgl32.Vec3{-store.Config().Camera.BackwardSpeed, 0, 0}) {
		t.Errorf("velocity after Down = %v", got)
	}
	b.keyUp(common.KeyS)
	if got := player.Camera.Velocity; got != (mgl32.Vec3{}) {
		t.Errorf("velocity after release = %v", got)
	}
}

func TestMovementWithoutPlayer(t *testing.T) {
	b, _, _, _ := newTestBindings()
	b.players = &fixedPlayer{}
	b.keyDown(common.KeyW)
	b.keyUp(common.KeyW)
}

func TestToggleKeys(t *testing.T) {
	b, store, _, _ := newTestBindings()

	b.keyDown(common.KeyE)
	if !store.Config().Overlay.Enabled {
		t.Error("E did not enable the overlay")
	}
	b.keyDown(common.KeyB)
	b.keyDown(common.KeyL)
	if cfg := store.Config().Overlay; cfg.Box || cfg.Line {
		t.Errorf("B/L did not toggle: %+v", cfg)
	}
	b.keyDown(common.KeyE)
	if store.Config().Overlay.Enabled {
		t.Error("second E did not disable the overlay")
	}
}

func TestViewportKey(t *testing.T) {
	b, _, _, vp := newTestBindings()

	b.keyDown(common.KeyR)
	if want := (common.Rect{X: 200, Y: 150, Width: 400, Height: 300}); vp.vp.Fullscreen || vp.vp.Rect != want {
		t.Errorf("viewport = %+v, want inset %+v", vp.vp, want)
	}
	b.keyDown(common.KeyR)
	if !vp.vp.Fullscreen {
		t.Error("second R did not restore fullscreen")
	}
}

func TestLoadStoreSets(t *testing.T) {
	store, err := loadStore(options{sets: []string{"cl_esp=1", "r_fov = 75"}, terrain: "maps/heights.png"})
	if err != nil {
		t.Fatal(err)
	}
	cfg := store.Config()
	if !cfg.Overlay.Enabled || cfg.Render.FOV != 75 || cfg.Level.TerrainPath != "maps/heights.png" {
		t.Errorf("config = %+v", cfg)
	}

	if _, err := loadStore(options{sets: []string{"cl_esp"}}); err == nil {
		t.Error("accepted --set without a value")
	}
	if _, err := loadStore(options{sets: []string{"sv_cheats=1"}}); !errors.Is(err, config.ErrUnknownVariable) {
		t.Errorf("err = %v, want ErrUnknownVariable", err)
	}
}

func TestHUD(t *testing.T) {
	backend := renderer.NewHeadlessBackend()
	r := renderer.NewRenderer(renderer.BackendTypeHeadless, renderer.NewHeadlessSurface(800, 600), renderer.WithBackend(backend))
	h := newHUD()
	target := common.Rect{Width: 800, Height: 600}

	for _, tc := range []struct {
		state frame.State
		want  int
	}{
		{frame.InLevel, 4},
		{frame.OutOfLevel, 8},
	} {
		if err := r.BeginFrame(); err != nil {
			t.Fatal(err)
		}
		if err := h.DrawUI(r, tc.state, target); err != nil {
			t.Fatalf("%s: %v", tc.state, err)
		}
		if err := r.EndFrame(); err != nil {
			t.Fatal(err)
		}
		if got := backend.LastFrame().VertexCount(); got != tc.want {
			t.Errorf("%s: vertices = %d, want %d", tc.state, got, tc.want)
		}
	}
}
