package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Carmen-Shannon/legion/engine"
	"github.com/Carmen-Shannon/legion/engine/config"
	"github.com/Carmen-Shannon/legion/engine/frame"
	"github.com/Carmen-Shannon/legion/engine/overlay"
	"github.com/Carmen-Shannon/legion/engine/renderer"
	"github.com/Carmen-Shannon/legion/engine/window"
	"github.com/Carmen-Shannon/legion/engine/world"
)

type options struct {
	configPath string
	sets       []string
	headless   bool
	frames     int
	dt         float32
	terrain    string
	profile    bool
}

// loadStore builds the live configuration: file and environment, then --terrain and --set overrides.
func loadStore(o options) (*config.Store, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.terrain != "" {
		cfg.Level.TerrainPath = o.terrain
	}
	if o.profile {
		cfg.Render.Profile = true
	}

	store := config.NewStore(cfg)
	for _, kv := range o.sets {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("--set %q: want name=value", kv)
		}
		if err := store.Set(strings.TrimSpace(name), strings.TrimSpace(value)); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func run(ctx context.Context, o options) error {
	store, err := loadStore(o)
	if err != nil {
		return err
	}
	cfg := store.Config()

	var (
		win         window.Window
		surface     renderer.Surface
		backendType = renderer.BackendTypeHeadless
	)
	if o.headless {
		surface = renderer.NewHeadlessSurface(cfg.Window.Width, cfg.Window.Height)
	} else {
		win, err = window.NewWindow(window.WithConfig(cfg.Window))
		if err != nil {
			return err
		}
		surface = win
		backendType = renderer.BackendTypeWGPU
	}

	presentMode := renderer.PresentModeUncapped
	if cfg.Render.VSync {
		presentMode = renderer.PresentModeVSync
	}
	r := renderer.NewRenderer(backendType, surface, renderer.WithPresentMode(presentMode))

	w := world.NewWorld(world.WithConfigSource(store))
	ov := overlay.NewRenderer(
		overlay.WithConfigSource(store),
		overlay.WithProjector(overlay.NewProjector(overlay.WithFOV(cfg.Render.FOV))),
	)
	orch := frame.NewOrchestrator(r, w,
		frame.WithConfigSource(store),
		frame.WithOverlay(ov),
		frame.WithUI(newHUD()),
	)

	engineOptions := []engine.EngineBuilderOption{
		engine.WithManagers(w, orch),
		engine.WithRenderer(r),
		engine.WithProfiling(cfg.Render.Profile),
		engine.WithRenderFrameLimit(cfg.Render.FPSLimit),
	}
	if win != nil {
		engineOptions = append(engineOptions, engine.WithWindow(win))
		keys := newBindings(store, w, orch, r)
		win.SetKeyDownCallback(keys.keyDown)
		win.SetKeyUpCallback(keys.keyUp)
	}
	eng := engine.NewEngine(engineOptions...)

	if err := eng.Init(); err != nil {
		return err
	}
	defer eng.Shutdown()

	go func() {
		<-ctx.Done()
		eng.Quit()
	}()

	// A failed load leaves the orchestrator out of level; frames still run.
	if err := eng.LoadLevel(ctx); err != nil {
		log.Printf("[Engine] %v", err)
	} else if win != nil {
		win.SetTitle(cfg.Window.Title + " - in level")
	}

	if o.frames > 0 {
		return eng.RunFrames(o.frames, o.dt)
	}
	eng.Run()
	return nil
}
