package main

import (
	"log"

	"github.com/Carmen-Shannon/legion/common"
	"github.com/Carmen-Shannon/legion/engine/config"
	"github.com/Carmen-Shannon/legion/engine/frame"
	"github.com/Carmen-Shannon/legion/engine/world"
)

// playerSource is the part of world.World the bindings steer.
type playerSource interface {
	Player() *world.Player
}

// viewportControl is the part of frame.Orchestrator the R key switches.
type viewportControl interface {
	Viewport() common.Viewport
	RenderWorldFullscreen()
	RenderWorldInRect(rect common.Rect)
}

// renderTarget reports the size the inset rectangle is derived from.
type renderTarget interface {
	RenderTargetDimensions() (int, int)
}

var toggles = map[uint32]string{
	common.KeyE: "cl_esp",
	common.KeyB: "cl_esp_box",
	common.KeyL: "cl_esp_line",
}

// bindings turns key events into movement intents, variable toggles and viewport switches.
type bindings struct {
	store    *config.Store
	players  playerSource
	viewport viewportControl
	target   renderTarget
}

var _ viewportControl = frame.Orchestrator(nil)

func newBindings(store *config.Store, players playerSource, viewport viewportControl, target renderTarget) *bindings {
	return &bindings{store: store, players: players, viewport: viewport, target: target}
}

func (b *bindings) keyDown(key uint32) {
	switch key {
	case common.KeyW, common.KeyUp:
		if p := b.players.Player(); p != nil {
			p.Controller.BeginForward()
		}
	case common.KeyS, common.KeyDown:
		if p := b.players.Player(); p != nil {
			p.Controller.BeginBack()
		}
	case common.KeyR:
		b.switchViewport()
	default:
		if name, ok := toggles[key]; ok {
			on, err := b.store.Toggle(name)
			if err != nil {
				log.Printf("[Input] %v", err)
				return
			}
			log.Printf("[Input] %s %t", name, on)
		}
	}
}

func (b *bindings) keyUp(key uint32) {
	p := b.players.Player()
	if p == nil {
		return
	}
	switch key {
	case common.KeyW, common.KeyUp:
		p.Controller.EndForward()
	case common.KeyS, common.KeyDown:
		p.Controller.EndBack()
	}
}

// switchViewport alternates between fullscreen and the centered half of the render target.
func (b *bindings) switchViewport() {
	if !b.viewport.Viewport().Fullscreen {
		b.viewport.RenderWorldFullscreen()
		return
	}
	w, h := b.target.RenderTargetDimensions()
	b.viewport.RenderWorldInRect(common.Rect{X: w / 4, Y: h / 4, Width: w / 2, Height: h / 2})
}
