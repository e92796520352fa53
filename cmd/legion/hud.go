package main

import (
	"github.com/Carmen-Shannon/legion/common"
	"github.com/Carmen-Shannon/legion/engine/frame"
	"github.com/Carmen-Shannon/legion/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

const crosshairSize = 8

// hud is the UI pass: a crosshair in level, a centered panel outline while loading.
type hud struct {
	color common.Color
}

func newHUD() *hud {
	return &hud{color: common.ColorWhite}
}

func (h *hud) DrawUI(device frame.Device, state frame.State, target common.Rect) error {
	c := target.Center()
	device.BindMaterial(material.NameWhite)

	if state == frame.InLevel {
		return device.DrawPrimitives(common.PrimitiveLines, []common.Vertex{
			h.vertex(c[0]-crosshairSize, c[1]), h.vertex(c[0]+crosshairSize, c[1]),
			h.vertex(c[0], c[1]-crosshairSize), h.vertex(c[0], c[1]+crosshairSize),
		})
	}

	hw, hh := float32(target.Width)/6, float32(target.Height)/12
	tl, tr := h.vertex(c[0]-hw, c[1]-hh), h.vertex(c[0]+hw, c[1]-hh)
	br, bl := h.vertex(c[0]+hw, c[1]+hh), h.vertex(c[0]-hw, c[1]+hh)
	return device.DrawPrimitives(common.PrimitiveLines, []common.Vertex{tl, tr, tr, br, br, bl, bl, tl})
}

func (h *hud) vertex(x, y float32) common.Vertex {
	return common.Vertex{Position: mgl32.Vec3{x, y, 0}, Color: h.color}
}
