package overlay

import (
	"fmt"

	"github.com/Carmen-Shannon/legion/common"
	"github.com/Carmen-Shannon/legion/engine/camera"
	"github.com/Carmen-Shannon/legion/engine/config"
	"github.com/Carmen-Shannon/legion/engine/projection"
	"github.com/Carmen-Shannon/legion/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// WhiteMaterial is the flat material bound for overlay primitives.
	WhiteMaterial = "vgui/white"

	// DefaultBoxHalfExtent is used when the configured box size is zero.
	DefaultBoxHalfExtent float32 = 20
)

var (
	BoxColor   = common.ColorRed
	LineColor  = common.ColorGreen
	LabelColor = common.ColorWhite
)

// Drawer is the part of the draw API the overlay emits through.
type Drawer interface {
	BindMaterial(name string)
	DrawPrimitives(kind common.PrimitiveType, vertices []common.Vertex) error
}

// TextDrawer is implemented by drawers that can place text. Labels are only drawn when the Drawer supports it.
type TextDrawer interface {
	DrawText(position mgl32.Vec2, color common.Color, text string) error
}

// Marker describes what the overlay emitted for a single entity. Label records the
// label intent even when the Drawer cannot place text.
type Marker struct {
	Entity common.AnnotatedEntity
	Screen mgl32.Vec2
	Box    bool
	Line   bool
	Label  bool
}

// Renderer draws screen-space markers over hostile entities.
type Renderer interface {
	// Draw emits the overlay for one viewport. It sets up its own 2D transform scope
	// and leaves every transform channel at the depth it found it.
	// Nothing is drawn while the overlay is disabled. Entities and the camera are never modified.
	//
	// Parameters:
	//   - drawer: the draw API to emit through
	//   - stack: the transform stack shared with the world pass
	//   - state: the camera the entities are projected from
	//   - entities: the entities to consider
	//   - viewport: the viewport being drawn into
	//
	// Returns:
	//   - []Marker: one entry per entity that received a marker
	//   - error: an error if the drawer rejected the primitives
	Draw(drawer Drawer, stack transform.Stack, state *camera.State, entities []common.AnnotatedEntity, viewport common.Viewport) ([]Marker, error)

	// Projector returns the projector used to place markers.
	//
	// Returns:
	//   - Projector: the projector
	Projector() Projector
}

// rendererImpl is the implementation of Renderer.
type rendererImpl struct {
	source    config.Source
	projector Projector
	material  string
}

var _ Renderer = &rendererImpl{}

// NewRenderer creates an overlay Renderer. The overlay toggles are read from the config source on every Draw.
//
// Parameters:
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the overlay renderer
func NewRenderer(options ...RendererBuilderOption) Renderer {
	r := &rendererImpl{
		source:   config.Static(config.Default()),
		material: WhiteMaterial,
	}
	for _, opt := range options {
		opt(r)
	}
	if r.projector == nil {
		r.projector = NewProjector()
	}
	return r
}

func (r *rendererImpl) Draw(drawer Drawer, stack transform.Stack, state *camera.State, entities []common.AnnotatedEntity, viewport common.Viewport) ([]Marker, error) {
	cfg := r.source.Config().Overlay
	if !cfg.Enabled {
		return nil, nil
	}
	if state == nil {
		panic(fmt.Errorf("overlay draw: %w", camera.ErrNoCamera))
	}

	release := stack.Scope(transform.AllChannels...)
	defer release()
	for _, mode := range transform.AllChannels {
		stack.LoadIdentity(mode)
	}
	w, h := viewport.Width, viewport.Height
	stack.LoadMatrix(common.MatrixProjection, projection.BuildOrthographic(w, h))

	drawer.BindMaterial(r.material)
	text, canLabel := drawer.(TextDrawer)

	half := common.Coalesce(cfg.BoxHalfExtent, DefaultBoxHalfExtent)
	center := mgl32.Vec2{float32(w) / 2, float32(h) / 2}

	var vertices []common.Vertex
	var markers []Marker
	for _, e := range entities {
		if !e.Hostile {
			continue
		}
		screen, ok := r.projector.Project(state, e.Origin, w, h)
		if !ok {
			continue
		}

		m := Marker{Entity: e, Screen: screen}
		if cfg.Box {
			vertices = appendBox(vertices, screen, half)
			m.Box = true
		}
		if cfg.Line {
			vertices = append(vertices,
				common.Vertex{Position: mgl32.Vec3{center.X(), center.Y(), 0}, Color: LineColor},
				common.Vertex{Position: mgl32.Vec3{screen.X(), screen.Y(), 0}, Color: LineColor, TexCoord: mgl32.Vec2{1, 1}},
			)
			m.Line = true
		}
		m.Label = cfg.Label && e.Name != ""
		if m.Label && canLabel {
			pos := mgl32.Vec2{screen.X() - half, screen.Y() + half}
			if err := text.DrawText(pos, LabelColor, common.TruncateName(e.Name, common.MaxNameLength)); err != nil {
				return markers, fmt.Errorf("draw label for entity %d: %w", e.ID, err)
			}
		}
		markers = append(markers, m)
	}

	if len(vertices) > 0 {
		if err := drawer.DrawPrimitives(common.PrimitiveLines, vertices); err != nil {
			return markers, fmt.Errorf("draw overlay primitives: %w", err)
		}
	}
	return markers, nil
}

func (r *rendererImpl) Projector() Projector {
	return r.projector
}

// appendBox appends the outline of a square centred on p as four line segments.
func appendBox(dst []common.Vertex, p mgl32.Vec2, half float32) []common.Vertex {
	corners := [4]common.Vertex{
		{Position: mgl32.Vec3{p.X() - half, p.Y() - half, 0}, Color: BoxColor, TexCoord: mgl32.Vec2{0, 0}},
		{Position: mgl32.Vec3{p.X() + half, p.Y() - half, 0}, Color: BoxColor, TexCoord: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec3{p.X() + half, p.Y() + half, 0}, Color: BoxColor, TexCoord: mgl32.Vec2{1, 1}},
		{Position: mgl32.Vec3{p.X() - half, p.Y() + half, 0}, Color: BoxColor, TexCoord: mgl32.Vec2{0, 1}},
	}
	for i := range corners {
		dst = append(dst, corners[i], corners[(i+1)%len(corners)])
	}
	return dst
}
