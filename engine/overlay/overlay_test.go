package overlay

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/legion/common"
	"github.com/Carmen-Shannon/legion/engine/camera"
	"github.com/Carmen-Shannon/legion/engine/config"
	"github.com/Carmen-Shannon/legion/engine/projection"
	"github.com/Carmen-Shannon/legion/engine/transform"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type recordedDraw struct {
	kind     common.PrimitiveType
	vertices []common.Vertex
}

type recordingDrawer struct {
	material string
	draws    []recordedDraw
	labels   []string
	failDraw error
}

func (d *recordingDrawer) BindMaterial(name string) {
	d.material = name
}

func (d *recordingDrawer) DrawPrimitives(kind common.PrimitiveType, vertices []common.Vertex) error {
	if d.failDraw != nil {
		return d.failDraw
	}
	d.draws = append(d.draws, recordedDraw{kind: kind, vertices: append([]common.Vertex(nil), vertices...)})
	return nil
}

func (d *recordingDrawer) DrawText(_ mgl32.Vec2, _ common.Color, text string) error {
	d.labels = append(d.labels, text)
	return nil
}

func near(a, b, tol float32) bool {
	return math32.Abs(a-b) <= tol
}

func enabledSource(mutate func(*config.Config)) config.Source {
	cfg := config.Default()
	cfg.Overlay.Enabled = true
	if mutate != nil {
		mutate(&cfg)
	}
	return config.Static(cfg)
}

func viewport(w, h int) common.Viewport {
	return common.Viewport{Rect: common.Rect{Width: w, Height: h}, Fullscreen: true}
}

func TestProjectStraightAhead(t *testing.T) {
	p := NewProjector()
	state := camera.NewState()

	got, ok := p.Project(state, mgl32.Vec3{100, 0, 0}, 800, 600)
	if !ok {
		t.Fatal("point straight ahead was rejected")
	}
	if !near(got.X(), 400, 1e-3) || !near(got.Y(), 300, 1e-3) {
		t.Errorf("Project = %v, want (400, 300)", got)
	}
}

func TestProjectLeftOfCenter(t *testing.T) {
	p := NewProjector()
	state := camera.NewState()

	got, ok := p.Project(state, mgl32.Vec3{100, 50, 0}, 800, 600)
	if !ok {
		t.Fatal("point was rejected")
	}
	if got.X() >= 400 {
		t.Errorf("x = %v, want left of center for +Y at zero yaw", got.X())
	}
	if !near(got.Y(), 300, 1e-3) {
		t.Errorf("y = %v, want 300", got.Y())
	}
}

func TestProjectAbove(t *testing.T) {
	p := NewProjector()
	state := camera.NewState()

	got, ok := p.Project(state, mgl32.Vec3{100, 0, 30}, 800, 600)
	if !ok {
		t.Fatal("point was rejected")
	}
	if got.Y() >= 300 {
		t.Errorf("y = %v, want above center", got.Y())
	}
}

func TestProjectRejects(t *testing.T) {
	p := NewProjector()
	state := camera.NewState()

	cases := map[string]mgl32.Vec3{
		"behind":   {-10, 0, 0},
		"too near": {0.5, 0, 0},
		"origin":   {0, 0, 0},
	}
	for name, point := range cases {
		if _, ok := p.Project(state, point, 800, 600); ok {
			t.Errorf("%s: point %v was accepted", name, point)
		}
	}
}

func TestProjectMonotonicInLateralOffset(t *testing.T) {
	p := NewProjector()
	state := camera.NewState()

	prev := math32.Inf(-1)
	for y := float32(60); y >= -60; y -= 10 {
		got, ok := p.Project(state, mgl32.Vec3{200, y, 0}, 800, 600)
		if !ok {
			t.Fatalf("point at y=%v rejected", y)
		}
		if got.X() <= prev {
			t.Fatalf("screen x not increasing: %v after %v at y=%v", got.X(), prev, y)
		}
		prev = got.X()
	}
}

func TestProjectMonotonicAlongUp(t *testing.T) {
	p := NewProjector()
	state := camera.NewState(
		camera.WithOrigin(mgl32.Vec3{30, -40, 12}),
		camera.WithAngles(common.Angles{Pitch: 15, Yaw: 30}),
	)
	forward, _, up := state.Basis()

	prev := math32.Inf(1)
	for k := float32(-60); k <= 60; k += 10 {
		point := state.Origin.Add(forward.Mul(200)).Add(up.Mul(k))
		got, ok := p.Project(state, point, 800, 600)
		if !ok {
			t.Fatalf("point at up offset %v rejected", k)
		}
		if got.Y() >= prev {
			t.Fatalf("screen y not decreasing: %v after %v at up offset %v", got.Y(), prev, k)
		}
		prev = got.Y()
	}
}

func TestProjectRejectsBehindAtAnyAngle(t *testing.T) {
	p := NewProjector()

	cases := []struct {
		name   string
		angles common.Angles
		right  float32
		up     float32
	}{
		{"pitched down", common.Angles{Pitch: 35}, 0, 0},
		{"pitched up", common.Angles{Pitch: -50}, 20, -10},
		{"yawed", common.Angles{Yaw: 120}, -30, 0},
		{"yawed and pitched", common.Angles{Pitch: 20, Yaw: -75}, 40, 40},
		{"rolled", common.Angles{Pitch: -10, Yaw: 200, Roll: 45}, 10, 25},
	}
	for _, tc := range cases {
		state := camera.NewState(camera.WithOrigin(mgl32.Vec3{5, 5, 5}), camera.WithAngles(tc.angles))
		forward, right, up := state.Basis()
		point := state.Origin.Sub(forward.Mul(50)).Add(right.Mul(tc.right)).Add(up.Mul(tc.up))
		if _, ok := p.Project(state, point, 800, 600); ok {
			t.Errorf("%s: point behind the camera at %v was accepted", tc.name, point)
		}
	}
}

func TestProjectMatchesMatrixPipeline(t *testing.T) {
	p := NewProjector()
	state := camera.NewState(
		camera.WithOrigin(mgl32.Vec3{10, -20, 5}),
		camera.WithAngles(common.Angles{Pitch: 15, Yaw: 40}),
	)
	const size = 512
	combined := projection.BuildPerspective(size, size, p.FOV()).Mul4(projection.BuildView(state))
	forward, right, up := state.Basis()

	points := []mgl32.Vec3{
		state.Origin.Add(forward.Mul(300)),
		state.Origin.Add(forward.Mul(300)).Add(right.Mul(3)),
		state.Origin.Add(forward.Mul(300)).Add(up.Mul(-4)),
	}
	for _, point := range points {
		got, ok := p.Project(state, point, size, size)
		if !ok {
			t.Fatalf("point %v rejected", point)
		}
		ndc := mgl32.TransformCoordinate(point, combined)
		want := mgl32.Vec2{(ndc.X()*0.5 + 0.5) * size, (0.5 - ndc.Y()*0.5) * size}
		if !near(got.X(), want.X(), 0.5) || !near(got.Y(), want.Y(), 0.5) {
			t.Errorf("point %v: projector %v, matrix pipeline %v", point, got, want)
		}
	}
}

func TestWithFOVIgnoresInvalid(t *testing.T) {
	if got := NewProjector(WithFOV(0)).FOV(); got != projection.DefaultFOV {
		t.Errorf("FOV = %v, want default", got)
	}
	if got := NewProjector(WithFOV(60)).FOV(); got != 60 {
		t.Errorf("FOV = %v, want 60", got)
	}
}

func TestDrawDisabledEmitsNothing(t *testing.T) {
	r := NewRenderer(WithConfigSource(config.Static(config.Default())))
	d := &recordingDrawer{}
	stack := transform.NewStack()

	markers, err := r.Draw(d, stack, camera.NewState(), []common.AnnotatedEntity{{Origin: mgl32.Vec3{100, 0, 0}, Hostile: true}}, viewport(800, 600))
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if len(markers) != 0 || len(d.draws) != 0 || d.material != "" {
		t.Errorf("disabled overlay drew: markers=%d draws=%d material=%q", len(markers), len(d.draws), d.material)
	}
}

func TestDrawBoxAndLine(t *testing.T) {
	r := NewRenderer(WithConfigSource(enabledSource(nil)))
	d := &recordingDrawer{}
	stack := transform.NewStack()
	before := stack.Depths()

	entities := []common.AnnotatedEntity{
		{ID: 1, Origin: mgl32.Vec3{100, 0, 0}, Name: "Enemy1", Hostile: true},
		{ID: 2, Origin: mgl32.Vec3{100, 10, 0}, Name: "Ally1", Hostile: false},
		{ID: 3, Origin: mgl32.Vec3{-100, 0, 0}, Name: "Enemy2", Hostile: true},
	}
	markers, err := r.Draw(d, stack, camera.NewState(), entities, viewport(800, 600))
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}

	if stack.Depths() != before {
		t.Errorf("depths = %v after draw, want %v", stack.Depths(), before)
	}
	if d.material != WhiteMaterial {
		t.Errorf("material = %q, want %q", d.material, WhiteMaterial)
	}
	if len(markers) != 1 || markers[0].Entity.ID != 1 {
		t.Fatalf("markers = %+v, want only entity 1", markers)
	}
	if !markers[0].Box || !markers[0].Line || !markers[0].Label {
		t.Errorf("marker flags = %+v, want box, line and label", markers[0])
	}
	if len(d.labels) != 1 || d.labels[0] != "Enemy1" {
		t.Errorf("labels = %v", d.labels)
	}

	if len(d.draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(d.draws))
	}
	draw := d.draws[0]
	if draw.kind != common.PrimitiveLines {
		t.Errorf("kind = %v, want lines", draw.kind)
	}
	if len(draw.vertices) != 10 {
		t.Fatalf("vertices = %d, want 8 box + 2 line", len(draw.vertices))
	}
	for i, v := range draw.vertices[:8] {
		if v.Color != BoxColor {
			t.Errorf("box vertex %d color = %v", i, v.Color)
		}
	}
	first := draw.vertices[0].Position
	if !near(first.X(), 400-DefaultBoxHalfExtent, 1e-3) || !near(first.Y(), 300-DefaultBoxHalfExtent, 1e-3) {
		t.Errorf("first box corner = %v", first)
	}
	lineStart, lineEnd := draw.vertices[8], draw.vertices[9]
	if lineStart.Color != LineColor || lineEnd.Color != LineColor {
		t.Errorf("line colors = %v, %v", lineStart.Color, lineEnd.Color)
	}
	if lineStart.Position != (mgl32.Vec3{400, 300, 0}) {
		t.Errorf("line start = %v, want viewport center", lineStart.Position)
	}
}

func TestDrawRespectsToggles(t *testing.T) {
	src := enabledSource(func(c *config.Config) {
		c.Overlay.Box = false
		c.Overlay.Label = false
		c.Overlay.BoxHalfExtent = 0
	})
	r := NewRenderer(WithConfigSource(src))
	d := &recordingDrawer{}

	markers, err := r.Draw(d, transform.NewStack(), camera.NewState(),
		[]common.AnnotatedEntity{{Origin: mgl32.Vec3{100, 0, 0}, Name: "Enemy1", Hostile: true}}, viewport(800, 600))
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if len(markers) != 1 || markers[0].Box || !markers[0].Line || markers[0].Label {
		t.Fatalf("markers = %+v", markers)
	}
	if len(d.draws) != 1 || len(d.draws[0].vertices) != 2 {
		t.Fatalf("draws = %+v, want a single line", d.draws)
	}
	if len(d.labels) != 0 {
		t.Errorf("labels = %v, want none", d.labels)
	}
}

func TestDrawCustomBoxSize(t *testing.T) {
	src := enabledSource(func(c *config.Config) {
		c.Overlay.Line = false
		c.Overlay.BoxHalfExtent = 5
	})
	r := NewRenderer(WithConfigSource(src))
	d := &recordingDrawer{}

	if _, err := r.Draw(d, transform.NewStack(), camera.NewState(),
		[]common.AnnotatedEntity{{Origin: mgl32.Vec3{100, 0, 0}, Hostile: true}}, viewport(800, 600)); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if len(d.draws) != 1 || len(d.draws[0].vertices) != 8 {
		t.Fatalf("draws = %+v", d.draws)
	}
	if got := d.draws[0].vertices[2].Position; !near(got.X(), 405, 1e-3) || !near(got.Y(), 295, 1e-3) {
		t.Errorf("second corner = %v, want (405, 295)", got)
	}
}

func TestDrawErrorRestoresStack(t *testing.T) {
	r := NewRenderer(WithConfigSource(enabledSource(nil)))
	failure := errors.New("device lost")
	d := &recordingDrawer{failDraw: failure}
	stack := transform.NewStack()
	before := stack.Depths()

	_, err := r.Draw(d, stack, camera.NewState(),
		[]common.AnnotatedEntity{{Origin: mgl32.Vec3{100, 0, 0}, Hostile: true}}, viewport(800, 600))
	if !errors.Is(err, failure) {
		t.Fatalf("err = %v, want wrapped %v", err, failure)
	}
	if stack.Depths() != before {
		t.Errorf("depths = %v, want %v", stack.Depths(), before)
	}
}

func TestDrawDoesNotMutateInputs(t *testing.T) {
	r := NewRenderer(WithConfigSource(enabledSource(nil)))
	state := camera.NewState(camera.WithOrigin(mgl32.Vec3{1, 2, 3}), camera.WithAngles(common.Angles{Yaw: 10}))
	snapshot := *state
	entities := []common.AnnotatedEntity{{ID: 7, Origin: mgl32.Vec3{100, 20, 3}, Name: "Enemy1", Hostile: true}}
	entitySnapshot := entities[0]

	if _, err := r.Draw(&recordingDrawer{}, transform.NewStack(), state, entities, viewport(640, 480)); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if *state != snapshot {
		t.Errorf("camera changed: %+v", *state)
	}
	if entities[0] != entitySnapshot {
		t.Errorf("entity changed: %+v", entities[0])
	}
}

// lineDrawer has no DrawText.
type lineDrawer struct {
	vertices int
}

func (d *lineDrawer) BindMaterial(string) {}

func (d *lineDrawer) DrawPrimitives(_ common.PrimitiveType, vertices []common.Vertex) error {
	d.vertices += len(vertices)
	return nil
}

func TestDrawRecordsLabelWithoutTextSupport(t *testing.T) {
	r := NewRenderer(WithConfigSource(enabledSource(nil)))
	d := &lineDrawer{}

	entities := []common.AnnotatedEntity{
		{ID: 1, Origin: mgl32.Vec3{100, 0, 0}, Name: "Enemy1", Hostile: true},
		{ID: 2, Origin: mgl32.Vec3{100, 20, 0}, Hostile: true},
	}
	markers, err := r.Draw(d, transform.NewStack(), camera.NewState(), entities, viewport(800, 600))
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if len(markers) != 2 {
		t.Fatalf("markers = %+v, want 2", markers)
	}
	if !markers[0].Label {
		t.Error("named entity: label not recorded")
	}
	if markers[1].Label {
		t.Error("unnamed entity: label recorded")
	}
	if d.vertices != 20 {
		t.Errorf("vertices = %d, want 20", d.vertices)
	}
}
