package world

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/legion/common"
	"github.com/Carmen-Shannon/legion/engine/camera"
	"github.com/Carmen-Shannon/legion/engine/config"
	"github.com/Carmen-Shannon/legion/engine/projection"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type recordingDrawer struct {
	materials []string
	kinds     []common.PrimitiveType
	vertices  int
	fail      error
}

func (d *recordingDrawer) BindMaterial(name string) {
	d.materials = append(d.materials, name)
}

func (d *recordingDrawer) DrawPrimitives(kind common.PrimitiveType, vertices []common.Vertex) error {
	if d.fail != nil {
		return d.fail
	}
	d.kinds = append(d.kinds, kind)
	d.vertices += len(vertices)
	return nil
}

type failingLoader struct{}

func (failingLoader) Load(path string, _ TerrainSettings) (Terrain, error) {
	return nil, errors.Join(ErrTerrainLoad, errors.New("disk on fire"))
}
func (failingLoader) Evict(string) {}

func near(a, b, tol float32) bool {
	return math32.Abs(a-b) <= tol
}

func settings() TerrainSettings {
	return TerrainSettings{Cell: 32, Height: 64}
}

func loadLevel(t *testing.T, w World) (common.LevelStatus, error) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	status, err := w.LevelInit(true)
	for status == common.LevelNotFinished {
		if time.Now().After(deadline) {
			t.Fatal("level init did not finish")
		}
		time.Sleep(time.Millisecond)
		status, err = w.LevelInit(false)
	}
	return status, err
}

func TestFlatHeightfield(t *testing.T) {
	h := NewFlatHeightfield(4, 3, 10)
	cols, rows := h.Size()
	if cols != 4 || rows != 3 {
		t.Fatalf("Size = %d,%d", cols, rows)
	}
	if got := h.Sample(2, 2); got != 0 {
		t.Errorf("Sample = %v, want 0", got)
	}

	d := &recordingDrawer{}
	n, err := h.Draw(d, nil)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if n != 12 || d.vertices != 48 {
		t.Errorf("drew %d cells with %d vertices, want 12 and 48", n, d.vertices)
	}
	if len(d.kinds) != 1 || d.kinds[0] != common.PrimitiveQuads {
		t.Errorf("kinds = %v", d.kinds)
	}
	if len(d.materials) != 1 || d.materials[0] != TerrainMaterial {
		t.Errorf("materials = %v", d.materials)
	}
}

func TestHeightfieldDrawCulls(t *testing.T) {
	h := NewFlatHeightfield(8, 8, 32)
	state := camera.NewState(
		camera.WithOrigin(mgl32.Vec3{-1000, -1000, 100}),
		camera.WithAngles(common.Angles{Yaw: 180}),
	)
	frustum := common.ExtractFrustumFromMatrix(projection.BuildPerspective(800, 600, 90).Mul4(projection.BuildView(state)))

	d := &recordingDrawer{}
	n, err := h.Draw(d, &frustum)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if n != 0 || len(d.kinds) != 0 {
		t.Errorf("drew %d cells facing away from the terrain", n)
	}

	facing := camera.NewState(camera.WithLookAt(mgl32.Vec3{128, 128, 0}, mgl32.Vec3{1, 1, -0.5}, 400))
	frustum = common.ExtractFrustumFromMatrix(projection.BuildPerspective(800, 600, 90).Mul4(projection.BuildView(facing)))
	n, err = h.Draw(d, &frustum)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if n == 0 {
		t.Error("no cells drawn while looking at the terrain")
	}
}

func TestHeightfieldDrawError(t *testing.T) {
	failure := errors.New("device lost")
	_, err := NewFlatHeightfield(2, 2, 1).Draw(&recordingDrawer{fail: failure}, nil)
	if !errors.Is(err, failure) {
		t.Fatalf("err = %v, want wrapped %v", err, failure)
	}
}

func TestHeightfieldFromImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.SetGray(0, 0, color.Gray{Y: 255})
	img.SetGray(2, 1, color.Gray{Y: 255})

	h, err := NewHeightfieldFromImage(img, 10, 100)
	if err != nil {
		t.Fatalf("NewHeightfieldFromImage: %v", err)
	}
	cols, rows := h.Size()
	if cols != 2 || rows != 1 {
		t.Fatalf("Size = %d,%d, want 2,1", cols, rows)
	}
	// image row 0 is the far edge
	if got := h.Sample(0, 1); !near(got, 100, 1e-3) {
		t.Errorf("Sample(0,1) = %v, want 100", got)
	}
	if got := h.Sample(2, 0); !near(got, 100, 1e-3) {
		t.Errorf("Sample(2,0) = %v, want 100", got)
	}
	if got := h.Sample(0, 0); got != 0 {
		t.Errorf("Sample(0,0) = %v, want 0", got)
	}
	if got := h.Sample(-3, 9); !near(got, 100, 1e-3) {
		t.Errorf("Sample clamps: got %v, want 100", got)
	}

	if _, err := NewHeightfieldFromImage(image.NewGray(image.Rect(0, 0, 1, 5)), 10, 1); err == nil {
		t.Error("1px wide image accepted")
	}
}

func TestTerrainLoaderFlatIsCached(t *testing.T) {
	l := NewTerrainLoader()
	first, err := l.Load("", settings())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, err := l.Load("", settings())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if first != second {
		t.Error("flat terrain was not cached")
	}
	l.Evict("")
	third, err := l.Load("", settings())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if third == first {
		t.Error("Evict kept the terrain")
	}
}

func TestTerrainLoaderErrors(t *testing.T) {
	l := NewTerrainLoader()
	cases := map[string]struct {
		path     string
		settings TerrainSettings
	}{
		"unsupported": {path: "maps/testheight.psd", settings: settings()},
		"missing":     {path: filepath.Join(t.TempDir(), "nope.png"), settings: settings()},
		"zero cell":   {path: "", settings: TerrainSettings{}},
	}
	for name, tc := range cases {
		if _, err := l.Load(tc.path, tc.settings); !errors.Is(err, ErrTerrainLoad) {
			t.Errorf("%s: err = %v, want ErrTerrainLoad", name, err)
		}
	}
}

func TestTerrainLoaderPNG(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	path := filepath.Join(t.TempDir(), "height.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	terrain, err := NewTerrainLoader().Load(path, settings())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	hf, ok := terrain.(*Heightfield)
	if !ok {
		t.Fatalf("terrain = %T, want *Heightfield", terrain)
	}
	if cols, rows := hf.Size(); cols != 3 || rows != 3 {
		t.Errorf("Size = %d,%d, want 3,3", cols, rows)
	}
	if got := hf.Sample(1, 1); !near(got, 64, 1e-2) {
		t.Errorf("Sample = %v, want 64", got)
	}
}

func TestWorldLevelLifecycle(t *testing.T) {
	w := NewWorld(WithConfigSource(config.Static(config.Default())))
	if err := w.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer w.Shutdown()

	status, err := loadLevel(t, w)
	if status != common.LevelFinished || err != nil {
		t.Fatalf("LevelInit = %v, %v", status, err)
	}

	p := w.Player()
	if p == nil || p.ID != PlayerID || p.Camera == nil || p.Controller == nil {
		t.Fatalf("player = %+v", p)
	}
	dir := LookAtDirection.Normalize()
	want := LookAtTarget.Sub(dir.Mul(LookAtDistance))
	if got := p.Camera.Origin; !near(got.X(), want.X(), 1e-2) || !near(got.Y(), want.Y(), 1e-2) || !near(got.Z(), want.Z(), 1e-2) {
		t.Errorf("player origin = %v, want %v", got, want)
	}
	if f := p.Camera.Forward(); f.Dot(dir) < 0.9999 {
		t.Errorf("player forward = %v, want %v", f, dir)
	}

	entities := w.Entities()
	if len(entities) != 3 {
		t.Fatalf("entities = %d, want 3", len(entities))
	}
	hostile := 0
	for _, e := range entities {
		if e.Hostile {
			hostile++
		}
	}
	if hostile != 2 {
		t.Errorf("hostile = %d, want 2", hostile)
	}
	entities[0].Name = "changed"
	if w.Entities()[0].Name == "changed" {
		t.Error("Entities returned internal storage")
	}

	d := &recordingDrawer{}
	if n, err := w.DrawWorld(d, nil); err != nil || n != DefaultFlatSize*DefaultFlatSize {
		t.Errorf("DrawWorld = %d, %v", n, err)
	}

	if got := w.LevelShutdown(true); got != common.LevelFinished {
		t.Errorf("LevelShutdown = %v", got)
	}
	if w.Player() != nil || w.Terrain() != nil || len(w.Entities()) != 0 {
		t.Error("level state survived shutdown")
	}
	if n, err := w.DrawWorld(d, nil); n != 0 || err != nil {
		t.Errorf("DrawWorld outside a level = %d, %v", n, err)
	}

	// the player slot is free again, so a second level can start
	if status, err := loadLevel(t, w); status != common.LevelFinished || err != nil {
		t.Fatalf("second LevelInit = %v, %v", status, err)
	}
}

// evictingLoader counts evictions on top of the real loader.
type evictingLoader struct {
	TerrainLoader
	evicted []string
}

func (l *evictingLoader) Evict(path string) {
	l.evicted = append(l.evicted, path)
	l.TerrainLoader.Evict(path)
}

func TestWorldLevelShutdownEvictsTerrain(t *testing.T) {
	cfg := config.Default()
	cfg.Level.TerrainPath = ""
	loader := &evictingLoader{TerrainLoader: NewTerrainLoader()}
	w := NewWorld(WithConfigSource(config.Static(cfg)), WithTerrainLoader(loader))
	if err := w.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer w.Shutdown()

	if status, err := loadLevel(t, w); status != common.LevelFinished || err != nil {
		t.Fatalf("LevelInit = %v, %v", status, err)
	}
	first := w.Terrain()
	w.LevelShutdown(true)
	if len(loader.evicted) != 1 || loader.evicted[0] != "" {
		t.Fatalf("evicted = %q, want the level terrain path", loader.evicted)
	}

	if status, err := loadLevel(t, w); status != common.LevelFinished || err != nil {
		t.Fatalf("second LevelInit = %v, %v", status, err)
	}
	if w.Terrain() == first {
		t.Error("second level reused the evicted terrain")
	}
}

func TestWorldLevelInitFailure(t *testing.T) {
	w := NewWorld(WithTerrainLoader(failingLoader{}))
	if err := w.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	status, err := loadLevel(t, w)
	if status != common.LevelFailed {
		t.Fatalf("status = %v, want failed", status)
	}
	if !errors.Is(err, ErrTerrainLoad) {
		t.Errorf("err = %v, want ErrTerrainLoad", err)
	}
	if w.Player() != nil {
		t.Error("player spawned after a failed load")
	}
}

func TestWorldLevelInitBeforeInit(t *testing.T) {
	status, err := NewWorld().LevelInit(true)
	if status != common.LevelFailed || err == nil {
		t.Fatalf("LevelInit = %v, %v", status, err)
	}
}

func TestWorldTruncatesNames(t *testing.T) {
	long := strings.Repeat("x", 40)
	w := NewWorld(WithEntities([]common.AnnotatedEntity{{ID: 9, Name: long, Hostile: true}}))
	if err := w.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if status, err := loadLevel(t, w); status != common.LevelFinished || err != nil {
		t.Fatalf("LevelInit = %v, %v", status, err)
	}
	if got := w.Entities()[0].Name; len(got) != 31 || got != long[:31] {
		t.Errorf("name = %q (%d bytes), want the first 31 bytes", got, len(got))
	}
}
