package world

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/legion/common"
	"github.com/Carmen-Shannon/legion/engine/camera"
	"github.com/Carmen-Shannon/legion/engine/config"
	"github.com/go-gl/mathgl/mgl32"
)

// PlayerID is the entity id of the local player.
const PlayerID = 0

var (
	// LookAtTarget is the point the player camera faces when a level starts.
	LookAtTarget = mgl32.Vec3{512, 512, 0}
	// LookAtDirection is the initial view direction, normalized on use.
	LookAtDirection = mgl32.Vec3{1, 1, -0.5}
	// LookAtDistance is how far from LookAtTarget the player starts.
	LookAtDistance float32 = 1024
)

// DefaultEntities are spawned into every level.
var DefaultEntities = []common.AnnotatedEntity{
	{ID: 1, Origin: mgl32.Vec3{256, 256, 50}, Name: "Enemy1", Hostile: true},
	{ID: 2, Origin: mgl32.Vec3{512, 512, 50}, Name: "Enemy2", Hostile: true},
	{ID: 3, Origin: mgl32.Vec3{128, 128, 50}, Name: "Ally1", Hostile: false},
}

// Player is the camera-bearing local player.
type Player struct {
	ID         int
	Camera     *camera.State
	Controller camera.Controller
}

// World is the world-state provider: it owns the terrain, the player and the annotated entities of the current level.
type World interface {
	common.Manager

	// Player returns the local player, or nil outside a level.
	//
	// Returns:
	//   - *Player: the local player
	Player() *Player

	// Entities returns a copy of the annotated entities of the current level.
	//
	// Returns:
	//   - []common.AnnotatedEntity: the entities
	Entities() []common.AnnotatedEntity

	// Terrain returns the loaded terrain, or nil outside a level.
	//
	// Returns:
	//   - Terrain: the terrain
	Terrain() Terrain

	// DrawWorld draws the terrain of the current level. It is a no-op outside a level.
	//
	// Parameters:
	//   - drawer: the draw API to emit through
	//   - frustum: the world pass frustum used for culling, or nil
	//
	// Returns:
	//   - int: the number of terrain cells submitted
	//   - error: an error if drawing failed
	DrawWorld(drawer Drawer, frustum *common.Frustum) (int, error)
}

type loadResult struct {
	terrain Terrain
	err     error
}

// world is the implementation of the World interface.
type world struct {
	mu sync.RWMutex

	source config.Source
	loader TerrainLoader
	slots  *camera.Slots
	spawn  []common.AnnotatedEntity

	loadPool    worker.DynamicWorkerPool
	poolReady   bool
	loadWorkers int
	loadTaskID  int
	pending     chan loadResult
	terrainPath string

	terrain  Terrain
	player   *Player
	entities []common.AnnotatedEntity
}

var _ World = &world{}

// NewWorld creates a World. Terrain loading runs on a worker pool created in Init.
//
// Parameters:
//   - options: functional options to configure the world
//
// Returns:
//   - World: the world
func NewWorld(options ...WorldBuilderOption) World {
	w := &world{
		source: config.Static(config.Default()),
		spawn:  DefaultEntities,
	}
	for _, opt := range options {
		opt(w)
	}
	if w.loader == nil {
		w.loader = NewTerrainLoader()
	}
	if w.slots == nil {
		w.slots = camera.NewSlots(1)
	}
	return w
}

func (w *world) Name() string {
	return "World"
}

func (w *world) Init() error {
	w.loadWorkers = max(w.loadWorkers, w.source.Config().Level.LoadWorkers, 1)
	w.loadPool = worker.NewDynamicWorkerPool(w.loadWorkers, 256, 1*time.Second)
	w.poolReady = true
	return nil
}

func (w *world) LevelInit(firstCall bool) (common.LevelStatus, error) {
	if firstCall {
		if !w.poolReady {
			return common.LevelFailed, fmt.Errorf("world: LevelInit before Init")
		}
		w.startLoad()
		return common.LevelNotFinished, nil
	}

	if w.pending == nil {
		return common.LevelFinished, nil
	}

	var res loadResult
	select {
	case res = <-w.pending:
		w.pending = nil
	default:
		return common.LevelNotFinished, nil
	}

	if res.err != nil {
		log.Printf("[World] level init failed: %v", res.err)
		return common.LevelFailed, res.err
	}

	if err := w.populate(res.terrain); err != nil {
		return common.LevelFailed, err
	}
	log.Printf("[World] level ready: %d entities, player at %v", len(w.entities), w.player.Camera.Origin)
	return common.LevelFinished, nil
}

// startLoad submits the terrain load to the pool. The result is collected by later LevelInit polls.
func (w *world) startLoad() {
	lvl := w.source.Config().Level
	settings := TerrainSettings{Cell: lvl.TerrainCell, Height: lvl.TerrainHeight, Smooth: lvl.TerrainSmooth}

	result := make(chan loadResult, 1)
	w.pending = result
	w.terrainPath = lvl.TerrainPath
	w.loadTaskID++
	w.loadPool.SubmitTask(worker.Task{
		ID: w.loadTaskID,
		Do: func() (any, error) {
			t, err := w.loader.Load(lvl.TerrainPath, settings)
			result <- loadResult{terrain: t, err: err}
			return t, err
		},
	})
}

// populate installs the loaded terrain, the entities and the player.
func (w *world) populate(t Terrain) error {
	state, err := w.slots.Acquire(PlayerID, camera.WithLookAt(LookAtTarget, LookAtDirection, LookAtDistance))
	if err != nil {
		return fmt.Errorf("spawn player: %w", err)
	}

	entities := make([]common.AnnotatedEntity, len(w.spawn))
	for i, e := range w.spawn {
		e.Name = common.TruncateName(e.Name, common.MaxNameLength)
		entities[i] = e
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.terrain = t
	w.entities = entities
	w.player = &Player{
		ID:         PlayerID,
		Camera:     state,
		Controller: camera.NewController(state, camera.WithConfigSource(w.source)),
	}
	return nil
}

func (w *world) Update(dt float32) error {
	return nil
}

func (w *world) LevelShutdown(firstCall bool) common.LevelStatus {
	if !firstCall {
		return common.LevelFinished
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.player != nil {
		w.slots.Release(w.player.ID)
		w.player = nil
	}
	w.entities = nil
	w.terrain = nil
	w.pending = nil
	// the next level re-reads the heightmap
	w.loader.Evict(w.terrainPath)
	return common.LevelFinished
}

func (w *world) Shutdown() {
	log.Printf("[World] shutdown")
}

func (w *world) Player() *Player {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.player
}

func (w *world) Entities() []common.AnnotatedEntity {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]common.AnnotatedEntity(nil), w.entities...)
}

func (w *world) Terrain() Terrain {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.terrain
}

func (w *world) DrawWorld(drawer Drawer, frustum *common.Frustum) (int, error) {
	t := w.Terrain()
	if t == nil {
		return 0, nil
	}
	return t.Draw(drawer, frustum)
}
