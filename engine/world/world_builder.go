package world

import (
	"github.com/Carmen-Shannon/legion/common"
	"github.com/Carmen-Shannon/legion/engine/camera"
	"github.com/Carmen-Shannon/legion/engine/config"
)

// WorldBuilderOption is a functional option for configuring a World.
type WorldBuilderOption func(*world)

// WithConfigSource sets the configuration the world reads level settings and movement speeds from.
//
// Parameters:
//   - source: the configuration source
//
// Returns:
//   - WorldBuilderOption: option function to apply
func WithConfigSource(source config.Source) WorldBuilderOption {
	return func(w *world) {
		if source != nil {
			w.source = source
		}
	}
}

// WithTerrainLoader replaces the default image heightmap loader.
//
// Parameters:
//   - loader: the terrain loader
//
// Returns:
//   - WorldBuilderOption: option function to apply
func WithTerrainLoader(loader TerrainLoader) WorldBuilderOption {
	return func(w *world) {
		w.loader = loader
	}
}

// WithSlots shares a camera slot arena with other owners of camera-bearing entities.
func WithSlots(slots *camera.Slots) WorldBuilderOption {
	return func(w *world) {
		w.slots = slots
	}
}

// WithEntities replaces DefaultEntities as the set spawned at level init.
//
// Parameters:
//   - entities: the entities to spawn
//
// Returns:
//   - WorldBuilderOption: option function to apply
func WithEntities(entities []common.AnnotatedEntity) WorldBuilderOption {
	return func(w *world) {
		w.spawn = entities
	}
}

// WithLoadWorkers sets the minimum number of terrain loading workers.
func WithLoadWorkers(n int) WorldBuilderOption {
	return func(w *world) {
		w.loadWorkers = n
	}
}
