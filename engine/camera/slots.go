package camera

import "fmt"

// Slots owns camera states for camera-bearing entities, indexed by entity id.
// A slot is filled when an entity spawns with a camera and emptied when it is destroyed.
type Slots struct {
	states []*State
	active int
}

// NewSlots creates an arena with room for capacity entity ids. It grows on demand.
//
// Parameters:
//   - capacity: the initial number of slots
//
// Returns:
//   - *Slots: the empty arena
func NewSlots(capacity int) *Slots {
	return &Slots{states: make([]*State, max(capacity, 0))}
}

// Acquire allocates a camera for entity id.
//
// Parameters:
//   - id: the entity id (must be non-negative)
//   - options: options applied to the new state
//
// Returns:
//   - *State: the new camera
//   - error: if id is negative or already has a camera
func (s *Slots) Acquire(id int, options ...StateBuilderOption) (*State, error) {
	if id < 0 {
		return nil, fmt.Errorf("acquire camera slot %d: negative id", id)
	}
	if id >= len(s.states) {
		grown := make([]*State, id+1)
		copy(grown, s.states)
		s.states = grown
	}
	if s.states[id] != nil {
		return nil, fmt.Errorf("acquire camera slot %d: already in use", id)
	}
	st := NewState(options...)
	s.states[id] = st
	s.active++
	return st, nil
}

// Release frees entity id's camera. Releasing an empty slot does nothing.
//
// Parameters:
//   - id: the entity id
func (s *Slots) Release(id int) {
	if id < 0 || id >= len(s.states) || s.states[id] == nil {
		return
	}
	s.states[id] = nil
	s.active--
}

// Get returns entity id's camera.
//
// Parameters:
//   - id: the entity id
//
// Returns:
//   - *State: the camera, or nil
//   - bool: true if the entity has a camera
func (s *Slots) Get(id int) (*State, bool) {
	if id < 0 || id >= len(s.states) || s.states[id] == nil {
		return nil, false
	}
	return s.states[id], true
}

// MustGet returns entity id's camera and panics with ErrNoCamera if it has none.
//
// Parameters:
//   - id: the entity id
//
// Returns:
//   - *State: the camera
func (s *Slots) MustGet(id int) *State {
	st, ok := s.Get(id)
	if !ok {
		panic(fmt.Errorf("camera slot %d: %w", id, ErrNoCamera))
	}
	return st
}

// Len returns the number of allocated cameras.
func (s *Slots) Len() int {
	return s.active
}
