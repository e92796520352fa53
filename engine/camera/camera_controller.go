package camera

import (
	"github.com/Carmen-Shannon/legion/common"
	"github.com/Carmen-Shannon/legion/engine/config"
)

// Controller turns directional movement intents into velocity changes on a camera.
// Each intent adds or removes speed*forward, using the camera's forward vector and the
// configured speed at the moment of the call.
type Controller interface {
	// BeginForward adds the forward speed along the current forward vector.
	// Repeated calls while already moving forward are ignored.
	BeginForward()

	// EndForward removes the forward speed along the current forward vector.
	// Ignored unless forward movement is active.
	EndForward()

	// BeginBack subtracts the backward speed along the current forward vector.
	// Repeated calls while already moving back are ignored.
	BeginBack()

	// EndBack adds the backward speed back along the current forward vector.
	// Ignored unless backward movement is active.
	EndBack()

	// Active reports which intents are currently held.
	//
	// Returns:
	//   - forward: true between BeginForward and EndForward
	//   - back: true between BeginBack and EndBack
	Active() (forward, back bool)

	// State returns the controlled camera.
	//
	// Returns:
	//   - *State: the camera state
	State() *State
}

// controllerImpl is the implementation of Controller.
type controllerImpl struct {
	state  *State
	source config.Source

	forward bool
	back    bool
}

var _ Controller = &controllerImpl{}

// NewController creates a movement Controller for state.
// Speeds come from the config source at every call; without a source the built-in defaults apply.
//
// Parameters:
//   - state: the camera to drive; nil is a fatal error
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the controller
func NewController(state *State, options ...ControllerBuilderOption) Controller {
	if state == nil {
		panic(ErrNoCamera)
	}
	c := &controllerImpl{
		state:  state,
		source: config.Static(config.Default()),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *controllerImpl) BeginForward() {
	if c.forward {
		return
	}
	c.forward = true
	c.nudge(c.source.Config().Camera.ForwardSpeed)
}

func (c *controllerImpl) EndForward() {
	if !c.forward {
		return
	}
	c.forward = false
	c.nudge(-c.source.Config().Camera.ForwardSpeed)
}

func (c *controllerImpl) BeginBack() {
	if c.back {
		return
	}
	c.back = true
	c.nudge(-c.source.Config().Camera.BackwardSpeed)
}

func (c *controllerImpl) EndBack() {
	if !c.back {
		return
	}
	c.back = false
	c.nudge(c.source.Config().Camera.BackwardSpeed)
}

func (c *controllerImpl) Active() (forward, back bool) {
	return c.forward, c.back
}

func (c *controllerImpl) State() *State {
	return c.state
}

// nudge adds speed along the camera's current forward vector to its velocity.
func (c *controllerImpl) nudge(speed float32) {
	c.state.Velocity = common.FMAVec3(c.state.Forward(), speed, c.state.Velocity)
}
