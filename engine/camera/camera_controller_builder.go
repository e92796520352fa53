package camera

import "github.com/Carmen-Shannon/legion/engine/config"

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*controllerImpl)

// WithConfigSource sets where the controller reads its movement speeds from.
//
// Parameters:
//   - source: the configuration source, read on every movement intent
//
// Returns:
//   - ControllerBuilderOption: functional option to set the source
func WithConfigSource(source config.Source) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if source != nil {
			c.source = source
		}
	}
}
