package config

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// variable binds a short variable name to a Config field.
type variable struct {
	boolean bool
	get     func(c *Config) string
	set     func(c *Config, value string) error
}

var variables = map[string]variable{
	"cl_esp":            boolVar(func(c *Config) *bool { return &c.Overlay.Enabled }),
	"cl_esp_box":        boolVar(func(c *Config) *bool { return &c.Overlay.Box }),
	"cl_esp_line":       boolVar(func(c *Config) *bool { return &c.Overlay.Line }),
	"cl_esp_name":       boolVar(func(c *Config) *bool { return &c.Overlay.Label }),
	"cl_esp_box_size":   floatVar(func(c *Config) *float32 { return &c.Overlay.BoxHalfExtent }),
	"cam_forwardspeed":  floatVar(func(c *Config) *float32 { return &c.Camera.ForwardSpeed }),
	"cam_backwardspeed": floatVar(func(c *Config) *float32 { return &c.Camera.BackwardSpeed }),
	"r_fov":             floatVar(func(c *Config) *float32 { return &c.Render.FOV }),
}

func boolVar(field func(c *Config) *bool) variable {
	return variable{
		boolean: true,
		get: func(c *Config) string {
			if *field(c) {
				return "1"
			}
			return "0"
		},
		set: func(c *Config, value string) error {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return err
			}
			*field(c) = b
			return nil
		},
	}
}

func floatVar(field func(c *Config) *float32) variable {
	return variable{
		get: func(c *Config) string {
			return strconv.FormatFloat(float64(*field(c)), 'g', -1, 32)
		},
		set: func(c *Config, value string) error {
			f, err := strconv.ParseFloat(value, 32)
			if err != nil {
				return err
			}
			*field(c) = float32(f)
			return nil
		},
	}
}

// Store holds the live configuration and lets named variables change at runtime.
type Store struct {
	mu  *sync.Mutex
	cfg Config
}

var _ Source = &Store{}

// NewStore creates a Store serving cfg.
//
// Parameters:
//   - cfg: the initial configuration
//
// Returns:
//   - *Store: the store
func NewStore(cfg Config) *Store {
	return &Store{mu: &sync.Mutex{}, cfg: cfg}
}

func (s *Store) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Set assigns a named variable such as "cl_esp" from its string form.
//
// Parameters:
//   - name: the variable name
//   - value: the new value ("1", "true", "150", ...)
//
// Returns:
//   - error: ErrUnknownVariable, or a parse error for a malformed value
func (s *Store) Set(name, value string) error {
	v, ok := variables[name]
	if !ok {
		return fmt.Errorf("set %q: %w", name, ErrUnknownVariable)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := v.set(&s.cfg, value); err != nil {
		return fmt.Errorf("set %q to %q: %w", name, value, err)
	}
	return nil
}

// Get returns a named variable in string form.
//
// Parameters:
//   - name: the variable name
//
// Returns:
//   - string: the current value
//   - error: ErrUnknownVariable if the name is not defined
func (s *Store) Get(name string) (string, error) {
	v, ok := variables[name]
	if !ok {
		return "", fmt.Errorf("get %q: %w", name, ErrUnknownVariable)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return v.get(&s.cfg), nil
}

// Toggle flips a boolean variable.
//
// Parameters:
//   - name: the variable name
//
// Returns:
//   - bool: the new value
//   - error: ErrUnknownVariable, or an error if the variable is not boolean
func (s *Store) Toggle(name string) (bool, error) {
	v, ok := variables[name]
	if !ok {
		return false, fmt.Errorf("toggle %q: %w", name, ErrUnknownVariable)
	}
	if !v.boolean {
		return false, fmt.Errorf("toggle %q: not a boolean", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := v.get(&s.cfg) != "1"
	if err := v.set(&s.cfg, strconv.FormatBool(next)); err != nil {
		return false, fmt.Errorf("toggle %q: %w", name, err)
	}
	return next, nil
}

// Names lists every variable name in sorted order.
//
// Returns:
//   - []string: the variable names
func Names() []string {
	names := make([]string, 0, len(variables))
	for name := range variables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
