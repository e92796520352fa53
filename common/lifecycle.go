package common

// LevelStatus is the progress reported by a level init or shutdown step.
type LevelStatus int

const (
	LevelFinished LevelStatus = iota
	LevelNotFinished
	LevelFailed
)

func (s LevelStatus) String() string {
	switch s {
	case LevelFinished:
		return "finished"
	case LevelNotFinished:
		return "not finished"
	case LevelFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Manager is the lifecycle every engine subsystem implements. The engine calls the
// methods of all managers in registration order, and LevelShutdown/Shutdown in reverse order.
type Manager interface {
	// Name identifies the manager in logs.
	Name() string

	// Init runs once at startup.
	Init() error

	// LevelInit is polled until it stops returning LevelNotFinished. firstCall is true on the first poll only.
	// The error is non-nil only together with LevelFailed.
	LevelInit(firstCall bool) (LevelStatus, error)

	// Update runs once per frame, in or out of a level.
	Update(dt float32) error

	// LevelShutdown is polled like LevelInit when the level is torn down.
	LevelShutdown(firstCall bool) LevelStatus

	// Shutdown runs once at exit.
	Shutdown()
}
