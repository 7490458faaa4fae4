package backend

import (
	"github.com/valerio/go-nesbie/nesbie/debug"
	"github.com/valerio/go-nesbie/nesbie/input"
	"github.com/valerio/go-nesbie/nesbie/input/action"
	"github.com/valerio/go-nesbie/nesbie/input/event"
	"github.com/valerio/go-nesbie/nesbie/video"
)

// Backend represents a complete emulator platform (rendering + input)
// Backends are responsible for:
// - Rendering frames to their specific output (terminal, PNG files, etc.)
// - Translating platform-specific input events to Actions
// - Handling backend-specific features (snapshots, test patterns, debug panels)
type Backend interface {
	// Init configures the backend with the provided configuration.
	// This is a required step before calling Update.
	Init(config BackendConfig) error

	// Update renders the frame and returns the input events collected since
	// the previous call.
	Update(frame *video.FrameBuffer) ([]InputEvent, error)

	// Cleanup resources when shutting down
	Cleanup() error
}

// InputEvent is an action reported by a backend, with its edge.
type InputEvent struct {
	Action action.Action
	Type   event.Type
}

// DebugDataProvider gives backends read access to emulator state.
type DebugDataProvider interface {
	ExtractDebugData() *debug.CompleteDebugData
}

// BackendConfig holds configuration for backends
type BackendConfig struct {
	Title         string
	Scale         int
	ShowDebug     bool              // Backends may ignore unsupported features
	TestPattern   bool              // Display test pattern instead of emulation
	Callbacks     BackendCallbacks  // Callbacks for backend communication
	InputManager  *input.Manager    // Shared input manager for unified input handling
	DebugProvider DebugDataProvider // Optional, feeds debug panels
}

// BackendCallbacks allows backends to communicate with the emulator
type BackendCallbacks struct {
	// Control callbacks
	OnQuit func() // Backend requests shutdown (e.g., terminal closed)

	// Debug callbacks (optional)
	OnDebugMessage func(message string) // Backend can send debug info to emulator
}
