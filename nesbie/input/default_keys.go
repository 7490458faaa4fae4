package input

import "github.com/valerio/go-nesbie/nesbie/input/action"

// DefaultKeyMap provides default key mappings that work across backends.
// Backends can use these mappings as a base and override/extend as needed.
var DefaultKeyMap = map[string]action.Action{
	// controller
	"z":     action.NESButtonB,
	"x":     action.NESButtonA,
	"Enter": action.NESButtonStart,
	"Tab":   action.NESButtonSelect,
	"Shift": action.NESButtonSelect,
	"Up":    action.NESDPadUp,
	"Down":  action.NESDPadDown,
	"Left":  action.NESDPadLeft,
	"Right": action.NESDPadRight,

	// WASD
	"w": action.NESDPadUp,
	"s": action.NESDPadDown,
	"a": action.NESDPadLeft,
	"d": action.NESDPadRight,

	// Emulator controls
	"Space":  action.EmulatorPauseToggle,
	"p":      action.EmulatorPauseToggle,
	"f":      action.EmulatorStepFrame,
	"n":      action.EmulatorStepInstruction,
	"r":      action.EmulatorReset,
	"F9":     action.EmulatorSnapshot,
	"F10":    action.EmulatorDebugToggle,
	"Escape": action.EmulatorQuit,
	"q":      action.EmulatorQuit,

	// Debug controls
	"+": action.DebugLogLevelIncrease,
	"=": action.DebugLogLevelIncrease, // without shift
	"-": action.DebugLogLevelDecrease,
	"_": action.DebugLogLevelDecrease,
}

// GetDefaultMapping returns the default action for a key, if one exists
func GetDefaultMapping(key string) (action.Action, bool) {
	act, ok := DefaultKeyMap[key]
	return act, ok
}
