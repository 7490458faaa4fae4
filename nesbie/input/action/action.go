package action

// Action represents input actions that can be performed in the emulator
type Action int

const (
	// NES controller 1
	NESButtonA Action = iota
	NESButtonB
	NESButtonSelect
	NESButtonStart
	NESDPadUp
	NESDPadDown
	NESDPadLeft
	NESDPadRight

	// Emulator features
	EmulatorDebugToggle
	EmulatorSnapshot
	EmulatorPauseToggle
	EmulatorStepFrame
	EmulatorStepInstruction
	EmulatorReset
	EmulatorQuit

	// Debug controls
	DebugLogLevelIncrease
	DebugLogLevelDecrease
)

// Category groups actions by who consumes them.
type Category int

const (
	CategoryGameInput Category = iota
	CategoryEmulator
	CategoryDebug
)

// Info describes an action for logs and help screens.
type Info struct {
	Description string
	Category    Category
}

var infos = map[Action]Info{
	NESButtonA:      {"A", CategoryGameInput},
	NESButtonB:      {"B", CategoryGameInput},
	NESButtonSelect: {"Select", CategoryGameInput},
	NESButtonStart:  {"Start", CategoryGameInput},
	NESDPadUp:       {"Up", CategoryGameInput},
	NESDPadDown:     {"Down", CategoryGameInput},
	NESDPadLeft:     {"Left", CategoryGameInput},
	NESDPadRight:    {"Right", CategoryGameInput},

	EmulatorDebugToggle:     {"Toggle debug panel", CategoryEmulator},
	EmulatorSnapshot:        {"Save snapshot", CategoryEmulator},
	EmulatorPauseToggle:     {"Pause/resume", CategoryEmulator},
	EmulatorStepFrame:       {"Step frame", CategoryEmulator},
	EmulatorStepInstruction: {"Step instruction", CategoryEmulator},
	EmulatorReset:           {"Reset", CategoryEmulator},
	EmulatorQuit:            {"Quit", CategoryEmulator},

	DebugLogLevelIncrease: {"More logs", CategoryDebug},
	DebugLogLevelDecrease: {"Fewer logs", CategoryDebug},
}

// GetInfo returns the description and category of an action.
func GetInfo(act Action) Info {
	if info, ok := infos[act]; ok {
		return info
	}
	return Info{Description: "Unknown", Category: CategoryEmulator}
}

// IsDPad reports whether the action is one of the four directions.
func IsDPad(act Action) bool {
	return act >= NESDPadUp && act <= NESDPadRight
}
