package event

// Type is the edge a backend reports for an action.
type Type int

const (
	// Press fires once when a key goes down. Emulator actions are debounced.
	Press Type = iota
	// Release fires once when the key comes up, or when a terminal stops
	// repeating it.
	Release
	// Hold repeats every frame while a controller button stays down.
	Hold
)

func (t Type) String() string {
	switch t {
	case Press:
		return "press"
	case Release:
		return "release"
	case Hold:
		return "hold"
	}
	return "unknown"
}
