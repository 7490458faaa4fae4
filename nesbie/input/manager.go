package input

import (
	"log/slog"
	"time"

	"github.com/valerio/go-nesbie/nesbie/input/action"
	"github.com/valerio/go-nesbie/nesbie/input/event"
	"github.com/valerio/go-nesbie/nesbie/memory"
)

const (
	// debounceDuration is the minimum time between debounced events
	debounceDuration = 300 * time.Millisecond
)

// Manager routes actions either to the controller or to registered callbacks.
type Manager struct {
	handlers      map[action.Action]map[event.Type][]func()
	lastTriggered map[action.Action]map[event.Type]time.Time
	joypad        *memory.Joypad
	now           func() time.Time
}

func NewManager(j *memory.Joypad) *Manager {
	return &Manager{
		handlers:      make(map[action.Action]map[event.Type][]func()),
		lastTriggered: make(map[action.Action]map[event.Type]time.Time),
		joypad:        j,
		now:           time.Now,
	}
}

// On registers a callback for a specific action and event type
func (m *Manager) On(act action.Action, evt event.Type, callback func()) {
	if m.handlers[act] == nil {
		m.handlers[act] = make(map[event.Type][]func())
	}
	m.handlers[act][evt] = append(m.handlers[act][evt], callback)
}

// Trigger handles the given action and event type. Controller buttons go
// straight to the joypad and are never debounced, games poll them every frame.
func (m *Manager) Trigger(act action.Action, evt event.Type) {
	if button, ok := JoypadButton(act); ok && m.joypad != nil {
		switch evt {
		case event.Press:
			m.joypad.Press(button)
		case event.Release:
			m.joypad.Release(button)
		}
		return
	}

	if evt == event.Press || evt == event.Release {
		if m.debounced(act, evt) {
			slog.Debug("Input debounced", "action", action.GetInfo(act).Description, "event", evt)
			return
		}
	}

	for _, callback := range m.handlers[act][evt] {
		callback()
	}
}

func (m *Manager) debounced(act action.Action, evt event.Type) bool {
	now := m.now()
	if m.lastTriggered[act] == nil {
		m.lastTriggered[act] = make(map[event.Type]time.Time)
	}
	last, seen := m.lastTriggered[act][evt]
	if seen && now.Sub(last) < debounceDuration {
		return true
	}
	m.lastTriggered[act][evt] = now
	return false
}

// JoypadButton maps controller actions to joypad buttons
func JoypadButton(act action.Action) (memory.JoypadButton, bool) {
	switch act {
	case action.NESButtonA:
		return memory.JoypadA, true
	case action.NESButtonB:
		return memory.JoypadB, true
	case action.NESButtonSelect:
		return memory.JoypadSelect, true
	case action.NESButtonStart:
		return memory.JoypadStart, true
	case action.NESDPadUp:
		return memory.JoypadUp, true
	case action.NESDPadDown:
		return memory.JoypadDown, true
	case action.NESDPadLeft:
		return memory.JoypadLeft, true
	case action.NESDPadRight:
		return memory.JoypadRight, true
	default:
		return 0, false
	}
}
