package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-nesbie/nesbie/input/action"
	"github.com/valerio/go-nesbie/nesbie/input/event"
	"github.com/valerio/go-nesbie/nesbie/memory"
)

func TestManager_ControllerButtons(t *testing.T) {
	testCases := []struct {
		desc   string
		act    action.Action
		button memory.JoypadButton
	}{
		{desc: "A", act: action.NESButtonA, button: memory.JoypadA},
		{desc: "B", act: action.NESButtonB, button: memory.JoypadB},
		{desc: "Select", act: action.NESButtonSelect, button: memory.JoypadSelect},
		{desc: "Start", act: action.NESButtonStart, button: memory.JoypadStart},
		{desc: "Up", act: action.NESDPadUp, button: memory.JoypadUp},
		{desc: "Down", act: action.NESDPadDown, button: memory.JoypadDown},
		{desc: "Left", act: action.NESDPadLeft, button: memory.JoypadLeft},
		{desc: "Right", act: action.NESDPadRight, button: memory.JoypadRight},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			pad := memory.NewJoypad()
			m := NewManager(pad)

			m.Trigger(tC.act, event.Press)
			assert.Equal(t, uint8(1)<<tC.button, pad.Buttons())

			m.Trigger(tC.act, event.Release)
			assert.Zero(t, pad.Buttons())
		})
	}
}

func TestManager_ButtonsAreNotDebounced(t *testing.T) {
	pad := memory.NewJoypad()
	m := NewManager(pad)

	m.Trigger(action.NESButtonA, event.Press)
	m.Trigger(action.NESButtonA, event.Release)
	m.Trigger(action.NESButtonA, event.Press)
	assert.Equal(t, uint8(1), pad.Buttons())
}

func TestManager_Callbacks(t *testing.T) {
	now := time.Unix(0, 0)
	m := NewManager(nil)
	m.now = func() time.Time { return now }

	calls := 0
	m.On(action.EmulatorPauseToggle, event.Press, func() { calls++ })

	m.Trigger(action.EmulatorPauseToggle, event.Press)
	assert.Equal(t, 1, calls)

	m.Trigger(action.EmulatorPauseToggle, event.Press)
	assert.Equal(t, 1, calls, "debounced")

	now = now.Add(debounceDuration)
	m.Trigger(action.EmulatorPauseToggle, event.Press)
	assert.Equal(t, 2, calls)

	m.Trigger(action.EmulatorPauseToggle, event.Release)
	assert.Equal(t, 2, calls, "no release handler")
}

func TestManager_HoldIsNeverDebounced(t *testing.T) {
	m := NewManager(nil)
	calls := 0
	m.On(action.EmulatorStepFrame, event.Hold, func() { calls++ })

	for i := 0; i < 5; i++ {
		m.Trigger(action.EmulatorStepFrame, event.Hold)
	}
	assert.Equal(t, 5, calls)
}

func TestDefaultMapping(t *testing.T) {
	act, ok := GetDefaultMapping("Enter")
	assert.True(t, ok)
	assert.Equal(t, action.NESButtonStart, act)

	_, ok = GetDefaultMapping("F1")
	assert.False(t, ok)

	assert.True(t, action.IsDPad(action.NESDPadLeft))
	assert.False(t, action.IsDPad(action.NESButtonA))
	assert.Equal(t, action.CategoryGameInput, action.GetInfo(action.NESButtonA).Category)
}

func TestEventTypeString(t *testing.T) {
	testCases := []struct {
		desc string
		evt  event.Type
		want string
	}{
		{desc: "press", evt: event.Press, want: "press"},
		{desc: "release", evt: event.Release, want: "release"},
		{desc: "hold", evt: event.Hold, want: "hold"},
		{desc: "unknown", evt: event.Type(9), want: "unknown"},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			assert.Equal(t, tC.want, tC.evt.String())
		})
	}
}
