package backend

import (
	"errors"
	"log/slog"

	"github.com/valerio/go-nesbie/nesbie"
	"github.com/valerio/go-nesbie/nesbie/debug"
	"github.com/valerio/go-nesbie/nesbie/input"
	"github.com/valerio/go-nesbie/nesbie/input/action"
	"github.com/valerio/go-nesbie/nesbie/input/event"
	"github.com/valerio/go-nesbie/nesbie/timing"
)

// Loop drives an emulator through a backend: run a frame, present it, then
// dispatch the events the backend collected.
type Loop struct {
	emu     nesbie.Emulator
	backend Backend
	input   *input.Manager
	limiter timing.Limiter

	running         bool
	paused          bool
	stepFrame       bool
	stepInstruction bool
	frames          int

	frameHooks []func()
}

// NewLoop wires the emulator control actions into the input manager.
func NewLoop(emu nesbie.Emulator, b Backend, manager *input.Manager, limiter timing.Limiter) *Loop {
	l := &Loop{
		emu:     emu,
		backend: b,
		input:   manager,
		limiter: limiter,
	}

	manager.On(action.EmulatorQuit, event.Press, l.Quit)
	manager.On(action.EmulatorPauseToggle, event.Press, func() {
		l.paused = !l.paused
		l.limiter.Reset()
		slog.Info("Pause toggled", "paused", l.paused)
	})
	manager.On(action.EmulatorStepFrame, event.Press, func() {
		l.paused = true
		l.stepFrame = true
	})
	manager.On(action.EmulatorStepInstruction, event.Press, func() {
		l.paused = true
		l.stepInstruction = true
	})
	manager.On(action.EmulatorReset, event.Press, func() {
		l.emu.HandleAction(action.EmulatorReset, true)
	})
	manager.On(action.EmulatorSnapshot, event.Press, func() {
		debug.TakeSnapshot(l.emu.GetCurrentFrame())
	})

	return l
}

// OnFrame registers a callback run after every emulated frame.
func (l *Loop) OnFrame(cb func()) {
	l.frameHooks = append(l.frameHooks, cb)
}

// Quit makes Run return after the current iteration.
func (l *Loop) Quit() {
	l.running = false
}

// Frames returns the number of frames emulated so far.
func (l *Loop) Frames() int { return l.frames }

// Run loops until the backend or the user quits. A stopped console ends
// the loop cleanly, any other emulation error is returned.
func (l *Loop) Run() error {
	l.running = true
	for l.running {
		if err := l.advance(); err != nil {
			if errors.Is(err, nesbie.ErrStopped) {
				return nil
			}
			return err
		}

		events, err := l.backend.Update(l.emu.GetCurrentFrame())
		if err != nil {
			return err
		}
		for _, evt := range events {
			l.input.Trigger(evt.Action, evt.Type)
		}

		l.limiter.WaitForNextFrame()
	}
	return nil
}

// advance runs a frame, or a single instruction when stepping while paused.
func (l *Loop) advance() error {
	switch {
	case l.stepInstruction:
		l.stepInstruction = false
		_, err := l.emu.Step()
		return err
	case l.paused && !l.stepFrame:
		return nil
	}

	l.stepFrame = false
	if err := l.emu.RunUntilFrame(); err != nil {
		return err
	}
	l.frames++
	for _, cb := range l.frameHooks {
		cb()
	}
	return nil
}

// ExtractDebugData adds the pause state to the emulator's debug view.
func (l *Loop) ExtractDebugData() *debug.CompleteDebugData {
	data := l.emu.ExtractDebugData()
	if data == nil {
		return nil
	}

	switch {
	case l.stepInstruction:
		data.DebuggerState = debug.DebuggerStepInstruction
	case l.stepFrame:
		data.DebuggerState = debug.DebuggerStepFrame
	case l.paused:
		data.DebuggerState = debug.DebuggerPaused
	default:
		data.DebuggerState = debug.DebuggerRunning
	}
	return data
}
