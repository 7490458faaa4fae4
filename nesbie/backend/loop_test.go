package backend_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-nesbie/nesbie"
	"github.com/valerio/go-nesbie/nesbie/backend"
	"github.com/valerio/go-nesbie/nesbie/debug"
	"github.com/valerio/go-nesbie/nesbie/input"
	"github.com/valerio/go-nesbie/nesbie/input/action"
	"github.com/valerio/go-nesbie/nesbie/input/event"
	"github.com/valerio/go-nesbie/nesbie/memory"
	"github.com/valerio/go-nesbie/nesbie/timing"
	"github.com/valerio/go-nesbie/nesbie/video"
)

// MockBackend is a test backend that returns predetermined events per call
type MockBackend struct {
	events      [][]backend.InputEvent
	initialized bool
	cleanedUp   bool
	updateCalls int
}

func (m *MockBackend) Init(config backend.BackendConfig) error {
	m.initialized = true
	return nil
}

func (m *MockBackend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	m.updateCalls++
	if m.updateCalls <= len(m.events) {
		return m.events[m.updateCalls-1], nil
	}
	return nil, nil
}

func (m *MockBackend) Cleanup() error {
	m.cleanedUp = true
	return nil
}

// mockEmulator counts frames instead of emulating them.
type mockEmulator struct {
	frames  int
	steps   int
	actions []action.Action
	err     error
	frame   *video.FrameBuffer
}

func (m *mockEmulator) RunUntilFrame() error {
	if m.err != nil {
		return m.err
	}
	m.frames++
	return nil
}

func (m *mockEmulator) Step() (int, error) {
	m.steps++
	return 2, m.err
}

func (m *mockEmulator) GetCurrentFrame() *video.FrameBuffer { return m.frame }

func (m *mockEmulator) HandleAction(act action.Action, pressed bool) {
	m.actions = append(m.actions, act)
}

func (m *mockEmulator) ExtractDebugData() *debug.CompleteDebugData {
	return &debug.CompleteDebugData{CPU: &debug.CPUState{PC: 0x8000}}
}

func press(act action.Action) backend.InputEvent {
	return backend.InputEvent{Action: act, Type: event.Press}
}

func TestLoop(t *testing.T) {
	testCases := []struct {
		desc        string
		events      [][]backend.InputEvent
		wantFrames  int
		wantSteps   int
		wantUpdates int
		wantActions []action.Action
	}{
		{
			desc:        "quit event stops loop",
			events:      [][]backend.InputEvent{{press(action.EmulatorQuit)}},
			wantFrames:  1,
			wantUpdates: 1,
		},
		{
			desc: "runs until quit",
			events: [][]backend.InputEvent{
				nil, nil, nil, {press(action.EmulatorQuit)},
			},
			wantFrames:  4,
			wantUpdates: 4,
		},
		{
			desc: "pause holds frames",
			events: [][]backend.InputEvent{
				{press(action.EmulatorPauseToggle)}, nil, nil, {press(action.EmulatorQuit)},
			},
			wantFrames:  1,
			wantUpdates: 4,
		},
		{
			desc: "frame step while paused",
			events: [][]backend.InputEvent{
				{press(action.EmulatorPauseToggle)}, {press(action.EmulatorStepFrame)}, nil, {press(action.EmulatorQuit)},
			},
			wantFrames:  2,
			wantUpdates: 4,
		},
		{
			desc: "instruction step while paused",
			events: [][]backend.InputEvent{
				{press(action.EmulatorStepInstruction)}, nil, {press(action.EmulatorQuit)},
			},
			wantFrames:  1,
			wantSteps:   1,
			wantUpdates: 3,
		},
		{
			desc: "reset is forwarded",
			events: [][]backend.InputEvent{
				{press(action.EmulatorReset)}, {press(action.EmulatorQuit)},
			},
			wantFrames:  2,
			wantUpdates: 2,
			wantActions: []action.Action{action.EmulatorReset},
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			emu := &mockEmulator{frame: video.NewFrameBuffer()}
			mock := &MockBackend{events: tC.events}
			require.NoError(t, mock.Init(backend.BackendConfig{Title: "Test"}))

			loop := backend.NewLoop(emu, mock, input.NewManager(nil), timing.NewNoOpLimiter())
			require.NoError(t, loop.Run())

			assert.Equal(t, tC.wantFrames, emu.frames)
			assert.Equal(t, tC.wantFrames, loop.Frames())
			assert.Equal(t, tC.wantSteps, emu.steps)
			assert.Equal(t, tC.wantUpdates, mock.updateCalls)
			assert.Equal(t, tC.wantActions, emu.actions)

			require.NoError(t, mock.Cleanup())
			assert.True(t, mock.cleanedUp)
		})
	}
}

func TestLoop_Errors(t *testing.T) {
	testCases := []struct {
		desc    string
		err     error
		wantErr error
	}{
		{desc: "stopped console ends cleanly", err: nesbie.ErrStopped},
		{desc: "halted console is reported", err: nesbie.ErrCPUHalted, wantErr: nesbie.ErrCPUHalted},
		{desc: "other errors are reported", err: errors.New("boom"), wantErr: errors.New("boom")},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			emu := &mockEmulator{err: tC.err}
			loop := backend.NewLoop(emu, &MockBackend{}, input.NewManager(nil), timing.NewNoOpLimiter())

			err := loop.Run()
			if tC.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tC.wantErr.Error())
		})
	}
}

func TestLoop_ControllerButtonsReachJoypad(t *testing.T) {
	joypad := memory.NewJoypad()
	emu := &mockEmulator{frame: video.NewFrameBuffer()}
	mock := &MockBackend{events: [][]backend.InputEvent{
		{press(action.NESButtonA), press(action.NESDPadUp)},
		{{Action: action.NESButtonA, Type: event.Release}, press(action.EmulatorQuit)},
	}}

	loop := backend.NewLoop(emu, mock, input.NewManager(joypad), timing.NewNoOpLimiter())
	require.NoError(t, loop.Run())

	assert.Equal(t, uint8(0x10), joypad.Buttons())
}

func TestLoop_OnFrame(t *testing.T) {
	emu := &mockEmulator{frame: video.NewFrameBuffer()}
	mock := &MockBackend{events: [][]backend.InputEvent{
		nil,
		{press(action.EmulatorPauseToggle)},
		{press(action.EmulatorStepFrame)},
		{press(action.EmulatorQuit)},
	}}

	loop := backend.NewLoop(emu, mock, input.NewManager(nil), timing.NewNoOpLimiter())
	hooks := 0
	loop.OnFrame(func() { hooks++ })
	require.NoError(t, loop.Run())

	// the paused iteration runs no frame, the frame step does
	assert.Equal(t, 3, emu.frames)
	assert.Equal(t, 4, mock.updateCalls)
	assert.Equal(t, 3, hooks)
}

func TestLoop_DebuggerState(t *testing.T) {
	emu := &mockEmulator{frame: video.NewFrameBuffer()}
	manager := input.NewManager(nil)
	loop := backend.NewLoop(emu, &MockBackend{}, manager, timing.NewNoOpLimiter())

	data := loop.ExtractDebugData()
	require.NotNil(t, data)
	assert.Equal(t, debug.DebuggerRunning, data.DebuggerState)

	manager.Trigger(action.EmulatorPauseToggle, event.Press)
	assert.Equal(t, debug.DebuggerPaused, loop.ExtractDebugData().DebuggerState)

	manager.Trigger(action.EmulatorStepFrame, event.Press)
	assert.Equal(t, debug.DebuggerStepFrame, loop.ExtractDebugData().DebuggerState)
}

func TestBackendInterface(t *testing.T) {
	var _ backend.Backend = (*MockBackend)(nil)
	var _ nesbie.Emulator = (*mockEmulator)(nil)
	var _ backend.DebugDataProvider = (*backend.Loop)(nil)
}
