package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/valerio/go-nesbie/nesbie/backend"
	"github.com/valerio/go-nesbie/nesbie/backend/terminal/render"
	"github.com/valerio/go-nesbie/nesbie/input"
	"github.com/valerio/go-nesbie/nesbie/input/action"
	"github.com/valerio/go-nesbie/nesbie/input/event"
	"github.com/valerio/go-nesbie/nesbie/video"
)

const (
	defaultScale   = 2
	registerHeight = 14
	disasmHeight   = 9
	panelMinWidth  = 40
	logCapacity    = 200
)

// Key expiry timeout, slightly longer than typical key repeat interval.
// Terminals report no key releases, so held buttons are inferred from repeats.
const keyTimeout = 100 * time.Millisecond

// Backend implements the Backend interface using tcell for terminal rendering
type Backend struct {
	screen    tcell.Screen
	newScreen func() (tcell.Screen, error)
	running   bool
	logBuffer *render.LogBuffer
	logLevel  slog.Level
	config    backend.BackendConfig
	scale     int

	eventQueue []backend.InputEvent
	signals    chan os.Signal

	keyStates  map[action.Action]time.Time // Last time each key was seen
	activeKeys map[action.Action]bool      // Keys active in previous frame

	debugProvider backend.DebugDataProvider

	testPatternFrame *video.FrameBuffer
	now              func() time.Time
}

// New creates a new terminal backend
func New() *Backend {
	return &Backend{
		logLevel:  slog.LevelInfo,
		newScreen: tcell.NewScreen,
		now:       time.Now,
	}
}

// Init initializes the terminal backend
func (t *Backend) Init(config backend.BackendConfig) error {
	t.config = config
	t.debugProvider = config.DebugProvider
	t.keyStates = make(map[action.Action]time.Time)
	t.activeKeys = make(map[action.Action]bool)
	t.scale = config.Scale
	if t.scale <= 0 {
		t.scale = defaultScale
	}

	screen, err := t.newScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	t.screen = screen
	t.running = true

	t.logBuffer = render.NewLogBuffer(logCapacity)
	slog.SetDefault(slog.New(render.NewLogBufferHandler(t.logBuffer, slog.LevelDebug)))

	if config.InputManager != nil {
		config.InputManager.On(action.EmulatorDebugToggle, event.Press, t.toggleDebug)
		config.InputManager.On(action.DebugLogLevelIncrease, event.Press, func() { t.changeLogLevel(1) })
		config.InputManager.On(action.DebugLogLevelDecrease, event.Press, func() { t.changeLogLevel(-1) })
	}

	if config.TestPattern {
		t.testPatternFrame = paletteTestPattern()
		slog.Info("Terminal backend initialized in test pattern mode")
	} else {
		slog.Info("Terminal backend initialized", "title", config.Title, "scale", t.scale)
	}

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	t.signals = make(chan os.Signal, 1)
	signal.Notify(t.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	return nil
}

// Update renders a frame and returns the input collected since the last call
func (t *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	now := t.now()

	select {
	case sig := <-t.signals:
		slog.Info("Received signal", "signal", sig.String())
		t.quit()
	default:
	}

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	events := t.controllerEvents(now)
	events = append(events, t.eventQueue...)
	t.eventQueue = nil

	if !t.running {
		return events, nil
	}

	if t.config.TestPattern {
		frame = t.testPatternFrame
	}
	t.render(frame)
	t.screen.Show()

	return events, nil
}

// controllerEvents turns the key repeat timestamps into press, hold and
// release edges for controller buttons.
func (t *Backend) controllerEvents(now time.Time) []backend.InputEvent {
	var events []backend.InputEvent
	currentlyActive := make(map[action.Action]bool)

	for act, lastPressed := range t.keyStates {
		if now.Sub(lastPressed) >= keyTimeout {
			delete(t.keyStates, act)
			continue
		}

		currentlyActive[act] = true
		if t.activeKeys[act] {
			events = append(events, backend.InputEvent{Action: act, Type: event.Hold})
		} else {
			slog.Debug("Key press", "action", action.GetInfo(act).Description)
			events = append(events, backend.InputEvent{Action: act, Type: event.Press})
		}
	}

	for act := range t.activeKeys {
		if !currentlyActive[act] {
			slog.Debug("Key release", "action", action.GetInfo(act).Description)
			events = append(events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}

	t.activeKeys = currentlyActive
	return events
}

// Cleanup cleans up terminal resources
func (t *Backend) Cleanup() error {
	if t.signals != nil {
		signal.Stop(t.signals)
	}
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
	}
	return nil
}

func (t *Backend) quit() {
	t.running = false
	t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: action.EmulatorQuit, Type: event.Press})
	if t.config.Callbacks.OnQuit != nil {
		t.config.Callbacks.OnQuit()
	}
}

func (t *Backend) toggleDebug() {
	t.config.ShowDebug = !t.config.ShowDebug
	if t.config.ShowDebug {
		slog.Info("Debug display enabled")
	} else {
		slog.Info("Debug display disabled")
	}
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) {
	act, ok := keyMapping[ev.Key()]
	if !ok && ev.Key() == tcell.KeyRune {
		act, ok = runeMapping[ev.Rune()]
	}
	if !ok {
		return
	}

	if act == action.EmulatorQuit {
		t.quit()
		return
	}

	if action.GetInfo(act).Category != action.CategoryGameInput {
		t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: act, Type: event.Press})
		return
	}

	// directions are exclusive, a new one cancels the others
	if action.IsDPad(act) {
		delete(t.keyStates, action.NESDPadUp)
		delete(t.keyStates, action.NESDPadDown)
		delete(t.keyStates, action.NESDPadLeft)
		delete(t.keyStates, action.NESDPadRight)
	}
	t.keyStates[act] = now
}

// tcellKeyNameMap converts tcell keys to key names used in default mappings
var tcellKeyNameMap = map[tcell.Key]string{
	tcell.KeyEnter:  "Enter",
	tcell.KeyTab:    "Tab",
	tcell.KeyUp:     "Up",
	tcell.KeyDown:   "Down",
	tcell.KeyLeft:   "Left",
	tcell.KeyRight:  "Right",
	tcell.KeyEscape: "Escape",
	tcell.KeyF9:     "F9",
	tcell.KeyF10:    "F10",
}

func buildKeyMapping() map[tcell.Key]action.Action {
	mapping := make(map[tcell.Key]action.Action)
	for key, keyName := range tcellKeyNameMap {
		if act, ok := input.GetDefaultMapping(keyName); ok {
			mapping[key] = act
		}
	}
	mapping[tcell.KeyCtrlC] = action.EmulatorQuit
	return mapping
}

func buildRuneMapping() map[rune]action.Action {
	mapping := make(map[rune]action.Action)
	for keyName, act := range input.DefaultKeyMap {
		runes := []rune(keyName)
		if len(runes) == 1 {
			mapping[runes[0]] = act
		}
	}
	mapping[' '] = action.EmulatorPauseToggle
	return mapping
}

var (
	keyMapping  = buildKeyMapping()
	runeMapping = buildRuneMapping()
)

func (t *Backend) changeLogLevel(direction int) {
	levels := []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}

	current := 0
	for i, level := range levels {
		if level == t.logLevel {
			current = i
		}
	}

	// increasing verbosity moves towards debug
	next := current - direction
	if next < 0 || next >= len(levels) {
		return
	}

	slog.Info("Log filter changed", "from", t.logLevel, "to", levels[next])
	t.logLevel = levels[next]
}

// paletteTestPattern fills the frame with the 64 master palette colors in a
// 16x4 grid.
func paletteTestPattern() *video.FrameBuffer {
	fb := video.NewFrameBuffer()
	cellWidth := video.ScreenWidth / 16
	cellHeight := video.ScreenHeight / 4
	for y := 0; y < video.ScreenHeight; y++ {
		for x := 0; x < video.ScreenWidth; x++ {
			index := uint8(y/cellHeight*16 + x/cellWidth)
			fb.SetPixel(x, y, video.MasterColor(index))
		}
	}
	fb.Present()
	return fb
}
