package nesbie

import (
	"github.com/valerio/go-nesbie/nesbie/debug"
	"github.com/valerio/go-nesbie/nesbie/input/action"
	"github.com/valerio/go-nesbie/nesbie/video"
)

// Emulator is what backends and the command line drive.
type Emulator interface {
	RunUntilFrame() error
	Step() (int, error)
	GetCurrentFrame() *video.FrameBuffer
	HandleAction(act action.Action, pressed bool)
	ExtractDebugData() *debug.CompleteDebugData
}

var _ Emulator = (*Console)(nil)
