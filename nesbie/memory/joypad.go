package memory

import "github.com/valerio/go-nesbie/nesbie/bit"

// JoypadButton is a button on the standard controller, numbered in the
// order the shift register reports them.
type JoypadButton uint8

const (
	JoypadA JoypadButton = iota
	JoypadB
	JoypadSelect
	JoypadStart
	JoypadUp
	JoypadDown
	JoypadLeft
	JoypadRight
)

// Joypad is a standard controller behind $4016/$4017.
// While strobe is high the shift register keeps reloading, so reads return button A.
type Joypad struct {
	buttons uint8
	index   uint8
	strobe  bool
}

// NewJoypad creates a controller with no buttons held
func NewJoypad() *Joypad {
	return &Joypad{}
}

// Read shifts out the next button bit. After all eight, official pads return 1.
func (j *Joypad) Read() uint8 {
	value := uint8(1)
	if j.index < 8 {
		value = bit.GetBitValue(j.index, j.buttons)
	}
	if j.strobe {
		j.index = 0
	} else if j.index < 8 {
		j.index++
	}
	return value
}

// Write drives the strobe line from bit 0.
func (j *Joypad) Write(value uint8) {
	j.strobe = value&1 == 1
	if j.strobe {
		j.index = 0
	}
}

// Press marks a button as held
func (j *Joypad) Press(button JoypadButton) {
	j.buttons = bit.Set(uint8(button), j.buttons)
}

// Release marks a button as released
func (j *Joypad) Release(button JoypadButton) {
	j.buttons = bit.Clear(uint8(button), j.buttons)
}

// Buttons returns the held buttons as a bit mask.
func (j *Joypad) Buttons() uint8 { return j.buttons }
