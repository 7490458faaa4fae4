package audio

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/valerio/go-nesbie/nesbie/addr"
)

// frame counter ($4017) bits
const (
	frameFiveStep   = 0x80
	frameIRQInhibit = 0x40
)

// status ($4015) bits
const (
	statusFrameIRQ = 0x40
)

// lengthCounter is the part of a channel visible through $4015.
type lengthCounter struct {
	enabled bool
	halted  bool
	value   uint8
}

func (l *lengthCounter) load(index uint8) {
	if l.enabled {
		l.value = lengthTable[index>>3]
	}
}

func (l *lengthCounter) clock() {
	if !l.halted && l.value > 0 {
		l.value--
	}
}

// APU is the register side of the 2A03 audio unit: it latches channel
// registers, runs the frame sequencer with its length counters and frame
// IRQ, and produces a sample stream at the output rate. Channel synthesis is
// not emulated, so every sample is silence.
type APU struct {
	registers [0x18]uint8

	channels [channelCount]lengthCounter

	frameMode    uint8
	frameCycles  int
	frameIRQ     bool
	cycles       uint64
	pendingReset int // cycles until a $4017 write restarts the sequence

	sampleRate    int
	sampleCounter int // fixed step accumulator, a sample every CPUFrequency/sampleRate cycles
	sampleBuffer  []int16
	sampleMu      sync.Mutex
}

// New creates an APU producing samples at the default rate.
func New() *APU {
	return NewWithSampleRate(DefaultSampleRate)
}

// NewWithSampleRate creates an APU producing samples at the given rate.
func NewWithSampleRate(rate int) *APU {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	return &APU{sampleRate: rate}
}

// ReadRegister handles CPU reads. Only $4015 is readable; reading it
// acknowledges the frame IRQ.
func (a *APU) ReadRegister(address uint16) uint8 {
	if address != addr.APUSTATUS {
		return 0
	}

	var status uint8
	for i := range a.channels {
		if a.channels[i].value > 0 {
			status |= 1 << i
		}
	}
	if a.frameIRQ {
		status |= statusFrameIRQ
	}
	a.frameIRQ = false
	return status
}

// WriteRegister handles CPU writes to $4000-$4013, $4015 and $4017.
func (a *APU) WriteRegister(address uint16, value uint8) {
	if address < addr.APUStart || address > addr.JOY2 {
		slog.Warn("APU write outside register range", "addr", fmt.Sprintf("0x%04X", address))
		return
	}
	a.registers[address-addr.APUStart] = value

	switch address {
	case 0x4000:
		a.channels[pulse1].halted = value&0x20 != 0
	case 0x4004:
		a.channels[pulse2].halted = value&0x20 != 0
	case 0x4008:
		a.channels[triangle].halted = value&0x80 != 0
	case 0x400C:
		a.channels[noise].halted = value&0x20 != 0
	case 0x4003:
		a.channels[pulse1].load(value)
	case 0x4007:
		a.channels[pulse2].load(value)
	case 0x400B:
		a.channels[triangle].load(value)
	case 0x400F:
		a.channels[noise].load(value)
	case addr.APUSTATUS:
		for i := range a.channels {
			a.channels[i].enabled = value&(1<<i) != 0
			if !a.channels[i].enabled {
				a.channels[i].value = 0
			}
		}
	case addr.JOY2:
		a.frameMode = value
		if value&frameIRQInhibit != 0 {
			a.frameIRQ = false
		}
		// the sequencer restarts 3 or 4 cycles after the write
		a.pendingReset = 3
		if a.cycles%2 == 1 {
			a.pendingReset = 4
		}
	}
}

// TickClock advances the frame sequencer and the sample clock by one CPU cycle.
func (a *APU) TickClock() {
	a.cycles++
	a.stepFrameCounter()

	a.sampleCounter += a.sampleRate
	if a.sampleCounter >= CPUFrequency {
		a.sampleCounter -= CPUFrequency
		a.pushSample(a.GetSample())
	}
}

func (a *APU) stepFrameCounter() {
	if a.pendingReset > 0 {
		a.pendingReset--
		if a.pendingReset == 0 {
			a.frameCycles = 0
			if a.frameMode&frameFiveStep != 0 {
				a.clockLength()
			}
			return
		}
	}

	a.frameCycles++
	fiveStep := a.frameMode&frameFiveStep != 0

	switch a.frameCycles {
	case step2:
		a.clockLength()
	case step4:
		if !fiveStep {
			a.clockLength()
			a.raiseFrameIRQ()
		}
	case fourStepPeriod:
		if !fiveStep {
			a.raiseFrameIRQ()
			a.frameCycles = 0
		}
	case step5:
		a.clockLength()
	case fiveStepPeriod:
		a.frameCycles = 0
	}
}

func (a *APU) raiseFrameIRQ() {
	if a.frameMode&frameIRQInhibit == 0 {
		a.frameIRQ = true
	}
}

// clockLength is the half frame clock; envelopes and sweeps are not emulated.
func (a *APU) clockLength() {
	for i := range a.channels {
		a.channels[i].clock()
	}
}

// PollIRQ reports whether the frame IRQ line is asserted. The flag stays set
// until $4015 is read or the IRQ is inhibited.
func (a *APU) PollIRQ() bool {
	return a.frameIRQ
}

// GetSample returns the mixer output, always silence.
func (a *APU) GetSample() int16 {
	return 0
}

func (a *APU) pushSample(sample int16) {
	a.sampleMu.Lock()
	defer a.sampleMu.Unlock()

	if len(a.sampleBuffer) >= maxBufferedSamples {
		// drop the oldest half rather than growing without a consumer
		a.sampleBuffer = append(a.sampleBuffer[:0], a.sampleBuffer[maxBufferedSamples/2:]...)
	}
	a.sampleBuffer = append(a.sampleBuffer, sample)
}

// GetSamples returns up to count buffered samples, padding with silence.
func (a *APU) GetSamples(count int) []int16 {
	out := make([]int16, count)

	a.sampleMu.Lock()
	n := copy(out, a.sampleBuffer)
	a.sampleBuffer = append(a.sampleBuffer[:0], a.sampleBuffer[n:]...)
	a.sampleMu.Unlock()

	return out
}

// Buffered returns the number of samples waiting to be drained.
func (a *APU) Buffered() int {
	a.sampleMu.Lock()
	defer a.sampleMu.Unlock()
	return len(a.sampleBuffer)
}
