package audio

// Timing constants, NTSC.
// Reference: https://www.nesdev.org/wiki/APU_Frame_Counter
const (
	// CPUFrequency is the 2A03 clock in Hz.
	CPUFrequency = 1789773

	// DefaultSampleRate is the output rate backends are expected to play at.
	DefaultSampleRate = 44100

	// frame sequencer step points, in CPU cycles since the sequence start
	// quarter frame clocks (envelopes, linear counter) are not emulated
	step2 = 14913
	step4 = 29829
	step5 = 37281

	fourStepPeriod = 29830
	fiveStepPeriod = 37282

	// maxBufferedSamples bounds the sample buffer when nothing drains it.
	maxBufferedSamples = DefaultSampleRate / 4
)

// lengthTable maps the 5 bit length index written to $4003/$4007/$400B/$400F
// to a length counter value.
var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

// channel indexes, matching the $4015 enable bits
const (
	pulse1 = iota
	pulse2
	triangle
	noise
	channelCount
)
