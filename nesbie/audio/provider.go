package audio

// Provider is the audio side of the console as seen by the scheduler and the
// backends.
type Provider interface {
	// TickClock advances the APU by one CPU cycle.
	TickClock()

	// GetSample returns the current output level.
	GetSample() int16

	// GetSamples drains up to count samples generated at the output rate.
	GetSamples(count int) []int16

	// Buffered returns the number of samples waiting to be drained.
	Buffered() int
}

var _ Provider = (*APU)(nil)
