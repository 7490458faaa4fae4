// Package wavwriter records the console's sample stream to a WAV file. Samples
// are buffered in memory and written out on Close, so it is meant for test
// runs rather than long sessions.
package wavwriter

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/valerio/go-nesbie/nesbie/audio"
)

const (
	bitDepth    = 16
	numChannels = 1
	pcmFormat   = 1
)

var errClosed = errors.New("wavwriter: already closed")

// Writer collects samples from an audio.Provider.
type Writer struct {
	filename   string
	sampleRate int
	samples    []int
	closed     bool
}

// New creates a writer for samples produced at sampleRate.
func New(filename string, sampleRate int) *Writer {
	if sampleRate <= 0 {
		sampleRate = audio.DefaultSampleRate
	}
	return &Writer{
		filename:   filename,
		sampleRate: sampleRate,
	}
}

// Capture drains every sample the provider has buffered.
func (w *Writer) Capture(p audio.Provider) {
	if w.closed {
		return
	}
	for _, s := range p.GetSamples(p.Buffered()) {
		w.samples = append(w.samples, int(s))
	}
}

// Samples returns the number of samples captured so far.
func (w *Writer) Samples() int { return len(w.samples) }

// Close encodes the captured samples and writes the file.
func (w *Writer) Close() (rerr error) {
	if w.closed {
		return errClosed
	}
	w.closed = true

	f, err := os.Create(w.filename)
	if err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("wavwriter: %w", err)
		}
	}()

	enc := wav.NewEncoder(f, w.sampleRate, bitDepth, numChannels, pcmFormat)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: numChannels, SampleRate: w.sampleRate},
		Data:           w.samples,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}

	slog.Info("Audio written", "file", w.filename, "samples", len(w.samples), "rate", w.sampleRate)
	return nil
}
