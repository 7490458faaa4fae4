package wavwriter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-nesbie/nesbie/audio"
)

type fakeProvider struct {
	buffered []int16
}

func (f *fakeProvider) TickClock()       {}
func (f *fakeProvider) GetSample() int16 { return 0 }
func (f *fakeProvider) Buffered() int    { return len(f.buffered) }

func (f *fakeProvider) GetSamples(count int) []int16 {
	out := f.buffered[:count]
	f.buffered = f.buffered[count:]
	return out
}

func TestWriter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	w := New(path, 22050)

	p := &fakeProvider{buffered: []int16{0, 1000, -1000}}
	w.Capture(p)
	p.buffered = []int16{32767, -32768}
	w.Capture(p)
	assert.Equal(t, 5, w.Samples())
	assert.Zero(t, p.Buffered())

	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)

	assert.Equal(t, uint32(22050), dec.SampleRate)
	assert.Equal(t, uint16(16), dec.BitDepth)
	assert.Equal(t, uint16(1), dec.NumChans)
	assert.Equal(t, []int{0, 1000, -1000, 32767, -32768}, buf.Data)
}

func TestWriter_CapturesAPUStream(t *testing.T) {
	apu := audio.New()
	for i := 0; i < audio.CPUFrequency/60; i++ {
		apu.TickClock()
	}

	w := New(filepath.Join(t.TempDir(), "apu.wav"), audio.DefaultSampleRate)
	w.Capture(apu)

	// one NTSC frame at 44.1kHz
	assert.InDelta(t, audio.DefaultSampleRate/60, w.Samples(), 1)
	assert.Zero(t, apu.Buffered())
}

func TestWriter_Close(t *testing.T) {
	testCases := []struct {
		desc    string
		path    func(dir string) string
		wantErr bool
	}{
		{desc: "empty recording", path: func(dir string) string { return filepath.Join(dir, "empty.wav") }},
		{desc: "missing directory", path: func(dir string) string { return filepath.Join(dir, "nope", "x.wav") }, wantErr: true},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			w := New(tC.path(t.TempDir()), 0)
			err := w.Close()
			if tC.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.ErrorIs(t, w.Close(), errClosed)
		})
	}
}
