package video

import "sync"

const (
	ScreenWidth  = 256
	ScreenHeight = 240
)

// Color is a packed 0xAARRGGBB pixel.
type Color uint32

// RGB splits a color into its channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// FrameBuffer is a double buffered 256x240 picture. The PPU draws into the
// back buffer without locking; Present swaps it to the front under the lock,
// so readers on other goroutines only ever see complete frames.
type FrameBuffer struct {
	mu     sync.RWMutex
	front  []uint32
	back   []uint32
	frames uint64
}

// NewFrameBuffer creates a frame buffer of the NES screen size.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{
		front: make([]uint32, ScreenWidth*ScreenHeight),
		back:  make([]uint32, ScreenWidth*ScreenHeight),
	}
}

// SetPixel draws into the back buffer. Only the producer calls this.
func (fb *FrameBuffer) SetPixel(x, y int, color Color) {
	fb.back[y*ScreenWidth+x] = uint32(color)
}

// Present publishes the back buffer as the current frame.
func (fb *FrameBuffer) Present() {
	fb.mu.Lock()
	fb.front, fb.back = fb.back, fb.front
	fb.frames++
	fb.mu.Unlock()
}

// GetPixel returns a pixel of the last presented frame.
func (fb *FrameBuffer) GetPixel(x, y int) uint32 {
	fb.mu.RLock()
	defer fb.mu.RUnlock()
	return fb.front[y*ScreenWidth+x]
}

// CopyFrame copies the last presented frame into dst, allocating when dst is
// too small, and returns it with the number of frames presented so far.
func (fb *FrameBuffer) CopyFrame(dst []uint32) ([]uint32, uint64) {
	if len(dst) < ScreenWidth*ScreenHeight {
		dst = make([]uint32, ScreenWidth*ScreenHeight)
	}

	fb.mu.RLock()
	defer fb.mu.RUnlock()
	copy(dst, fb.front)
	return dst, fb.frames
}

// ToSlice returns a copy of the last presented frame.
func (fb *FrameBuffer) ToSlice() []uint32 {
	frame, _ := fb.CopyFrame(nil)
	return frame
}
