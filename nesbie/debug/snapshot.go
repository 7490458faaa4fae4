package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/valerio/go-nesbie/nesbie/video"
)

// FrameImage converts the last presented frame to an image.
func FrameImage(frame *video.FrameBuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, video.ScreenWidth, video.ScreenHeight))
	for i, pixel := range frame.ToSlice() {
		r, g, b := video.Color(pixel).RGB()
		img.SetRGBA(i%video.ScreenWidth, i/video.ScreenWidth, color.RGBA{R: r, G: g, B: b, A: 0xFF})
	}
	return img
}

// SaveFramePNG writes the frame as a PNG file at path.
func SaveFramePNG(frame *video.FrameBuffer, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, FrameImage(frame)); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// SaveFramePNGToDir saves a frame as a timestamped PNG in directory, or the
// working directory when empty. Returns the written path.
func SaveFramePNGToDir(frame *video.FrameBuffer, baseName, directory string) (string, error) {
	if directory == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		directory = cwd
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(directory, fmt.Sprintf("%s_%s.png", baseName, timestamp))
	if err := SaveFramePNG(frame, path); err != nil {
		return "", err
	}

	slog.Info("Snapshot saved", "path", path, "size", fmt.Sprintf("%dx%d", video.ScreenWidth, video.ScreenHeight), "format", "PNG")
	return path, nil
}

// TakeSnapshot handles the snapshot key for interactive backends.
func TakeSnapshot(frame *video.FrameBuffer) {
	if frame == nil {
		slog.Warn("No frame data available for snapshot")
		return
	}
	if _, err := SaveFramePNGToDir(frame, "nesbie_snapshot", ""); err != nil {
		slog.Error("Failed to save snapshot", "error", err)
	}
}
