package nesbie_test

import (
	"os"
	"testing"

	"github.com/valerio/go-nesbie/nesbie"
	"github.com/valerio/go-nesbie/nesbie/backend"
	"github.com/valerio/go-nesbie/nesbie/backend/headless"
)

func runHeadless(b *testing.B, console *nesbie.Console, frames int) {
	hBackend := headless.New(frames*(b.N+1), headless.SnapshotConfig{})
	if err := hBackend.Init(backend.BackendConfig{Title: "Benchmark"}); err != nil {
		b.Fatalf("Failed to initialize backend: %v", err)
	}
	defer hBackend.Cleanup()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		for frameCount := 0; frameCount < frames; frameCount++ {
			if err := console.RunUntilFrame(); err != nil {
				b.Fatalf("Frame failed: %v", err)
			}
			if _, err := hBackend.Update(console.GetCurrentFrame()); err != nil {
				b.Fatalf("Backend update failed: %v", err)
			}
		}
	}
}

func BenchmarkConsoleIdleRendering(b *testing.B) {
	console, err := nesbie.NewIdle()
	if err != nil {
		b.Fatalf("Failed to create console: %v", err)
	}
	// background and sprites on, so every dot goes through the pipeline
	console.Bus().Write(0x2001, 0x1E)

	runHeadless(b, console, 60)
}

func BenchmarkConsoleROM(b *testing.B) {
	const path = "../test-roms/nestest/nestest.nes"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		b.Skipf("ROM not found: %s", path)
	}

	console, err := nesbie.NewWithFile(path)
	if err != nil {
		b.Fatalf("Failed to create console: %v", err)
	}
	runHeadless(b, console, 100)
}
