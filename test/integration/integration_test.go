package integration

import (
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/valerio/go-nesbie/nesbie"
	"github.com/valerio/go-nesbie/nesbie/debug"
	"github.com/valerio/go-nesbie/nesbie/memory"
	"github.com/valerio/go-nesbie/nesbie/video"
)

type IntegrationTestCase struct {
	ROMPath string
	Frames  int
	Name    string
	Presses []press
}

// press holds a controller button down for one frame.
type press struct {
	Frame  int
	Button memory.JoypadButton
}

func GetIntegrationTests() []IntegrationTestCase {
	baseDir := "../../test-roms/nes-test-roms"

	return []IntegrationTestCase{
		{
			ROMPath: "../../test-roms/nestest/nestest.nes",
			Frames:  30,
			Name:    "nestest-menu",
		},
		{
			ROMPath: "../../test-roms/nestest/nestest.nes",
			Frames:  60,
			Name:    "nestest-official",
			Presses: []press{{Frame: 30, Button: memory.JoypadStart}},
		},
		{
			ROMPath: filepath.Join(baseDir, "sprite_hit_tests_2005.10.05", "01.basics.nes"),
			Frames:  60,
			Name:    "sprite_hit-01-basics",
		},
		{
			ROMPath: filepath.Join(baseDir, "sprite_overflow_tests", "1.Basics.nes"),
			Frames:  60,
			Name:    "sprite_overflow-1-basics",
		},
		{
			ROMPath: filepath.Join(baseDir, "scrolltest", "scroll.nes"),
			Frames:  120,
			Name:    "scrolltest",
		},
		{
			ROMPath: filepath.Join(baseDir, "mmc3_test_2", "rom_singles", "1-clocking.nes"),
			Frames:  120,
			Name:    "mmc3-1-clocking",
		},
	}
}

// frameBytes flattens the RGB channels of the presented frame.
func frameBytes(fb *video.FrameBuffer) []byte {
	pixels := fb.ToSlice()
	data := make([]byte, 0, len(pixels)*3)
	for _, pixel := range pixels {
		r, g, b := video.Color(pixel).RGB()
		data = append(data, r, g, b)
	}
	return data
}

func runIntegrationTest(t *testing.T, testCase IntegrationTestCase) {
	if _, err := os.Stat(testCase.ROMPath); os.IsNotExist(err) {
		t.Skipf("Test ROM not found: %s", testCase.ROMPath)
		return
	}

	t.Logf("Running integration test: %s (%s)", testCase.Name, testCase.ROMPath)
	console, err := nesbie.NewWithFile(testCase.ROMPath)
	require.NoError(t, err)

	for frame := 0; frame < testCase.Frames; frame++ {
		for _, p := range testCase.Presses {
			if p.Frame == frame {
				console.Joypad(1).Press(p.Button)
			}
			if p.Frame+1 == frame {
				console.Joypad(1).Release(p.Button)
			}
		}
		require.NoError(t, console.RunFrame(), "frame %d", frame)
	}

	fb := console.GetCurrentFrame()
	binaryData := frameBytes(fb)
	hash := fmt.Sprintf("%x", md5.Sum(binaryData))

	screenDataPath := filepath.Join("testdata", fmt.Sprintf("%s.bin", testCase.Name))
	snapshotPath := filepath.Join("testdata", "snapshots", fmt.Sprintf("%s.png", testCase.Name))
	require.NoError(t, os.MkdirAll(filepath.Join("testdata", "snapshots"), 0755))

	if os.Getenv("NESBIE_GENERATE_GOLDEN") == "true" {
		t.Logf("Generating reference files for %s", testCase.Name)
		require.NoError(t, os.WriteFile(screenDataPath, binaryData, 0644))
		require.NoError(t, debug.SaveFramePNG(fb, snapshotPath))
		t.Logf("Reference files generated - hash: %s", hash)
		return
	}

	expectedData, err := os.ReadFile(screenDataPath)
	if os.IsNotExist(err) {
		t.Skipf("Screen data file not found: %s. Run with NESBIE_GENERATE_GOLDEN=true to create it.", screenDataPath)
	}
	require.NoError(t, err)

	expectedHash := fmt.Sprintf("%x", md5.Sum(expectedData))
	if hash == expectedHash {
		t.Logf("Test passed - hash: %s", hash)
		return
	}

	actualBinPath := filepath.Join("testdata", fmt.Sprintf("%s_actual.bin", testCase.Name))
	actualPngPath := filepath.Join("testdata", "snapshots", fmt.Sprintf("%s_actual.png", testCase.Name))
	_ = os.WriteFile(actualBinPath, binaryData, 0644)
	_ = debug.SaveFramePNG(fb, actualPngPath)

	t.Errorf("Test output differs from expected\n  Expected hash: %s\n  Actual hash:   %s\n  Files saved:   %s, %s",
		expectedHash, hash, actualBinPath, actualPngPath)
}

func TestIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	for _, testCase := range GetIntegrationTests() {
		testCase := testCase
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()
			runIntegrationTest(t, testCase)
		})
	}
}
