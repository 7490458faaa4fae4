package nestest

import (
	"bufio"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/valerio/go-nesbie/nesbie"
)

const (
	romPath = "../../test-roms/nestest/nestest.nes"
	logPath = "../../test-roms/nestest/nestest.log"

	// automation mode entry point, skips the menu
	automationPC = 0xC000

	// trace columns: address and encoded bytes, then registers onwards
	bytesEnd  = 16
	regsStart = 48
)

// TestNestest replays the reference log line by line. Mnemonic columns are
// not compared, the log spells a few unofficial opcodes differently.
func TestNestest(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping nestest in short mode")
	}
	for _, path := range []string{romPath, logPath} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Skipf("nestest file not found: %s", path)
		}
	}

	console, err := nesbie.NewWithFile(romPath)
	require.NoError(t, err)
	console.CPU().SetPC(automationPC)

	file, err := os.Open(logPath)
	require.NoError(t, err)
	defer file.Close()

	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		want := scanner.Text()
		if len(want) < regsStart {
			continue
		}

		got := console.TraceLine()
		require.Equal(t, want[:bytesEnd], got[:bytesEnd], "line %d\nwant: %s\ngot:  %s", line, want, got)
		require.Equal(t, want[regsStart:], got[regsStart:], "line %d\nwant: %s\ngot:  %s", line, want, got)

		_, err := console.Step()
		require.NoError(t, err, "line %d", line)
	}
	require.NoError(t, scanner.Err())

	// nestest leaves its failure codes at $02 and $03
	require.Zero(t, console.Bus().Peek(0x0002), "official opcode failure code")
	require.Zero(t, console.Bus().Peek(0x0003), "unofficial opcode failure code")
	t.Logf("nestest passed, %d lines", line)
}
