package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/valerio/go-nesbie/nesbie"
	"github.com/valerio/go-nesbie/nesbie/audio"
	"github.com/valerio/go-nesbie/nesbie/audio/wavwriter"
	"github.com/valerio/go-nesbie/nesbie/backend"
	"github.com/valerio/go-nesbie/nesbie/backend/headless"
	"github.com/valerio/go-nesbie/nesbie/backend/terminal"
	"github.com/valerio/go-nesbie/nesbie/input"
	"github.com/valerio/go-nesbie/nesbie/timing"
)

func main() {
	app := cli.NewApp()
	app.Name = "Nesbie"
	app.Description = "A cycle driven NES emulator"
	app.Usage = "nesbie [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the iNES ROM file",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run the emulator without a terminal interface",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
		},
		cli.BoolFlag{
			Name:  "test-pattern",
			Usage: "Display the palette test pattern instead of emulation",
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save PNG snapshots every N frames in headless mode (0 = disabled)",
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
		cli.IntFlag{
			Name:  "trace",
			Usage: "Print a nestest style trace of N instructions to stdout and exit",
		},
		cli.StringFlag{
			Name:  "start-pc",
			Usage: "Start execution here instead of the reset vector, e.g. C000",
		},
		cli.BoolFlag{
			Name:  "no-limit",
			Usage: "Run as fast as possible instead of at 60 fps",
		},
		cli.IntFlag{
			Name:  "scale",
			Usage: "Terminal downscale factor, 1 draws every pixel",
			Value: 2,
		},
		cli.StringFlag{
			Name:  "audio-out",
			Usage: "Record the APU sample stream to a WAV file",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Start with the debug panel open",
		},
	}
	app.Action = runEmulator

	if err := app.Run(os.Args); err != nil {
		slog.Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

func runEmulator(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" && c.NArg() > 0 {
		romPath = c.Args().Get(0)
	}
	if romPath == "" && !c.Bool("test-pattern") {
		cli.ShowAppHelp(c)
		return errors.New("no ROM path provided")
	}

	var (
		console *nesbie.Console
		err     error
	)
	if romPath != "" {
		console, err = nesbie.NewWithFile(romPath)
	} else {
		console, err = nesbie.NewIdle()
	}
	if err != nil {
		return err
	}

	if startPC := c.String("start-pc"); startPC != "" {
		pc, err := parseAddress(startPC)
		if err != nil {
			return err
		}
		console.CPU().SetPC(pc)
		slog.Info("Overriding reset vector", "pc", fmt.Sprintf("0x%04X", pc))
	}

	if n := c.Int("trace"); n > 0 {
		return runTrace(console, n, os.Stdout)
	}

	var (
		b       backend.Backend
		limiter timing.Limiter
	)
	if c.Bool("headless") {
		frames := c.Int("frames")
		if frames <= 0 {
			return errors.New("headless mode requires --frames option with a positive value")
		}

		snapshotConfig, err := headless.CreateSnapshotConfig(c.Int("snapshot-interval"), c.String("snapshot-dir"), romPath)
		if err != nil {
			return err
		}

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		b = headless.New(frames, snapshotConfig)
		limiter = timing.NewNoOpLimiter()
	} else {
		b = terminal.New()
		limiter = timing.New(!c.Bool("no-limit"))
	}

	manager := input.NewManager(console.Joypad(1))
	loop := backend.NewLoop(console, b, manager, limiter)

	if path := c.String("audio-out"); path != "" {
		recorder := wavwriter.New(path, audio.DefaultSampleRate)
		loop.OnFrame(func() { recorder.Capture(console.Audio()) })
		defer func() {
			if err := recorder.Close(); err != nil {
				slog.Error("Failed to write audio", "error", err)
			}
		}()
	}

	config := backend.BackendConfig{
		Title:         "Nesbie",
		Scale:         c.Int("scale"),
		ShowDebug:     c.Bool("debug"),
		TestPattern:   c.Bool("test-pattern"),
		InputManager:  manager,
		DebugProvider: loop,
		Callbacks: backend.BackendCallbacks{
			OnQuit: loop.Quit,
		},
	}
	if err := b.Init(config); err != nil {
		return err
	}
	defer b.Cleanup()

	return loop.Run()
}

// runTrace steps the console n times, writing one trace line per
// instruction. A CPU halt ends the trace early without an error.
func runTrace(console *nesbie.Console, n int, out io.Writer) error {
	w := bufio.NewWriter(out)
	defer w.Flush()

	for i := 0; i < n; i++ {
		fmt.Fprintln(w, console.TraceLine())
		if _, err := console.Step(); err != nil {
			if errors.Is(err, nesbie.ErrCPUHalted) {
				slog.Warn("Trace ended on halted CPU", "instructions", i+1)
				return nil
			}
			return err
		}
	}
	return nil
}

// parseAddress accepts C000, $C000 and 0xC000.
func parseAddress(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "$"), "0x")
	value, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uint16(value), nil
}
