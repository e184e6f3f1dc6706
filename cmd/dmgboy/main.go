// Command dmgboy is a headless harness that proves the dmgboy library
// runs a cartridge: it steps a ROM for a fixed number of frames,
// optionally restoring/persisting a save state, and dumps the final
// framebuffer as a PPM image. It is not a Game Boy front-end — no
// window, no live audio device, no input polling loop (spec.md §1's
// module boundary: host rendering/audio/UI are explicitly out of
// scope for the core).
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kdean/dmgboy/gameboy"
	"github.com/kdean/dmgboy/log"
	"github.com/kdean/dmgboy/ppu"
	"github.com/kdean/dmgboy/romfile"
)

func main() {
	app := &cli.App{
		Name:  "dmgboy",
		Usage: "run a Game Boy ROM headlessly and dump a screenshot",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "rom", Required: true, Usage: "path to the ROM (or .7z archive containing one)"},
			&cli.IntFlag{Name: "frames", Value: 60, Usage: "number of frames to run before stopping"},
			&cli.StringFlag{Name: "out", Usage: "write the final frame as a PPM image to this path"},
			&cli.StringFlag{Name: "state-in", Usage: "load a save state before running"},
			&cli.StringFlag{Name: "state-out", Usage: "write a save state after running"},
			&cli.IntFlag{Name: "sample-rate", Value: gameboy.DefaultSampleRate, Usage: "APU sample rate in Hz"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "dmgboy:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger := log.New()

	raw, err := os.ReadFile(c.String("rom"))
	if err != nil {
		return fmt.Errorf("reading rom: %w", err)
	}
	rom, err := romfile.Load(raw)
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}

	gb, err := gameboy.New(rom,
		gameboy.WithLogger(logger),
		gameboy.WithSampleRate(c.Int("sample-rate")),
	)
	if err != nil {
		return fmt.Errorf("constructing gameboy: %w", err)
	}

	if path := c.String("state-in"); path != "" {
		compressed, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading state: %w", err)
		}
		if err := gb.LoadState(compressed); err != nil {
			return fmt.Errorf("loading state: %w", err)
		}
	}

	logger.Infof("running %s for %d frames", gb.Cartridge.Header().Title, c.Int("frames"))

	var frame *ppu.Frame
	for i := 0; i < c.Int("frames"); i++ {
		frame, err = gb.StepFrame()
		if err != nil {
			return fmt.Errorf("stepping frame %d: %w", i, err)
		}
	}

	if path := c.String("out"); path != "" {
		if err := writePPM(path, frame); err != nil {
			return fmt.Errorf("writing screenshot: %w", err)
		}
	}

	if path := c.String("state-out"); path != "" {
		compressed, err := gb.SaveState()
		if err != nil {
			return fmt.Errorf("saving state: %w", err)
		}
		if err := os.WriteFile(path, compressed, 0o644); err != nil {
			return fmt.Errorf("writing state: %w", err)
		}
	}

	return nil
}

// shadeGray maps a 2-bit DMG shade (0=lightest, 3=darkest) to an
// 8-bit grayscale sample for the PPM dump.
var shadeGray = [4]byte{0xFF, 0xAA, 0x55, 0x00}

func writePPM(path string, frame *ppu.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "P6\n%d %d\n255\n", ppu.ScreenWidth, ppu.ScreenHeight)
	row := make([]byte, ppu.ScreenWidth*3)
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			g := shadeGray[frame[y][x]&0x03]
			row[x*3], row[x*3+1], row[x*3+2] = g, g, g
		}
		if _, err := f.Write(row); err != nil {
			return err
		}
	}
	return nil
}
