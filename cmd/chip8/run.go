package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/nsf/termbox-go"
	"github.com/urfave/cli"

	"github.com/cosmacvip/chip8/internal/chip8"
	"github.com/cosmacvip/chip8/internal/display"
	"github.com/cosmacvip/chip8/internal/keypad"
)

const (
	defaultCyclePeriod          = 17 * time.Millisecond
	defaultInstructionsPerFrame = 10
)

// runAction implements the chip8 [cycle_period_ms] [instructions_per_frame] ROM_PATH
// argument forms: the leading two positionals may be omitted, in which
// case they default to defaultCyclePeriod and defaultInstructionsPerFrame.
func runAction(c *cli.Context) error {
	args := c.Args()
	if !args.Present() {
		_ = cli.ShowAppHelp(c)
		return cli.NewExitError("a ROM path is required", 2)
	}

	cyclePeriod, ipf, romPath, err := parseArgs(args)
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}

	romFile, err := os.Open(romPath)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("opening rom: %s", err), 1)
	}
	defer romFile.Close()

	vm := chip8.New()
	if err := vm.Load(romFile); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	if logPath := c.String("log"); logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		defer f.Close()
		vm.Logger = log.New(f, "", 0)
	}

	term := display.NewTerminal(termbox.ColorWhite, termbox.ColorBlack)
	if err := term.Init(); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	defer term.Close()

	latch := keypad.New()
	vm.Keypad = latch
	vm.Renderer = term

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go pollKeys(latch)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sig:
			cancel()
		case <-ctx.Done():
		}
	}()

	err = vm.Run(ctx, cyclePeriod, ipf)
	if err == context.Canceled || err == context.DeadlineExceeded || err == chip8.ErrShutdown {
		return nil
	}
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	return nil
}

// pollKeys drains termbox key events into the keypad latch until the
// latch reports shutdown. Termbox blocks on PollEvent until an event
// arrives, so no explicit sleep is needed between scans here; the
// ~5ms polling cadence described for a raw-terminal reader applies to
// the non-canonical-mode host collaborator this implementation
// replaces with termbox's event loop.
func pollKeys(latch *keypad.Latch) {
	for {
		ev := termbox.PollEvent()
		if ev.Type != termbox.EventKey {
			continue
		}

		ch := ev.Ch
		if ev.Key == termbox.KeyEsc {
			ch = 0x1B
		}
		if latch.Handle(ch) {
			return
		}
	}
}

func parseArgs(args cli.Args) (cyclePeriod time.Duration, ipf int, romPath string, err error) {
	switch len(args) {
	case 1:
		return defaultCyclePeriod, defaultInstructionsPerFrame, args[0], nil

	case 2:
		ipf, err = parseNonNegativeInt(args[0])
		if err != nil {
			return 0, 0, "", fmt.Errorf("instructions_per_frame: %w", err)
		}
		return defaultCyclePeriod, ipf, args[1], nil

	case 3:
		ms, err := parseNonNegativeInt(args[0])
		if err != nil {
			return 0, 0, "", fmt.Errorf("cycle_period_ms: %w", err)
		}
		ipf, err = parseNonNegativeInt(args[1])
		if err != nil {
			return 0, 0, "", fmt.Errorf("instructions_per_frame: %w", err)
		}
		return time.Duration(ms) * time.Millisecond, ipf, args[2], nil

	default:
		return 0, 0, "", fmt.Errorf("expected 1 to 3 arguments, got %d", len(args))
	}
}

func parseNonNegativeInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%q must not be negative", s)
	}
	return n, nil
}
