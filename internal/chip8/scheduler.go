package chip8

import (
	"context"
	"time"
)

// Run loops until ctx is cancelled or a fatal VM error occurs. Each
// tick of cyclePeriod it executes instructionsPerFrame successive
// fetch-decode-execute cycles, renders the display once, and
// decrements DT and ST by one each if they are positive. This cadence
// produces a nominal 60Hz timer when cyclePeriod is 16-17ms, with CPU
// speed tuned by instructionsPerFrame.
//
// Run never sleeps between individual instructions: the only
// suspension point is the wait for the next tick.
//
// If vm.Keypad implements an optional Done() <-chan struct{} method
// (internal/keypad.Latch does, closing it once ESC is handled), Run
// selects on it too and returns ErrShutdown instead of ctx.Err() when
// it fires, so callers can tell an operator-requested shutdown apart
// from external context cancellation.
func (vm *VM) Run(ctx context.Context, cyclePeriod time.Duration, instructionsPerFrame int) error {
	ticker := time.NewTicker(cyclePeriod)
	defer ticker.Stop()

	var done <-chan struct{}
	if d, ok := vm.Keypad.(interface{ Done() <-chan struct{} }); ok {
		done = d.Done()
	}

	for {
		select {
		case <-done:
			return ErrShutdown
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := vm.frame(instructionsPerFrame); err != nil {
				return err
			}
		}
	}
}

func (vm *VM) frame(instructionsPerFrame int) error {
	for i := 0; i < instructionsPerFrame; i++ {
		if _, err := vm.Step(); err != nil {
			return err
		}
	}

	if err := vm.renderer().Render(&vm.Display); err != nil {
		return err
	}

	if vm.DT > 0 {
		vm.DT--
	}
	if vm.ST > 0 {
		vm.ST--
	}

	return nil
}
