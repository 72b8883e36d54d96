// Command chip8 runs a CHIP-8 ROM in the controlling terminal.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "chip8"
	app.Usage = "run a CHIP-8 program in the terminal"
	app.UsageText = "chip8 [cycle_period_ms] [instructions_per_frame] ROM_PATH"
	app.Version = "0.1.0"
	app.Action = runAction
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "log",
			Usage: "write a per-opcode trace log to this file",
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "chip8:", err)
		os.Exit(1)
	}
}
