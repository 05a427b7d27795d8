// Command w65c02run loads a raw ROM image, maps it at a configurable base
// address plus a RAM window below it, and runs the core to completion (or
// for a fixed cycle budget), printing a final register snapshot. Flag
// parsing follows master-g-childhood's chr2png/dumper tools:
// gopkg.in/urfave/cli.v2.
package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"gopkg.in/urfave/cli.v2"

	"github.com/siska-tech/w65c02emu/cpu"
	"github.com/siska-tech/w65c02emu/inspector"
	"github.com/siska-tech/w65c02emu/memory"
	"github.com/siska-tech/w65c02emu/system"
)

func main() {
	app := &cli.App{
		Name:    "w65c02run",
		Usage:   "Run a raw W65C02S ROM image to completion (STP) or a fixed cycle budget",
		Version: "v0.0.1",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "rom", Aliases: []string{"r"}, Usage: "path to a raw ROM image"},
			&cli.IntFlag{Name: "base", Aliases: []string{"b"}, Value: 0x8000, Usage: "address the ROM image is mapped at"},
			&cli.IntFlag{Name: "ram", Usage: "size in bytes of the zero-page/stack RAM window mapped at $0000", Value: 0x0800},
			&cli.Uint64Flag{Name: "cycles", Aliases: []string{"c"}, Usage: "if > 0, run exactly this many master cycles instead of until STP"},
			&cli.BoolFlag{Name: "debug", Usage: "print a register snapshot after every instruction"},
		},
		Action: run,
	}
	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("w65c02run: %v", err)
	}
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		cli.ShowAppHelp(c)
		return cli.Exit("--rom is required", 86)
	}
	image, err := os.ReadFile(romPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("reading ROM: %v", err), 1)
	}

	base := uint16(c.Int("base"))
	ram, err := memory.NewRAM(c.Int("ram"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("configuring RAM: %v", err), 1)
	}
	rom := memory.NewROM(image)

	cfg := system.Config{
		Mode: system.Continuous,
		Devices: []system.DeviceDescriptor{
			{Name: "ram", Device: ram, Start: 0, End: uint16(c.Int("ram") - 1)},
			{Name: "rom", Device: rom, Start: base, End: base + uint16(len(image)-1), ReadOnly: true},
		},
		ResetVector: base, HasResetVector: true,
	}
	if c.Uint64("cycles") > 0 {
		cfg.Mode = system.Targeted
		cfg.TargetCycles = c.Uint64("cycles")
	}

	sys, err := system.New(cfg)
	if err != nil {
		return cli.Exit(fmt.Sprintf("assembling system: %v", err), 1)
	}
	ins := inspector.New(sys.Chip, sys.Bus, sys.Interrupts)

	if c.Bool("debug") {
		for sys.Chip.State() != cpu.Stopped {
			sys.Engine.StepInstruction()
			sys.SampleDeviceIRQs()
			fmt.Println(ins.String())
		}
	} else {
		sys.Run()
	}

	fmt.Println(ins.String())
	return nil
}
