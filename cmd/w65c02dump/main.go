// Command w65c02dump loads a raw binary image into memory and
// disassembles it from start_pc to end of buffer, one instruction per
// line. Adapted from the teacher's disassembler/disassembler.go: the
// C64 PRG-header/BASIC-listing special case is dropped (a different
// 6502-family host format, out of this core's scope), leaving a plain
// raw-binary disassembler driven by the new Decoder-based
// disassemble.Step instead of the teacher's standalone opcode switch.
package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"gopkg.in/urfave/cli.v2"

	"github.com/siska-tech/w65c02emu/disassemble"
	"github.com/siska-tech/w65c02emu/memory"
)

func main() {
	app := &cli.App{
		Name:  "w65c02dump",
		Usage: "Disassemble a raw W65C02S binary image",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "start_pc", Value: 0x0000, Usage: "PC value to start disassembling"},
			&cli.IntFlag{Name: "offset", Value: 0x0000, Usage: "offset into memory to load the image at"},
		},
		Action: run,
	}
	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("w65c02dump: %v", err)
	}
}

func run(c *cli.Context) error {
	if c.Args().Len() != 1 {
		cli.ShowAppHelp(c)
		return cli.Exit("exactly one filename argument is required", 86)
	}
	data, err := os.ReadFile(c.Args().Get(0))
	if err != nil {
		return cli.Exit(fmt.Sprintf("reading file: %v", err), 1)
	}

	offset := c.Int("offset")
	if max := 1<<16 - offset; len(data) > max {
		fmt.Printf("length %d at offset %d too long, truncating to 64K\n", len(data), offset)
		data = data[:max]
	}

	bus := memory.NewBus()
	for i, b := range data {
		bus.Write(uint16(offset+i), b)
	}

	pc := uint16(c.Int("start_pc"))
	fmt.Printf("0x%X bytes at pc: %.4X\n", len(data), pc)
	for count := 0; count < len(data); {
		text, length := disassemble.Step(pc, bus)
		fmt.Println(text)
		pc += uint16(length)
		count += length
	}
	return nil
}
