// Command vole assembles and runs programs for the Vole 8-bit machine.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"vole/driver"
)

func main() {
	app := &cli.App{
		Name:    "vole",
		Usage:   "assemble and run programs for the Vole machine",
		Version: "v0.1.0",
		Commands: []*cli.Command{
			assembleCommand,
			runCommand,
			debugCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var assembleCommand = &cli.Command{
	Name:      "assemble",
	Usage:     "assemble a source file into a ROM image",
	ArgsUsage: "<source.vole>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "ROM output path (defaults to stdout)",
		},
	},
	Action: func(c *cli.Context) error {
		path := c.Args().First()
		if path == "" {
			return cli.Exit("usage: vole assemble <source.vole>", 2)
		}
		source, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		d := driver.New()
		if err := d.Compile(string(source)); err != nil {
			return err
		}

		out := c.String("out")
		if out == "" {
			_, err := os.Stdout.Write(d.ROM)
			return err
		}
		if err := os.WriteFile(out, d.ROM, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %d bytes to %s, start_pc=0x%02X\n", len(d.ROM), out, d.StartPC)
		return nil
	},
}

var runCommand = &cli.Command{
	Name:      "run",
	Usage:     "assemble and run a source file at full speed",
	ArgsUsage: "<source.vole>",
	Action: func(c *cli.Context) error {
		path := c.Args().First()
		if path == "" {
			return cli.Exit("usage: vole run <source.vole>", 2)
		}
		source, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		d := driver.New()
		if err := d.Compile(string(source)); err != nil {
			return err
		}
		if err := d.Run(); err != nil {
			return err
		}

		start := time.Now()
		if err := d.StepFullSpeed(); err != nil {
			return err
		}
		fmt.Printf("halted after %s, registers=%v\n", time.Since(start), d.CPU.Registers())
		return nil
	},
}

var debugCommand = &cli.Command{
	Name:      "debug",
	Usage:     "assemble a source file and step through it interactively",
	ArgsUsage: "<source.vole>",
	Action: func(c *cli.Context) error {
		path := c.Args().First()
		if path == "" {
			return cli.Exit("usage: vole debug <source.vole>", 2)
		}
		source, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		d := driver.New()
		if err := d.Compile(string(source)); err != nil {
			return err
		}
		if err := d.Run(); err != nil {
			return err
		}
		return d.CPU.Debug()
	},
}
