// samd-layout resolves, exports and checks SAMD flash layouts.
package main

import (
	"fmt"
	"os"

	"github.com/q0jt/go-samd/cmd/samd-layout/commands"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitCommandError)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var exitCode int
	switch cmd {
	case "resolve":
		exitCode = commands.RunResolve(args, os.Stdout, os.Stderr)
	case "check":
		exitCode = commands.RunCheck(args, os.Stdout, os.Stderr)
	case "extract":
		exitCode = commands.RunExtract(args, os.Stdout, os.Stderr)
	case "usage":
		exitCode = commands.RunUsage(args, os.Stdin, os.Stdout, os.Stderr)
	case "chips":
		exitCode = commands.RunChips(args, os.Stdout, os.Stderr)
	case "help", "-h", "--help":
		printUsage()
		exitCode = exitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		exitCode = exitCommandError
	}

	os.Exit(exitCode)
}

func printUsage() {
	fmt.Println(`samd-layout - SAMD flash layout tool

Usage:
  samd-layout <command> [options]

Commands:
  resolve   Compute the flash layout and write it in a chosen format
  check     Check that an Intel HEX image fits a region
  extract   Copy one region out of a flash dump
  usage     Report free flash and RAM from binutils size output
  chips     List known chips

Layout options (resolve, check, extract, usage):
  -chip samd21g18a | -family samd21    select the part
  -boards pkl/boards.pkl -board name   select a board definition
  -fs -calibrate                       feature flags
  -nvm-size -fs-size -config-size      size overrides (accept K and M suffixes)

Examples:
  samd-layout resolve -chip samd21e18a -fs -calibrate
  samd-layout resolve -boards pkl/boards.yaml -board trinket_m0 -format ld -o memory.ld
  samd-layout check -chip samd51j19a -hex firmware.hex
  arm-none-eabi-size build/firmware.elf | samd-layout usage -chip samd21g18a -fs

For command-specific help, run:
  samd-layout <command> -h`)
}
