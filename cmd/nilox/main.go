// Command nilox is the external CLI collaborator: with no arguments it
// opens a REPL, with one argument it runs the named script, and with any
// other argument count it reports a usage error.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/sirupsen/logrus"

	"nilox/config"
	"nilox/vm"
)

const (
	exitOK           = 0
	exitCompileError = 65
	exitRuntimeError = 70
	exitUsageError   = 64
	exitFileError    = 74
)

func main() {
	debug := config.FromEnv()
	if debug.TraceExecution || debug.PrintCode {
		logrus.SetLevel(logrus.DebugLevel)
	}
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	switch len(args) {
	case 0:
		return repl()
	case 1:
		return runFile(args[0])
	default:
		fmt.Fprintln(os.Stderr, "Usage: nilox [path]")
		return exitUsageError
	}
}

func repl() int {
	rl, err := readline.New("> ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsageError
	}
	defer rl.Close()

	machine := vm.New()
	defer machine.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return exitOK
			}
			fmt.Fprintln(os.Stderr, err)
			return exitOK
		}
		if line == "exit" {
			return exitOK
		}
		if line == "" {
			continue
		}
		machine.Interpret(line)
	}
}

func runFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not read file %q: %v\n", path, err)
		return exitFileError
	}

	machine := vm.New()
	defer machine.Close()

	switch machine.Interpret(string(source)) {
	case vm.ResultCompileError:
		return exitCompileError
	case vm.ResultRuntimeError:
		return exitRuntimeError
	default:
		return exitOK
	}
}
