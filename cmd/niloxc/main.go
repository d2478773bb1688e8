// Command niloxc is a developer-only bytecode inspection tool: it compiles
// a source file and prints its disassembly. It is not part of the nilox
// CLI contract; it exists purely to exercise the compiler and chunk
// packages from the command line during development.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"nilox/chunk"
	"nilox/compiler"
	"nilox/config"
	"nilox/value"
)

func main() {
	logrus.SetLevel(logrus.DebugLevel)
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&disasmCmd{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}

type disasmCmd struct{}

func (*disasmCmd) Name() string     { return "disasm" }
func (*disasmCmd) Synopsis() string { return "compile a source file and print its disassembly" }
func (*disasmCmd) Usage() string    { return "disasm <file>\n" }
func (*disasmCmd) SetFlags(*flag.FlagSet) {}

func (*disasmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: niloxc disasm <file>")
		return subcommands.ExitUsageError
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not read file: %v\n", err)
		return subcommands.ExitFailure
	}

	interns := value.NewInternTable()
	comp := compiler.New(interns.InternCopy, config.Debug{})
	ch, err := comp.Compile(string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "compile error:\n%v\n", err)
		return subcommands.ExitFailure
	}

	chunk.DisassembleChunk(ch, args[0])
	return subcommands.ExitSuccess
}
