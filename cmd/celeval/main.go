// Command celeval compiles and evaluates a single CEL expression read
// from a YAML input file, printing its result.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/borud/broker"
	"gopkg.in/yaml.v3"

	"github.com/perbu/celeval/pkg/events"
	"github.com/perbu/celeval/pkg/formatter"
	"github.com/perbu/celeval/pkg/program"
)

const version = "0.1.0-alpha"

// input is the shape of the YAML file celeval reads: a single expression
// plus the environment it should be evaluated against.
type input struct {
	Expression  string         `yaml:"expression"`
	Environment map[string]any `yaml:"environment"`
}

func main() {
	ctx := context.Background()
	code := run(ctx, os.Args[1:])
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	flags := flag.NewFlagSet("celeval", flag.ExitOnError)
	verbose := flags.Bool("v", false, "verbose output (print a compile/eval trace)")
	verboseLong := flags.Bool("verbose", false, "verbose output (print a compile/eval trace)")
	noColor := flags.Bool("no-color", false, "disable color output")
	showVersion := flags.Bool("version", false, "show version")

	if err := flags.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		return 1
	}

	if *showVersion {
		fmt.Printf("celeval version %s\n", version)
		return 0
	}

	if flags.NArg() == 0 {
		printUsage()
		return 1
	}
	inputFile := flags.Arg(0)

	data, err := os.ReadFile(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot read input file: %v\n", err)
		return 1
	}

	var in input
	if err := yaml.Unmarshal(data, &in); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid input file: %v\n", err)
		return 1
	}

	isVerbose := *verbose || *verboseLong
	useColor := !*noColor && formatter.ShouldUseColor()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{}))

	var opts []program.Option
	if isVerbose {
		b := broker.New(broker.Config{})
		opts = append(opts, program.WithEvents(events.NewPublisher(b)))
		ch, err := events.Subscribe(b)
		if err != nil {
			logger.Error("failed to subscribe to trace events", "error", err)
		} else {
			go func() {
				for evt := range ch {
					fmt.Fprint(os.Stderr, formatter.FormatTrace(evt, useColor))
				}
			}()
		}
	}

	env, err := program.EnvFromYAML(in.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid environment: %v\n", err)
		return 1
	}

	v, evalErr := program.Eval(in.Expression, env, opts...)
	fmt.Print(formatter.FormatResult(in.Expression, v, evalErr, useColor))
	if evalErr != nil {
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `celeval - CEL expression evaluator

Usage:
  celeval [options] <input-file>

The input file is YAML:
  expression: "2 + 3 * 4"
  environment:
    x: 1
    y: "hello"

Options:
  -v, --verbose     Print a compile/eval trace
  --no-color        Disable color output
  --version         Show version information

Examples:
  celeval request.yaml
  celeval -v request.yaml
`)
}
