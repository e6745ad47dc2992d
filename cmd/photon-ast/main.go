package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"photon/pkg/config"
	"photon/pkg/errors"
	"photon/pkg/lexer"
	"photon/pkg/parser"
	"photon/pkg/source"
)

// Exit codes, as in sysexits.h.
const (
	exitOK       = 0
	exitUsage    = 64
	exitDataErr  = 65
	exitSoftware = 70
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("photon-ast", flag.ContinueOnError)
	flags.SetOutput(stderr)

	configFlag := flags.String("config", "", "Load settings from a TOML or YAML file")
	formatFlag := flags.String("format", "", "Output format: json, yaml or source (default json)")
	indentFlag := flags.Int("indent", 0, "Spaces per nesting level; 0 prints compact JSON (default 2)")
	exprFlag := flags.String("e", "", "Parse the given program text instead of a file")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: photon-ast [options] [file] or photon-ast -e \"program\"\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		return exitUsage
	}

	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
			return exitUsage
		}
		cfg = loaded
	}

	// Flags given on the command line win over the config file.
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Output = *formatFlag
		case "indent":
			cfg.Indent = *indentFlag
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		return exitUsage
	}

	sf, code := readSource(flags, *exprFlag, stdin, stderr)
	if code != exitOK {
		return code
	}

	program, err := parser.ParseSource(sf, lexer.WithMatchTimeout(cfg.MatchTimeout))
	if err != nil {
		if pe, ok := errors.As(err); ok {
			errors.Display(stderr, sf.Content, pe)
			return exitDataErr
		}
		fmt.Fprintf(stderr, "%s: %s\n", sf.DisplayPath(), err)
		return exitSoftware
	}

	if err := dump(stdout, program, cfg); err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		return exitSoftware
	}
	return exitOK
}

// readSource picks the program text: -e, a single file argument, or stdin.
func readSource(flags *flag.FlagSet, expr string, stdin io.Reader, stderr io.Writer) (*source.SourceFile, int) {
	exprSet := false
	flags.Visit(func(f *flag.Flag) {
		if f.Name == "e" {
			exprSet = true
		}
	})

	switch {
	case flags.NArg() > 1 || (exprSet && flags.NArg() > 0):
		flags.Usage()
		return nil, exitUsage

	case exprSet:
		return source.NewExprSource(expr), exitOK

	case flags.NArg() == 1:
		filename := flags.Arg(0)
		content, err := os.ReadFile(filename)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to read file '%s': %s\n", filename, err.Error())
			return nil, exitUsage
		}
		return source.FromFile(filename, string(content)), exitOK

	default:
		content, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to read stdin: %s\n", err.Error())
			return nil, exitSoftware
		}
		return source.NewStdinSource(string(content)), exitOK
	}
}

func dump(w io.Writer, program *parser.Program, cfg config.Config) error {
	switch cfg.Output {
	case config.OutputYAML:
		return parser.DumpYAML(w, program, cfg.Indent)
	case config.OutputSource:
		text, err := parser.Emit(program)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, text)
		return err
	default:
		return parser.DumpJSON(w, program, cfg.Indent)
	}
}
