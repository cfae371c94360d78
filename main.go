package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	stderrors "errors"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/mcncl/jsonconst/internal/config"
	"github.com/mcncl/jsonconst/internal/converter"
	"github.com/mcncl/jsonconst/internal/errors"
)

// CLI defines the command-line interface
type CLI struct {
	Inputs         []string `arg:"" name:"input" help:"JSON files to convert, processed in the order given."`
	Output         string   `short:"o" placeholder:"PATH" help:"Output file, truncated before the first input is read. Writes to stdout when omitted or '-'."`
	NamingStrategy string   `enum:"from_file_name,from_file_content" default:"from_file_name" help:"Where constant names come from (${enum})."`
	Postfix        string   `help:"Appended to every constant name as is."`
	Prefix         string   `help:"Prepended to every constant name as is."`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("jsonconst"),
		kong.Description("Embed JSON files as constant declarations."),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		report(stderr, err)
		return 1
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		var parseErr *kong.ParseError
		if stderrors.As(err, &parseErr) && parseErr.Context != nil {
			parser.Stdout = stderr
			_ = parseErr.Context.PrintUsage(true)
		}
		return 1
	}

	wd, err := os.Getwd()
	if err != nil {
		report(stderr, errors.NewConfigError("", "cannot determine working directory", err))
		return 1
	}
	cfg, err := config.Load(wd)
	if err != nil {
		report(stderr, err)
		return 1
	}
	if err := cfg.Apply(explicitFlags(ctx, &cli)); err != nil {
		report(stderr, err)
		return 1
	}

	logger := newLogger(stderr, cfg.Debug)
	logger.Debug("configuration loaded",
		"source", cfg.String(),
		"naming_strategy", cfg.NamingStrategy,
		"identifier_style", cfg.IdentifierStyle,
		"inputs", len(cli.Inputs))

	out, outputName, closeOutput, err := openOutput(cfg, stdout)
	if err != nil {
		report(stderr, err)
		return 1
	}
	logger.Debug("output opened", "output", outputName)

	conv := converter.New(out, outputName, converter.Options{
		Strategy: cfg.Strategy(),
		Style:    cfg.Style(),
		Prefix:   cfg.Prefix,
		Postfix:  cfg.Postfix,
	}, logger)

	// The first failure ends the run; declarations already written stay.
	for _, input := range cli.Inputs {
		if err := conv.Convert(input); err != nil {
			_ = closeOutput()
			report(stderr, err)
			return 1
		}
	}

	if err := closeOutput(); err != nil {
		report(stderr, errors.NewIOError(outputName, err))
		return 1
	}
	return 0
}

// explicitFlags collects the flags present on the command line. Defaults are
// left out so they do not mask config file or environment values.
func explicitFlags(ctx *kong.Context, cli *CLI) config.Overrides {
	var o config.Overrides
	for _, p := range ctx.Path {
		if p.Flag == nil {
			continue
		}
		switch p.Flag.Name {
		case "output":
			o.Output = &cli.Output
		case "naming-strategy":
			o.NamingStrategy = &cli.NamingStrategy
		case "prefix":
			o.Prefix = &cli.Prefix
		case "postfix":
			o.Postfix = &cli.Postfix
		}
	}
	return o
}

// openOutput returns the destination for declarations. A file destination is
// created or truncated immediately.
func openOutput(cfg *config.Config, stdout io.Writer) (io.Writer, string, func() error, error) {
	if cfg.WritesToStdout() {
		return stdout, "<stdout>", func() error { return nil }, nil
	}

	file, err := os.OpenFile(cfg.Output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, cfg.Output, nil, errors.NewOutputWriteError(cfg.Output, err)
	}
	return file, cfg.Output, file.Close, nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// report prints err as a single diagnostic line. The label is coloured only
// when w is a terminal.
func report(w io.Writer, err error) {
	label := color.New(color.FgRed, color.Bold)
	if colorEnabled(w) {
		label.EnableColor()
	} else {
		label.DisableColor()
	}
	_, _ = label.Fprint(w, "jsonconst:")
	_, _ = fmt.Fprintf(w, " %s\n", errors.UserFriendlyError(err))
}

// colorEnabled reports whether w is a terminal that accepts colour.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if _, set := os.LookupEnv("NO_COLOR"); set || os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
