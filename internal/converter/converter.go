// Package converter turns JSON input files into constant declarations.
package converter

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/mcncl/jsonconst/internal/errors"
	"github.com/mcncl/jsonconst/internal/generator"
	"github.com/mcncl/jsonconst/internal/naming"
	"github.com/mcncl/jsonconst/internal/parser"
)

// Options control how constant names are built.
type Options struct {
	Strategy naming.Strategy
	Style    naming.Style
	Prefix   string
	Postfix  string
}

// Converter appends one declaration per converted input to its output.
type Converter struct {
	out        io.Writer
	outputName string
	opts       Options
	generator  *generator.Generator
	logger     *slog.Logger
}

// New returns a Converter writing to out. outputName identifies out in
// error messages.
func New(out io.Writer, outputName string, opts Options, logger *slog.Logger) *Converter {
	if opts.Strategy == "" {
		opts.Strategy = naming.FromFileName
	}
	if opts.Style == "" {
		opts.Style = naming.StyleSplit
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Converter{
		out:        out,
		outputName: outputName,
		opts:       opts,
		generator:  generator.NewGenerator(),
		logger:     logger,
	}
}

// Convert reads the JSON file at path and appends its declaration. Nothing is
// written when any step fails.
func (c *Converter) Convert(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.NewNotFoundError(path, err)
	}

	doc, err := parser.ParseFile(absPath)
	if err != nil {
		return err
	}

	raw, err := naming.ResolveName(c.opts.Strategy, absPath, doc.Root)
	if err != nil {
		return err
	}

	// A prefix or postfix alone is enough to name the constant.
	identifier := naming.Identifier(raw, c.opts.Style)
	name := generator.ConstantName(c.opts.Prefix, identifier, c.opts.Postfix)
	if name == "" {
		return errors.NewNamingError(absPath, fmt.Sprintf("name %q yields an empty identifier", raw), errors.ErrEmptyIdentifier)
	}

	declaration, err := c.generator.GenerateDeclaration(name, doc.Root)
	if err != nil {
		return errors.NewUnknownError(absPath, "failed to render declaration", err)
	}

	n, err := io.WriteString(c.out, declaration)
	if err != nil {
		return errors.NewIOError(c.outputName, err)
	}

	c.logger.Debug("converted input", "path", absPath, "name", name, "bytes", n)
	return nil
}
