package generator

import (
	"bytes"
	"fmt"

	"github.com/mcncl/jsonconst/internal/formatter"
	"github.com/mcncl/jsonconst/internal/models"
)

// Generator renders output declarations that bind a constant name to a
// JSON literal.
type Generator struct {
	formatter *formatter.Formatter
}

// NewGenerator creates a new Generator instance
func NewGenerator() *Generator {
	return &Generator{formatter: formatter.NewFormatter()}
}

// GenerateDeclaration returns one newline-terminated declaration:
//
//	export const <name> = <json> as const;
//
// The name is written as given; it is not validated here.
func (g *Generator) GenerateDeclaration(name string, value models.JSONValue) (string, error) {
	literal, err := g.formatter.Format(value)
	if err != nil {
		return "", fmt.Errorf("failed to render value of %s: %w", name, err)
	}

	var buf bytes.Buffer
	buf.WriteString("export const ")
	buf.WriteString(name)
	buf.WriteString(" = ")
	buf.WriteString(literal)
	buf.WriteString(" as const;\n")
	return buf.String(), nil
}

// ConstantName joins prefix, identifier and postfix. Prefix and postfix are
// used verbatim.
func ConstantName(prefix, identifier, postfix string) string {
	return prefix + identifier + postfix
}
