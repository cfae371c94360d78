// Package naming derives constant names from input files.
package naming

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jsonconst/internal/errors"
	"github.com/mcncl/jsonconst/internal/formatter"
	"github.com/mcncl/jsonconst/internal/models"
)

// Strategy selects where the raw name of a constant comes from.
type Strategy string

const (
	// FromFileName uses the input's base name without its extension.
	FromFileName Strategy = "from_file_name"
	// FromFileContent uses the top-level "name" attribute of the input.
	FromFileContent Strategy = "from_file_content"
)

// Strategies lists the accepted strategies, default first.
var Strategies = []Strategy{FromFileName, FromFileContent}

// ParseStrategy validates s as a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	for _, strategy := range Strategies {
		if string(strategy) == s {
			return strategy, nil
		}
	}
	return "", fmt.Errorf("%w %q (expected one of %s)", errors.ErrUnknownStrategy, s, joinStrategies())
}

func joinStrategies() string {
	names := make([]string, len(Strategies))
	for i, s := range Strategies {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// Style selects how a raw name becomes an identifier.
type Style string

const (
	// StyleSplit splits on non-word characters and capitalizes each fragment.
	StyleSplit Style = "split"
	// StyleStrcase normalizes the raw name with strcase.ToCamel first.
	StyleStrcase Style = "strcase"
)

// ParseStyle validates s as a Style.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleSplit, StyleStrcase:
		return Style(s), nil
	}
	return "", fmt.Errorf("unknown identifier style %q (expected %s or %s)", s, StyleSplit, StyleStrcase)
}

// Sanitize turns s into an upper camel case identifier. s is split into runs
// of ASCII letters, digits and underscores; every run gets an upper case
// first character and the runs are joined. Separators leave no trace, so a
// string without word characters yields "".
func Sanitize(s string) string {
	fragments := strings.FieldsFunc(s, func(r rune) bool { return !isWordChar(r) })

	var sb strings.Builder
	sb.Grow(len(s))
	for _, fragment := range fragments {
		sb.WriteString(strings.ToUpper(fragment[:1]))
		sb.WriteString(fragment[1:])
	}
	return sb.String()
}

func isWordChar(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// Identifier converts a raw name to an identifier in the given style. The
// result is always separator free.
func Identifier(raw string, style Style) string {
	if style == StyleStrcase {
		return Sanitize(strcase.ToCamel(raw))
	}
	return Sanitize(raw)
}

// BaseName returns the last element of path without its final extension.
// A leading dot does not start an extension, so ".env" stays ".env".
func BaseName(path string) string {
	base := filepath.Base(path)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return base
	}
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		return base[:i]
	}
	return base
}

// ResolveName returns the raw, unsanitized name for the input at path.
func ResolveName(strategy Strategy, path string, root models.JSONValue) (string, error) {
	switch strategy {
	case FromFileName:
		return BaseName(path), nil
	case FromFileContent:
		obj, ok := root.(*models.JSONObject)
		if !ok {
			return "", errors.NewNamingError(path,
				fmt.Sprintf("top-level value is %s, not an object", kindOf(root)),
				errors.ErrMissingName)
		}
		value, ok := obj.Get("name")
		if !ok || !truthy(value) {
			return "", errors.NewNamingError(path,
				"attribute \"name\" is missing or empty",
				errors.ErrMissingName)
		}
		return formatter.String(value), nil
	default:
		return "", errors.NewNamingError(path,
			fmt.Sprintf("cannot resolve name with strategy %q", strategy),
			errors.ErrUnknownStrategy)
	}
}

// truthy reports whether value counts as present: false, null, 0 and ""
// do not.
func truthy(value models.JSONValue) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case json.Number:
		f, err := strconv.ParseFloat(string(v), 64)
		return err != nil || f != 0
	default:
		return true
	}
}

func kindOf(value models.JSONValue) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case string:
		return "a string"
	case json.Number:
		return "a number"
	case models.JSONArray:
		return "an array"
	default:
		return fmt.Sprintf("%T", value)
	}
}
