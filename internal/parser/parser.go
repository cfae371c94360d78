package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"

	stderrors "errors" // Standard errors package
	"github.com/mcncl/jsonconst/internal/errors" // Custom errors package
	"github.com/mcncl/jsonconst/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse reads a single JSON value from reader.
func Parse(reader io.Reader) (models.Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Document{}, errors.NewParseError("", "failed to read JSON input", err)
	}
	return ParseBytes(data)
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.Document, error) {
	return ParseBytes([]byte(jsonString))
}

// ParseBytes decodes exactly one JSON value from data, keeping object keys in
// document order. A leading UTF-8 byte order mark is ignored.
func ParseBytes(data []byte) (models.Document, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return models.Document{}, errors.NewParseError("", "input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber() // Ensure numbers are read as json.Number
	tokens := &tokenReader{decoder: decoder, data: data}

	tok, err := tokens.next()
	if err != nil {
		return models.Document{}, decodeError(err)
	}
	root, err := tokens.decodeToken(tok)
	if err != nil {
		return models.Document{}, decodeError(err)
	}

	// Only whitespace may follow the root value.
	trailing, err := tokens.next()
	switch {
	case stderrors.Is(err, io.EOF):
	case err != nil:
		return models.Document{}, errors.NewParseError(
			"",
			fmt.Sprintf("invalid trailing data after JSON value: %v", err),
			errors.ErrInvalidJSON,
		)
	default:
		return models.Document{}, errors.NewParseError(
			"",
			fmt.Sprintf("multiple JSON values found at the root (unexpected %v)", trailing),
			errors.ErrMultipleJSON,
		)
	}

	return models.Document{Root: root}, nil
}

// ParseFile reads and parses the JSON file at filePath. Nothing is cached:
// every call reads the file again.
func ParseFile(filePath string) (models.Document, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return models.Document{}, errors.NewNotFoundError(filePath, errors.ErrFileNotFound)
		}
		return models.Document{}, errors.NewNotFoundError(filePath, err)
	}

	doc, err := ParseBytes(data)
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			appErr.Path = filePath
		}
		return models.Document{}, err
	}
	doc.Path = filePath
	return doc, nil
}

// tokenReader walks the token stream of data. String tokens keep unpaired
// UTF-16 surrogate escapes, which encoding/json replaces with U+FFFD.
type tokenReader struct {
	decoder *json.Decoder
	data    []byte
}

func (t *tokenReader) next() (json.Token, error) {
	start := t.decoder.InputOffset()
	tok, err := t.decoder.Token()
	if err != nil {
		return nil, err
	}
	if _, ok := tok.(string); ok {
		// separators and whitespace come before the opening quote
		raw := t.data[start:t.decoder.InputOffset()]
		if i := bytes.IndexByte(raw, '"'); i >= 0 && hasSurrogateEscape(raw[i:]) {
			if str, ok := unquote(raw[i:]); ok {
				return str, nil
			}
		}
	}
	return tok, nil
}

// decodeValue reads the next complete value from the token stream.
func (t *tokenReader) decodeValue() (models.JSONValue, error) {
	tok, err := t.next()
	if err != nil {
		return nil, midValue(err)
	}
	return t.decodeToken(tok)
}

// decodeToken builds the value that starts with tok. Objects and arrays
// consume tokens up to and including their closing delimiter.
func (t *tokenReader) decodeToken(tok json.Token) (models.JSONValue, error) {
	delim, ok := tok.(json.Delim)
	if !ok {
		// string, json.Number, bool or nil
		return tok, nil
	}

	switch delim {
	case '{':
		obj := models.NewJSONObject()
		for t.decoder.More() {
			keyTok, err := t.next()
			if err != nil {
				return nil, midValue(err)
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key at offset %d is not a string", t.decoder.InputOffset())
			}
			value, err := t.decodeValue()
			if err != nil {
				return nil, err
			}
			obj.Set(key, value)
		}
		if err := t.closeDelim(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := models.JSONArray{}
		for t.decoder.More() {
			value, err := t.decodeValue()
			if err != nil {
				return nil, err
			}
			arr = append(arr, value)
		}
		if err := t.closeDelim(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected %q at offset %d", rune(delim), t.decoder.InputOffset())
	}
}

func (t *tokenReader) closeDelim() error {
	if _, err := t.decoder.Token(); err != nil {
		return midValue(err)
	}
	return nil
}

// midValue turns a clean EOF inside an unfinished value into an unexpected one.
func midValue(err error) error {
	if stderrors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// decodeError maps a decoding failure to a parse error.
func decodeError(err error) error {
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParseError(
			"",
			fmt.Sprintf("JSON syntax error at offset %d: %v", syntaxError.Offset, syntaxError),
			errors.ErrInvalidJSON,
		)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) || stderrors.Is(err, io.EOF) {
		return errors.NewParseError("", "unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	return errors.NewParseError("", fmt.Sprintf("failed to decode JSON: %v", err), errors.ErrInvalidJSON)
}
