package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	stderrors "errors"

	"github.com/mcncl/jsonpick/internal/errors"
	"github.com/mcncl/jsonpick/internal/models"
)

// Parse reads a single JSON document from reader and builds its Value
// tree. Decoding happens token by token so that object members keep
// the order they have in the input text; a plain Decode into a map
// would lose it.
func Parse(reader io.Reader) (*models.Value, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber() // numbers arrive as json.Number, keeping their literal text

	root, err := parseValue(decoder)
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			return nil, errors.NewParsingError(
				fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
				errors.ErrInvalidJSON,
			)
		}
		return nil, errors.NewParsingError("failed to decode JSON", err)
	}

	// Check for trailing data after the first JSON value. Whitespace up
	// to EOF is fine; a second value or stray garbage is not.
	if _, err := decoder.Token(); err != io.EOF {
		if err == nil {
			return nil, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
		}
		return nil, errors.NewParsingError("invalid trailing data after first JSON value", err)
	}

	return root, nil
}

// parseValue consumes the next complete value from the token stream.
func parseValue(decoder *json.Decoder) (*models.Value, error) {
	tok, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	return buildValue(decoder, tok)
}

// buildValue turns the token that opens a value into a Value, recursing
// into the decoder for container contents.
func buildValue(decoder *json.Decoder, tok json.Token) (*models.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(decoder)
		case '[':
			return parseArray(decoder)
		default:
			// The decoder balances delimiters itself, so a stray
			// closing brace never reaches us.
			return nil, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case string:
		return models.NewString(t), nil
	case bool:
		return models.NewBool(t), nil
	case json.Number:
		return coerceNumber(t.String()), nil
	case nil:
		return models.NewNull(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

// parseObject consumes members until the closing brace. The opening
// brace has already been read.
func parseObject(decoder *json.Decoder) (*models.Value, error) {
	obj := models.NewObject()
	for decoder.More() {
		keyTok, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		child, err := parseValue(decoder)
		if err != nil {
			return nil, err
		}
		obj.AppendMember(key, child)
	}
	// consume the closing '}'
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

// parseArray consumes elements until the closing bracket. The opening
// bracket has already been read.
func parseArray(decoder *json.Decoder) (*models.Value, error) {
	arr := models.NewArray()
	for decoder.More() {
		child, err := parseValue(decoder)
		if err != nil {
			return nil, err
		}
		arr.Append(child)
	}
	// consume the closing ']'
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// coerceNumber decides how a numeric literal is represented. Int and
// Float are only used when formatting the native value reproduces the
// literal exactly, so serialization can never change how a number
// reads; anything else keeps its original text.
func coerceNumber(lit string) *models.Value {
	if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
		if strconv.FormatInt(i, 10) == lit {
			return models.NewInt(i)
		}
	}
	if f, err := strconv.ParseFloat(lit, 64); err == nil {
		if strconv.FormatFloat(f, 'g', -1, 64) == lit {
			return models.NewFloat(f)
		}
	}
	return models.NewNumberString(lit)
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (*models.Value, error) {
	// TrimSpace is important here because an empty string reader will give io.EOF to Decode,
	// but a string with only spaces might not, depending on the decoder's behavior.
	if strings.TrimSpace(jsonString) == "" {
		return nil, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	reader := strings.NewReader(jsonString)
	return Parse(reader)
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (*models.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	// Check for empty file before parsing
	stat, err := file.Stat()
	if err != nil {
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file)
}
