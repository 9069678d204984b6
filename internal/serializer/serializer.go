// Package serializer renders a parsed JSON value back to text, either
// minified or expanded with two-space indentation. Children come out in
// stored order — insertion order for object members, positional order
// for array elements — so a document survives a parse/serialize round
// trip byte for byte.
package serializer

import (
	"fmt"
	"strconv"

	"github.com/mcncl/jsonpick/internal/models"
)

// Mode selects the output formatting.
type Mode int

const (
	// ModeMinified emits no insignificant whitespace.
	ModeMinified Mode = iota
	// ModeExpanded emits one member per line with two-space indentation
	// and the brackets of non-empty containers on their own lines.
	ModeExpanded
)

const indentUnit = "  "

// String returns the mode's canonical token.
func (m Mode) String() string {
	if m == ModeExpanded {
		return "expanded"
	}
	return "minified"
}

// ParseMode maps a canonical token to a Mode. Callers are expected to
// normalize case and word separators first.
func ParseMode(token string) (Mode, error) {
	switch token {
	case "minified":
		return ModeMinified, nil
	case "expanded":
		return ModeExpanded, nil
	default:
		return ModeMinified, fmt.Errorf("unknown output mode %q (want \"minified\" or \"expanded\")", token)
	}
}

// Serializer renders Values under a fixed formatting mode.
type Serializer struct {
	mode Mode
}

// NewSerializer creates a Serializer for the given mode.
func NewSerializer(mode Mode) *Serializer {
	return &Serializer{mode: mode}
}

// Serialize renders v as JSON text. It is total over any tree the
// parser produces: trees are immutable and acyclic, so there is no
// failure path.
func (s *Serializer) Serialize(v *models.Value) string {
	return string(s.appendValue(make([]byte, 0, 256), v, 0))
}

// Append renders v onto dst and returns the extended slice.
func (s *Serializer) Append(dst []byte, v *models.Value) []byte {
	return s.appendValue(dst, v, 0)
}

func (s *Serializer) appendValue(dst []byte, v *models.Value, depth int) []byte {
	switch v.Kind() {
	case models.KindNull:
		return append(dst, "null"...)
	case models.KindBool:
		if v.Bool() {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case models.KindInt:
		return strconv.AppendInt(dst, v.Int(), 10)
	case models.KindFloat:
		return strconv.AppendFloat(dst, v.Float(), 'g', -1, 64)
	case models.KindNumberString:
		// Emit the literal exactly as captured; re-formatting it could
		// lose precision.
		return append(dst, v.NumberText()...)
	case models.KindString:
		return appendEscaped(dst, v.Text())
	case models.KindArray:
		return s.appendArray(dst, v, depth)
	case models.KindObject:
		return s.appendObject(dst, v, depth)
	default:
		panic(fmt.Sprintf("BUG: unexpected value kind %d", v.Kind()))
	}
}

func (s *Serializer) appendArray(dst []byte, v *models.Value, depth int) []byte {
	items := v.Items()
	if len(items) == 0 {
		return append(dst, "[]"...)
	}
	dst = append(dst, '[')
	for i, item := range items {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = s.appendNewlineIndent(dst, depth+1)
		dst = s.appendValue(dst, item, depth+1)
	}
	dst = s.appendNewlineIndent(dst, depth)
	return append(dst, ']')
}

func (s *Serializer) appendObject(dst []byte, v *models.Value, depth int) []byte {
	members := v.Members()
	if len(members) == 0 {
		return append(dst, "{}"...)
	}
	dst = append(dst, '{')
	for i, m := range members {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = s.appendNewlineIndent(dst, depth+1)
		dst = appendEscaped(dst, m.Key)
		dst = append(dst, ':')
		if s.mode == ModeExpanded {
			dst = append(dst, ' ')
		}
		dst = s.appendValue(dst, m.Value, depth+1)
	}
	dst = s.appendNewlineIndent(dst, depth)
	return append(dst, '}')
}

// appendNewlineIndent breaks the line and indents to depth in expanded
// mode, and does nothing in minified mode.
func (s *Serializer) appendNewlineIndent(dst []byte, depth int) []byte {
	if s.mode != ModeExpanded {
		return dst
	}
	dst = append(dst, '\n')
	for i := 0; i < depth; i++ {
		dst = append(dst, indentUnit...)
	}
	return dst
}

const hexDigits = "0123456789abcdef"

// appendEscaped appends s quoted and escaped per the JSON string
// grammar. Valid UTF-8 outside the escape set passes through unchanged.
func appendEscaped(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			dst = append(dst, '\\', '"')
		case c == '\\':
			dst = append(dst, '\\', '\\')
		case c == '\n':
			dst = append(dst, '\\', 'n')
		case c == '\r':
			dst = append(dst, '\\', 'r')
		case c == '\t':
			dst = append(dst, '\\', 't')
		case c == '\b':
			dst = append(dst, '\\', 'b')
		case c == '\f':
			dst = append(dst, '\\', 'f')
		case c < 0x20:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		default:
			dst = append(dst, c)
		}
	}
	return append(dst, '"')
}
