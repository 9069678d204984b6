package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/pretty"

	"github.com/mcncl/jsonpick/internal/models"
	"github.com/mcncl/jsonpick/internal/parser"
)

func mustParse(t *testing.T, doc string) *models.Value {
	t.Helper()
	root, err := parser.ParseString(doc)
	require.NoError(t, err)
	return root
}

func TestSerialize_MinifiedScalars(t *testing.T) {
	s := NewSerializer(ModeMinified)

	assert.Equal(t, "null", s.Serialize(models.NewNull()))
	assert.Equal(t, "true", s.Serialize(models.NewBool(true)))
	assert.Equal(t, "false", s.Serialize(models.NewBool(false)))
	assert.Equal(t, "123", s.Serialize(models.NewInt(123)))
	assert.Equal(t, "-7", s.Serialize(models.NewInt(-7)))
	assert.Equal(t, "3.14", s.Serialize(models.NewFloat(3.14)))
	assert.Equal(t, `"test"`, s.Serialize(models.NewString("test")))
}

func TestSerialize_NumberStringKeepsLiteral(t *testing.T) {
	s := NewSerializer(ModeMinified)

	// These literals cannot survive a trip through int64 or float64
	for _, lit := range []string{
		"123456789012345678901234567890",
		"1e21",
		"0.10000000000000000001",
	} {
		assert.Equal(t, lit, s.Serialize(models.NewNumberString(lit)))
	}
}

func TestSerialize_StringEscaping(t *testing.T) {
	s := NewSerializer(ModeMinified)

	tests := []struct {
		input string
		want  string
	}{
		{`plain`, `"plain"`},
		{"with \"quotes\"", `"with \"quotes\""`},
		{`back\slash`, `"back\\slash"`},
		{"line\nbreak", `"line\nbreak"`},
		{"tab\there", `"tab\there"`},
		{"cr\rhere", `"cr\rhere"`},
		{"bell\x07", "\"bell\\u0007\""},
		{"esc\x1b", "\"esc\\u001b\""},
		{"backspace\b form\f", `"backspace\b form\f"`},
		{"unicode: héllo → ok", `"unicode: héllo → ok"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.Serialize(models.NewString(tt.input)))
	}
}

func TestSerialize_MinifiedContainers(t *testing.T) {
	s := NewSerializer(ModeMinified)

	doc := `{"test":"test","zest":["z","e"],"fest":null,"isit":true,"ns":"1232","in":12343,"a":{"a":"2","b":123,"c":true,"d":null}}`
	root := mustParse(t, doc)

	// Byte-for-byte: key order and literals all preserved
	assert.Equal(t, doc, s.Serialize(root))
}

func TestSerialize_EmptyContainers(t *testing.T) {
	min := NewSerializer(ModeMinified)
	exp := NewSerializer(ModeExpanded)

	assert.Equal(t, "{}", min.Serialize(models.NewObject()))
	assert.Equal(t, "[]", min.Serialize(models.NewArray()))
	// Empty containers stay on one line even when expanded
	assert.Equal(t, "{}", exp.Serialize(models.NewObject()))
	assert.Equal(t, "[]", exp.Serialize(models.NewArray()))
}

func TestSerialize_Expanded(t *testing.T) {
	s := NewSerializer(ModeExpanded)
	root := mustParse(t, `{"name":"x","tags":["a","b"],"meta":{"n":1}}`)

	want := `{
  "name": "x",
  "tags": [
    "a",
    "b"
  ],
  "meta": {
    "n": 1
  }
}`
	assert.Equal(t, want, s.Serialize(root))
}

func TestSerialize_ExpandedArrayRoot(t *testing.T) {
	s := NewSerializer(ModeExpanded)
	root := mustParse(t, `[1,[2,3],{}]`)

	want := `[
  1,
  [
    2,
    3
  ],
  {}
]`
	assert.Equal(t, want, s.Serialize(root))
}

func TestSerialize_RoundTrip(t *testing.T) {
	docs := []string{
		`{"test":"test"}`,
		`{"a":{"a":"2","b":123,"c":true,"d":null}}`,
		`{"zebra":1,"apple":2,"mango":3}`,
		`[1,"two",true,null,3.5,[{"deep":[]}]]`,
		`{"big":123456789012345678901234567890,"exp":1e21}`,
		`"just a string"`,
		`null`,
	}

	min := NewSerializer(ModeMinified)
	for _, doc := range docs {
		root := mustParse(t, doc)
		reparsed, err := parser.ParseString(min.Serialize(root))
		require.NoError(t, err, "doc %s", doc)
		assert.True(t, root.Equal(reparsed), "round trip changed the value of %s", doc)
	}
}

func TestSerialize_ModeEquivalence(t *testing.T) {
	docs := []string{
		`{"test":"test","zest":["z","e"],"fest":null,"isit":true,"ns":"1232","in":12343,"a":{"a":"2","b":123,"c":true,"d":null}}`,
		`{"s":"spaces and \"quotes\" stay intact","a":[1,2,3]}`,
		`[[],{},[{"x":null}]]`,
	}

	min := NewSerializer(ModeMinified)
	exp := NewSerializer(ModeExpanded)
	for _, doc := range docs {
		root := mustParse(t, doc)
		expanded := exp.Serialize(root)
		// Stripping all whitespace outside string literals from the
		// expanded form must yield exactly the minified form.
		assert.Equal(t, min.Serialize(root), string(pretty.Ugly([]byte(expanded))), "doc %s", doc)
	}
}

func TestSerialize_Append(t *testing.T) {
	s := NewSerializer(ModeMinified)
	dst := []byte("prefix:")
	dst = s.Append(dst, models.NewInt(5))
	assert.Equal(t, "prefix:5", string(dst))
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("minified")
	require.NoError(t, err)
	assert.Equal(t, ModeMinified, mode)

	mode, err = ParseMode("expanded")
	require.NoError(t, err)
	assert.Equal(t, ModeExpanded, mode)

	_, err = ParseMode("compact")
	assert.Error(t, err)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "minified", ModeMinified.String())
	assert.Equal(t, "expanded", ModeExpanded.String())
}
