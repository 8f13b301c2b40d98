package canon

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMarshal(t *testing.T, v any) string {
	t.Helper()
	data, err := Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestMarshal_Scalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"null", nil, "null"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"int", 42, "42"},
		{"negative int64", int64(-7), "-7"},
		{"uint", uint(9), "9"},
		{"string", "hello", `"hello"`},
		{"integral float", 3.0, "3"},
		{"fractional float", 1.5, "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustMarshal(t, tt.in))
		})
	}
}

func TestMarshal_NoHTMLEscaping(t *testing.T) {
	got := mustMarshal(t, "<a> & <b>")
	assert.Equal(t, `"<a> & <b>"`, got, "RFC 8785 keeps < > & literal")
}

func TestMarshal_NFCNormalization(t *testing.T) {
	// 'e' + COMBINING ACUTE ACCENT normalizes to the precomposed form,
	// so both spellings serialize identically.
	composed := "\u00e9"
	decomposed := "e\u0301"
	got := mustMarshal(t, decomposed)
	assert.Equal(t, mustMarshal(t, composed), got)
	assert.Equal(t, "\"\u00e9\"", got)
}

func TestMarshal_ObjectKeyOrder(t *testing.T) {
	got := mustMarshal(t, map[string]any{"b": 2, "a": 1, "c": 3})
	assert.Equal(t, `{"a":1,"b":2,"c":3}`, got)
}

func TestMarshal_NestedSnapshot(t *testing.T) {
	got := mustMarshal(t, map[string]any{
		"user":  map[string]any{"name": "ada", "age": 36},
		"items": []any{1, "two", nil, true},
	})
	assert.Equal(t, `{"items":[1,"two",null,true],"user":{"age":36,"name":"ada"}}`, got)
}

func TestMarshal_UTF16KeyOrder(t *testing.T) {
	// U+1D11E (outside the BMP) encodes as a surrogate pair starting at
	// 0xD834; U+FF21 is a single code unit below the surrogate range.
	// UTF-16 order therefore puts U+FF21 first, while UTF-8 byte order
	// would put U+1D11E first.
	got := mustMarshal(t, map[string]any{
		"\U0001D11E": 1,
		"Ａ": 2,
	})
	assert.Equal(t, "{\"Ａ\":2,\"\U0001D11E\":1}", got)
}

func TestMarshal_Errors(t *testing.T) {
	_, err := Marshal(map[string]any{"f": func() {}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported type")

	_, err = Marshal(map[string]any{"inf": math.Inf(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-finite")
}

func TestMarshal_EmptyContainers(t *testing.T) {
	assert.Equal(t, "{}", mustMarshal(t, map[string]any{}))
	assert.Equal(t, "[]", mustMarshal(t, []any{}))
}
