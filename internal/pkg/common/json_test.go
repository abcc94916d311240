package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", `{"a":1}`, `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"uppercase tag", "```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"prose before fence", "Here you go:\n```json\n{\"a\":1}\n```", `{"a":1}`},
		{"unterminated fence", "```json\n{\"a\":1}", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFences(tt.in))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	got, ok := ExtractJSONObject(`prose {"a": {"b": [1, 2]}} trailing`)
	require.True(t, ok)
	assert.Equal(t, `{"a": {"b": [1, 2]}}`, got)
}

func TestExtractJSONObjectUnterminated(t *testing.T) {
	got, ok := ExtractJSONObject(`{"a": 1`)
	require.True(t, ok)
	assert.Equal(t, `{"a": 1`, got)
}

func TestExtractJSONObjectAbsent(t *testing.T) {
	_, ok := ExtractJSONObject("no json here")
	assert.False(t, ok)
}

func TestExtractFirstJSONPrefersEarlierDelimiter(t *testing.T) {
	got, ok := ExtractFirstJSON(`note ["a", "b"] then {"c": 1}`)
	require.True(t, ok)
	assert.Equal(t, `["a", "b"]`, got)

	got, ok = ExtractFirstJSON(`{"c": [1]} then ["a"]`)
	require.True(t, ok)
	assert.Equal(t, `{"c": [1]}`, got)
}

func TestExtractFirstJSONAbsent(t *testing.T) {
	_, ok := ExtractFirstJSON("nothing structured")
	assert.False(t, ok)
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	var v map[string]interface{}
	require.NoError(t, ParseJSON(`{"a": 1}`, &v))
	assert.Error(t, ParseJSON(`{"a": 1}{"b": 2}`, &v))
}

func TestParseJSONStrictRejectsUnknownFields(t *testing.T) {
	var v struct {
		A int `json:"a"`
	}
	require.NoError(t, ParseJSON(`{"a": 1, "b": 2}`, &v))
	assert.Error(t, ParseJSONStrict(`{"a": 1, "b": 2}`, &v))
}
