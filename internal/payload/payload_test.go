package payload

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want any
	}{
		{name: "object", in: `{"x":1}`, want: map[string]any{"x": float64(1)}},
		{name: "list", in: `[1,"a"]`, want: []any{float64(1), "a"}},
		{name: "number", in: " 42 ", want: float64(42)},
		{name: "bool", in: "true", want: true},
		{name: "quoted string", in: `"hi"`, want: "hi"},
		{name: "bare text", in: "hello world", want: "hello world"},
		{name: "empty", in: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.in))
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "nil", in: nil, want: ""},
		{name: "string", in: "abc", want: "abc"},
		{name: "bool", in: false, want: "false"},
		{name: "whole float", in: float64(3), want: "3"},
		{name: "fraction", in: 3.25, want: "3.25"},
		{name: "int", in: 7, want: "7"},
		{name: "map sorted", in: map[string]any{"b": 2, "a": 1}, want: `{"a":1,"b":2}`},
		{name: "list", in: []any{"x", true}, want: `["x",true]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}

func TestFormat_FallsBackForUnmarshalable(t *testing.T) {
	assert.NotEmpty(t, Format(make(chan int)))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "short", Summary("short", 10))
	assert.Equal(t, "", Summary("anything", 0))

	got := Summary(map[string]any{"key": "a long value here"}, 10)
	assert.LessOrEqual(t, runewidth.StringWidth(got), 10)
	assert.Contains(t, got, Ellipsis)
}
