package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"**Maverick**", "Maverick"},
		{"__Goose__", "Goose"},
		{"~~Iceman~~", "Iceman"},
		{"`Viper`", "Viper"},
		{"*stray *asterisks*", "stray asterisks"},
		{"  plain  ", "plain"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, stripMarkdown(tt.in), "input %q", tt.in)
	}
}

func TestFirstInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"24", 24},
		{"**24**", 24},
		{"1,250 credits", 1250},
		{"4.100", 4100},
		{"no digits", 0},
		{"-3", -3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, firstInt(tt.in), "input %q", tt.in)
	}
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitLines(" a \n\n b \n"))
	assert.Nil(t, splitLines("  \n "))
}
