package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "trims", in: "  \n hello \n\n", want: "hello"},
		{name: "collapses blank lines", in: "a\n\n\nb\nc", want: "a\nb\nc"},
		{name: "keeps inner spaces", in: "a  b\n\n c", want: "a  b\n c"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestLines(t *testing.T) {
	assert.Equal(t, []string{"1. Fluency: 4", "Advice: ok"}, Lines("\n1. Fluency: 4\n\n\nAdvice: ok\n"))
	assert.Equal(t, []string{""}, Lines("   "))
}
