package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  uint
		ok    bool
	}{
		{"uint", uint(12), 12, true},
		{"uint64", uint64(12), 12, true},
		{"int", 12, 12, true},
		{"int64", int64(12), 12, true},
		{"negative int", -1, 0, false},
		{"float64 from json claims", float64(12), 12, true},
		{"fractional float64", 12.5, 0, false},
		{"negative float64", -3.0, 0, false},
		{"numeric string", "12", 12, true},
		{"garbage string", "12abc", 0, false},
		{"empty string", "", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeID(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Identifiers that arrive as different types must still compare equal
// once normalized, and junk must never collide with a real id.
func TestNormalizeIDCrossRepresentation(t *testing.T) {
	fromClaims, ok := NormalizeID(float64(42))
	assert.True(t, ok)

	fromPath, ok := NormalizeID("42")
	assert.True(t, ok)

	assert.Equal(t, fromClaims, fromPath)
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("7")
	assert.True(t, ok)
	assert.Equal(t, uint(7), id)

	_, ok = ParseID("0")
	assert.False(t, ok)

	_, ok = ParseID("-1")
	assert.False(t, ok)

	_, ok = ParseID("abc")
	assert.False(t, ok)

	_, ok = ParseID("")
	assert.False(t, ok)
}
