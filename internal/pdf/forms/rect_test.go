package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeRect(t *testing.T) {
	raw := RawRect{Left: 10, Bottom: 20, Right: 110, Top: 45}
	assert.Equal(t, Rect{Top: 45, Left: 10, Bottom: 20, Right: 110}, DecodeRect(raw))

	// Inverted rectangles are kept as stored.
	inverted := RawRect{Left: 110, Bottom: 45, Right: 10, Top: 20}
	r := DecodeRect(inverted)
	assert.Equal(t, 20.0, r.Top)
	assert.Equal(t, 45.0, r.Bottom)
	assert.Equal(t, 10.0, r.Right)

	assert.Equal(t, Rect{}, DecodeRect(RawRect{}))
}

func TestRect_Normalize(t *testing.T) {
	r := Rect{Top: 20, Left: 110, Bottom: 45, Right: 10}
	n := r.Normalize()

	assert.Equal(t, Rect{Top: 45, Left: 10, Bottom: 20, Right: 110}, n)
	assert.Equal(t, 100.0, r.Width())
	assert.Equal(t, 25.0, r.Height())
	assert.Equal(t, n, n.Normalize())
}
