package forms

// RawRect is the four-float rectangle record read from an annotation's
// /Rect array, in array order [Left Bottom Right Top].
type RawRect struct {
	Left   float64
	Bottom float64
	Right  float64
	Top    float64
}

// Rect is a widget's bounding rectangle in page user-space units.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Right  float64 `json:"right"`
}

// DecodeRect copies raw into a Rect field by field. No reordering is done:
// a PDF may store Top < Bottom or Right < Left, use Normalize for a
// canonical form.
func DecodeRect(raw RawRect) Rect {
	return Rect{
		Top:    raw.Top,
		Left:   raw.Left,
		Bottom: raw.Bottom,
		Right:  raw.Right,
	}
}

// Normalize returns r with Top >= Bottom and Right >= Left.
func (r Rect) Normalize() Rect {
	if r.Top < r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	if r.Right < r.Left {
		r.Left, r.Right = r.Right, r.Left
	}
	return r
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 {
	n := r.Normalize()
	return n.Right - n.Left
}

// Height returns the vertical extent of r.
func (r Rect) Height() float64 {
	n := r.Normalize()
	return n.Top - n.Bottom
}
