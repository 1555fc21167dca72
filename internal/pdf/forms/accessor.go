package forms

import (
	"fmt"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// accessor is the thin layer over pdfcpu's resolved object model. pdfcpu
// handles xref, streams and decryption; everything here works on
// dereferenced dictionaries, arrays, names and strings.
type accessor struct {
	ctx *model.Context
}

func newAccessor(ctx *model.Context) *accessor {
	return &accessor{ctx: ctx}
}

// objectNumber returns the object number of an indirect reference, or 0 for
// direct objects.
func objectNumber(obj types.Object) int {
	switch ref := obj.(type) {
	case types.IndirectRef:
		return ref.ObjectNumber.Value()
	case *types.IndirectRef:
		if ref != nil {
			return ref.ObjectNumber.Value()
		}
	}
	return 0
}

func (a *accessor) dict(obj types.Object) (types.Dict, error) {
	d, err := a.ctx.DereferenceDict(obj)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("object %v resolves to null", obj)
	}
	return d, nil
}

func (a *accessor) array(obj types.Object) (types.Array, error) {
	arr, err := a.ctx.DereferenceArray(obj)
	if err != nil {
		return nil, err
	}
	return arr, nil
}

// name resolves obj to a PDF name.
func (a *accessor) name(obj types.Object) (string, error) {
	n, err := a.ctx.DereferenceName(obj, model.V10, nil)
	if err != nil {
		return "", err
	}
	return string(n), nil
}

// text resolves obj to a decoded text string. Names are accepted too since
// button values and some sloppy writers store text as names.
func (a *accessor) text(obj types.Object) (string, error) {
	if s, err := a.ctx.DereferenceStringOrHexLiteral(obj, model.V10, nil); err == nil {
		return s, nil
	}
	n, err := a.name(obj)
	if err != nil {
		return "", fmt.Errorf("not a string or name: %w", err)
	}
	return n, nil
}

func (a *accessor) integer(obj types.Object) (int, error) {
	i, err := a.ctx.DereferenceInteger(obj)
	if err != nil {
		return 0, err
	}
	if i == nil {
		return 0, fmt.Errorf("integer resolves to null")
	}
	return i.Value(), nil
}

func (a *accessor) number(obj types.Object) (float64, error) {
	return a.ctx.DereferenceNumber(obj)
}

// boolean accepts true booleans and non-zero integers.
func (a *accessor) boolean(obj types.Object) bool {
	o, err := a.ctx.Dereference(obj)
	if err != nil {
		return false
	}
	switch v := o.(type) {
	case types.Boolean:
		return v.Value()
	case types.Integer:
		return v.Value() != 0
	}
	return false
}

// rect reads an annotation's /Rect into the accessor's four-float record.
func (a *accessor) rect(annot types.Dict) (RawRect, error) {
	obj, found := annot.Find("Rect")
	if !found {
		return RawRect{}, fmt.Errorf("annotation has no Rect")
	}
	arr, err := a.array(obj)
	if err != nil {
		return RawRect{}, fmt.Errorf("Rect: %w", err)
	}
	if len(arr) != 4 {
		return RawRect{}, fmt.Errorf("Rect has %d entries, want 4", len(arr))
	}

	var coords [4]float64
	for i, o := range arr {
		f, err := a.number(o)
		if err != nil {
			return RawRect{}, fmt.Errorf("Rect[%d]: %w", i, err)
		}
		coords[i] = f
	}

	return RawRect{Left: coords[0], Bottom: coords[1], Right: coords[2], Top: coords[3]}, nil
}

// appearanceStates lists the state names of the /AP /N (then /AP /D)
// sub-dictionary in sorted order.
func (a *accessor) appearanceStates(annot types.Dict) []string {
	apObj, found := annot.Find("AP")
	if !found {
		return nil
	}
	ap, err := a.dict(apObj)
	if err != nil {
		return nil
	}

	for _, key := range []string{"N", "D"} {
		obj, found := ap.Find(key)
		if !found {
			continue
		}
		// A stream here means a single appearance with no states.
		states, err := a.dict(obj)
		if err != nil || len(states) == 0 {
			continue
		}
		names := make([]string, 0, len(states))
		for k := range states {
			names = append(names, k)
		}
		sort.Strings(names)
		return names
	}
	return nil
}
