package forms

import (
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// DefaultMaxFieldDepth bounds how far a field chain is followed upwards.
const DefaultMaxFieldDepth = 32

// Field is one node of a form's field tree. Terminal fields and their widget
// annotations are nodes too: a widget's attributes are resolved by walking
// from its own node up through its ancestors.
type Field struct {
	dict   types.Dict
	objNr  int
	parent *Field
	kids   []*Field
	depth  int
}

func newField(dict types.Dict, objNr int, parent *Field) *Field {
	f := &Field{dict: dict, objNr: objNr, parent: parent}
	if parent != nil {
		f.depth = parent.depth + 1
	}
	return f
}

// ObjectNumber returns the node's object number, 0 for direct objects.
func (f *Field) ObjectNumber() int {
	return f.objNr
}

// Parent returns the parent node or nil at the root.
func (f *Field) Parent() *Field {
	return f.parent
}

// Kids returns the child nodes collected while building the field tree.
func (f *Field) Kids() []*Field {
	return f.kids
}

// Find looks up an inheritable attribute: the node itself first, then each
// ancestor, stopping at the first one that defines key.
func (f *Field) Find(key string) (types.Object, bool) {
	for n := f; n != nil; n = n.parent {
		if obj, found := n.dict.Find(key); found && obj != nil {
			return obj, true
		}
	}
	return nil, false
}

// FullName joins the partial names (/T) from the root down to f with ".".
// Nodes without /T, such as pure widget annotations, contribute nothing.
func (f *Field) FullName(acc *accessor) string {
	var parts []string
	for n := f; n != nil; n = n.parent {
		obj, found := n.dict.Find("T")
		if !found {
			continue
		}
		t, err := acc.text(obj)
		if err != nil || t == "" {
			continue
		}
		parts = append(parts, t)
	}

	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// inheritedText resolves key through the chain and decodes it as text.
// ok is false when no node defines key.
func (f *Field) inheritedText(acc *accessor, key string) (s string, ok bool, err error) {
	obj, found := f.Find(key)
	if !found {
		return "", false, nil
	}
	s, err = acc.text(obj)
	return s, true, err
}

// flags returns the inherited /Ff value, 0 when unset or unreadable.
func (f *Field) flags(acc *accessor) int {
	obj, found := f.Find("Ff")
	if !found {
		return 0
	}
	ff, err := acc.integer(obj)
	if err != nil {
		return 0
	}
	return ff
}

// fieldType resolves the type code from the inherited /FT and /Ff entries.
func (f *Field) fieldType(acc *accessor) (FieldType, int) {
	flags := f.flags(acc)
	obj, found := f.Find("FT")
	if !found {
		return FieldTypeUnknown, flags
	}
	ft, err := acc.name(obj)
	if err != nil {
		return FieldTypeUnknown, flags
	}
	return ClassifyField(ft, flags), flags
}

// kidIndex returns the position of f in its parent's /Kids array, or -1.
func (f *Field) kidIndex(acc *accessor) int {
	if f.parent == nil || f.objNr == 0 {
		return -1
	}
	obj, found := f.parent.dict.Find("Kids")
	if !found {
		return -1
	}
	kids, err := acc.array(obj)
	if err != nil {
		return -1
	}
	for i, k := range kids {
		if objectNumber(k) == f.objNr {
			return i
		}
	}
	return -1
}
