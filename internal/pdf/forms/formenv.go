package forms

import (
	"fmt"
	"log"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	pdferrors "github.com/a3tai/mcp-pdf-forms/internal/pdf/errors"
)

// FormType identifies the kind of interactive form a document declares.
type FormType string

const (
	FormTypeAcroForm      FormType = "acroform"
	FormTypeXFAFull       FormType = "xfa_full"
	FormTypeXFAForeground FormType = "xfa_foreground"
)

// detectFormType classifies the catalog as AcroForm, full XFA or
// foreground XFA. ok is false when the document has no /AcroForm.
func detectFormType(acc *accessor, catalog types.Dict) (ft FormType, acroForm types.Dict, ok bool) {
	obj, found := catalog.Find("AcroForm")
	if !found {
		return "", nil, false
	}
	acroForm, err := acc.dict(obj)
	if err != nil {
		return "", nil, false
	}

	if _, hasXFA := acroForm.Find("XFA"); !hasXFA {
		return FormTypeAcroForm, acroForm, true
	}
	if nr, found := catalog.Find("NeedsRendering"); found && acc.boolean(nr) {
		return FormTypeXFAFull, acroForm, true
	}
	return FormTypeXFAForeground, acroForm, true
}

// FormEnvironment is the per-document form context: the AcroForm field tree
// indexed by object number. It is built once when the document is opened and
// is read-only afterwards, so every Page of the document can share it.
type FormEnvironment struct {
	formType        FormType
	roots           []*Field
	nodes           map[int]*Field
	needAppearances bool
	maxDepth        int
	issues          *pdferrors.ErrorCollection
}

func newFormEnvironment(acc *accessor, formType FormType, acroForm types.Dict, maxDepth int, logger *log.Logger) *FormEnvironment {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxFieldDepth
	}

	env := &FormEnvironment{
		formType: formType,
		nodes:    make(map[int]*Field),
		maxDepth: maxDepth,
		issues:   pdferrors.NewErrorCollection(""),
	}

	if obj, found := acroForm.Find("NeedAppearances"); found {
		env.needAppearances = acc.boolean(obj)
	}

	fieldsObj, found := acroForm.Find("Fields")
	if !found {
		logger.Printf("AcroForm has no Fields array")
		return env
	}
	fields, err := acc.array(fieldsObj)
	if err != nil {
		env.issues.Add(pdferrors.WrapError(pdferrors.ErrorTypeInvalidForm, "cannot read Fields array", err))
		logger.Printf("Cannot read AcroForm Fields: %v", err)
		return env
	}

	visited := make(map[int]bool)
	for i, obj := range fields {
		if node := env.loadField(acc, obj, nil, visited, logger); node != nil {
			env.roots = append(env.roots, node)
		} else {
			logger.Printf("Skipped root field %d", i)
		}
	}

	logger.Printf("Form environment ready: %s, %d root fields, %d nodes",
		env.formType, len(env.roots), len(env.nodes))
	return env
}

// loadField adds obj and its /Kids to the tree. Nodes seen before and
// subtrees deeper than maxDepth are dropped and recorded as issues.
func (env *FormEnvironment) loadField(acc *accessor, obj types.Object, parent *Field,
	visited map[int]bool, logger *log.Logger,
) *Field {
	objNr := objectNumber(obj)
	if objNr != 0 {
		if visited[objNr] {
			env.issues.Add(pdferrors.NewPDFError(pdferrors.ErrorTypeCircularReference,
				"field referenced twice in field tree").WithObject(objNr))
			logger.Printf("Field object %d already in tree, skipping", objNr)
			return nil
		}
		visited[objNr] = true
	}

	if parent != nil && parent.depth+1 >= env.maxDepth {
		env.issues.Add(pdferrors.NewPDFErrorWithContext(pdferrors.ErrorTypeInvalidForm,
			"field tree too deep", fmt.Sprintf("limit %d", env.maxDepth)).WithObject(objNr))
		return nil
	}

	dict, err := acc.dict(obj)
	if err != nil {
		env.issues.Add(pdferrors.WrapError(pdferrors.ErrorTypeInvalidForm, "cannot read field", err).WithObject(objNr))
		return nil
	}

	node := newField(dict, objNr, parent)
	if objNr != 0 {
		env.nodes[objNr] = node
	}

	if kidsObj, found := dict.Find("Kids"); found {
		kids, err := acc.array(kidsObj)
		if err != nil {
			env.issues.Add(pdferrors.WrapError(pdferrors.ErrorTypeInvalidForm, "cannot read Kids", err).WithObject(objNr))
			return node
		}
		for _, k := range kids {
			if kid := env.loadField(acc, k, node, visited, logger); kid != nil {
				node.kids = append(node.kids, kid)
			}
		}
	}

	return node
}

// FormType returns the form type the environment was built for.
func (env *FormEnvironment) FormType() FormType {
	return env.formType
}

// Fields returns the root fields of the AcroForm in /Fields order.
func (env *FormEnvironment) Fields() []*Field {
	return env.roots
}

// NodeCount returns the number of fields and widgets in the tree.
func (env *FormEnvironment) NodeCount() int {
	return len(env.nodes)
}

// NeedAppearances reports the AcroForm /NeedAppearances flag.
func (env *FormEnvironment) NeedAppearances() bool {
	return env.needAppearances
}

// Issues returns the problems met while building the field tree.
func (env *FormEnvironment) Issues() *pdferrors.ErrorCollection {
	return env.issues
}

// lookup returns the tree node for a widget annotation. Widgets missing from
// the field tree get a detached chain built from their /Parent links; the
// chain joins the tree as soon as it reaches a known node. The chain is
// capped at maxDepth and stops at the first repeated object.
func (env *FormEnvironment) lookup(acc *accessor, annot types.Dict, objNr int, issues *pdferrors.ErrorCollection) *Field {
	if objNr != 0 {
		if node, ok := env.nodes[objNr]; ok {
			return node
		}
	}

	leaf := &Field{dict: annot, objNr: objNr}
	chain := []*Field{leaf}
	seen := map[int]bool{}
	if objNr != 0 {
		seen[objNr] = true
	}

	cur := leaf
	for len(chain) < env.maxDepth {
		parentObj, found := cur.dict.Find("Parent")
		if !found {
			break
		}
		pNr := objectNumber(parentObj)
		if pNr != 0 && seen[pNr] {
			issues.Add(pdferrors.NewPDFError(pdferrors.ErrorTypeCircularReference,
				"Parent chain loops").WithObject(pNr))
			break
		}
		if node, ok := env.nodes[pNr]; ok && pNr != 0 {
			cur.parent = node
			break
		}
		pdict, err := acc.dict(parentObj)
		if err != nil {
			issues.Add(pdferrors.WrapError(pdferrors.ErrorTypeInvalidForm, "cannot read Parent", err).WithObject(cur.objNr))
			break
		}
		seen[pNr] = true
		p := &Field{dict: pdict, objNr: pNr}
		cur.parent = p
		chain = append(chain, p)
		cur = p
	}
	if _, more := cur.dict.Find("Parent"); more && cur.parent == nil && len(chain) >= env.maxDepth {
		issues.Add(pdferrors.NewPDFErrorWithContext(pdferrors.ErrorTypeInvalidForm,
			"Parent chain too deep", fmt.Sprintf("limit %d", env.maxDepth)).WithObject(objNr))
	}

	return leaf
}

// release drops the tree so nothing outlives the document.
func (env *FormEnvironment) release() {
	env.roots = nil
	env.nodes = nil
}
