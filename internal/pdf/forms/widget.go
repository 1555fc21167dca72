package forms

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	pdferrors "github.com/a3tai/mcp-pdf-forms/internal/pdf/errors"
)

// OffState is the appearance state name of an unchecked button.
const OffState = "Off"

// Widget is the decoded form data of one widget annotation. It holds no
// reference to the document it came from.
//
// ChoiceValues is nil unless the field is a ComboBox or ListBox with at least
// one option; a non-nil ChoiceValues is never empty.
type Widget struct {
	FieldName       string    `json:"field_name"`
	FieldLabel      string    `json:"field_label"`
	FieldValue      string    `json:"field_value"`
	ChoiceValues    []string  `json:"choice_values"`
	FieldType       FieldType `json:"field_type"`
	FieldTypeString string    `json:"field_type_string"`
	FieldFlags      int       `json:"field_flags"`
	ExportValue     string    `json:"export_value,omitempty"`
	Checked         bool      `json:"checked"`
	Rect            Rect      `json:"rect"`
}

// HasChoices reports whether the widget carries an option list.
func (w Widget) HasChoices() bool {
	return w.ChoiceValues != nil
}

// ReadOnly reports the read-only field flag.
func (w Widget) ReadOnly() bool {
	return w.FieldFlags&FlagReadOnly != 0
}

// Required reports the required field flag.
func (w Widget) Required() bool {
	return w.FieldFlags&FlagRequired != 0
}

// extractWidget decodes one widget annotation. Attributes that cannot be read
// degrade to empty values and are recorded in issues.
func extractWidget(acc *accessor, env *FormEnvironment, annot types.Dict, objNr int,
	issues *pdferrors.ErrorCollection,
) Widget {
	raw, err := acc.rect(annot)
	if err != nil {
		issues.Add(pdferrors.WrapError(pdferrors.ErrorTypeInvalidAnnotation, "unreadable Rect", err).WithObject(objNr))
	}

	node := env.lookup(acc, annot, objNr, issues)
	fieldType, flags := node.fieldType(acc)

	w := Widget{
		FieldName:       node.FullName(acc),
		FieldType:       fieldType,
		FieldTypeString: fieldType.String(),
		FieldFlags:      flags,
		Rect:            DecodeRect(raw),
	}

	label, _, err := node.inheritedText(acc, "TU")
	if err != nil {
		issues.Add(pdferrors.WrapError(pdferrors.ErrorTypeInvalidAnnotation, "unreadable TU", err).WithObject(objNr))
	}
	w.FieldLabel = label

	w.FieldValue = fieldValue(acc, node, fieldType, objNr, issues)

	if fieldType.IsChoice() {
		w.ChoiceValues = choiceOptions(acc, node)
	}

	if fieldType.IsToggle() {
		onState := onStateName(acc, annot)
		w.ExportValue = exportValue(acc, node, onState)
		if asObj, found := annot.Find("AS"); found && onState != "" {
			if as, err := acc.name(asObj); err == nil {
				w.Checked = as == onState
			}
		}
	}

	return w
}

// fieldValue applies the per-type value rules: toggles report their /V state
// or "Off", choices fall back to /DV and take the first entry of an array,
// text fields use /V only.
func fieldValue(acc *accessor, node *Field, fieldType FieldType, objNr int, issues *pdferrors.ErrorCollection) string {
	obj, found := node.Find("V")
	if !found && fieldType.IsChoice() {
		obj, found = node.Find("DV")
	}
	if !found {
		if fieldType.IsToggle() {
			return OffState
		}
		return ""
	}

	if fieldType.IsChoice() {
		if arr, err := acc.array(obj); err == nil {
			if len(arr) == 0 {
				return ""
			}
			obj = arr[0]
		}
	}

	s, err := acc.text(obj)
	if err != nil {
		// Signature values are dictionaries and rich text may be a stream.
		if fieldType != FieldTypeSignature {
			issues.Add(pdferrors.WrapError(pdferrors.ErrorTypeInvalidAnnotation,
				fmt.Sprintf("unreadable %s value", fieldType), err).WithObject(objNr))
		}
		if fieldType.IsToggle() {
			return OffState
		}
		return ""
	}
	return s
}

// choiceOptions returns the display labels of the inherited /Opt array, or
// nil when there are none.
func choiceOptions(acc *accessor, node *Field) []string {
	obj, found := node.Find("Opt")
	if !found {
		return nil
	}
	opts, err := acc.array(obj)
	if err != nil || len(opts) == 0 {
		return nil
	}

	labels := make([]string, 0, len(opts))
	for _, o := range opts {
		labels = append(labels, optionLabel(acc, o))
	}
	return labels
}

// optionLabel decodes one /Opt entry: a text string, or an
// [export display] pair whose display part is the label.
func optionLabel(acc *accessor, o types.Object) string {
	if pair, err := acc.array(o); err == nil {
		switch {
		case len(pair) >= 2:
			o = pair[1]
		case len(pair) == 1:
			o = pair[0]
		default:
			return ""
		}
	}
	s, err := acc.text(o)
	if err != nil {
		return ""
	}
	return s
}

// onStateName is the first appearance state of the widget other than Off.
func onStateName(acc *accessor, annot types.Dict) string {
	for _, state := range acc.appearanceStates(annot) {
		if state != OffState {
			return state
		}
	}
	return ""
}

// exportValue prefers the parent's /Opt entry at the widget's kid index and
// falls back to the on-state name.
func exportValue(acc *accessor, node *Field, onState string) string {
	idx := node.kidIndex(acc)
	if idx < 0 {
		return onState
	}
	obj, found := node.parent.Find("Opt")
	if !found {
		return onState
	}
	opts, err := acc.array(obj)
	if err != nil || idx >= len(opts) {
		return onState
	}
	s, err := acc.text(opts[idx])
	if err != nil || s == "" {
		return onState
	}
	return s
}
