package forms

// FieldType is the integer code of a form field's type. Codes are stable and
// 0 is reserved for unknown types.
type FieldType int

const (
	FieldTypeUnknown FieldType = iota
	FieldTypePushButton
	FieldTypeCheckBox
	FieldTypeRadioButton
	FieldTypeComboBox
	FieldTypeListBox
	FieldTypeText
	FieldTypeSignature
)

// UnknownTypeName is returned by TypeName for unmapped codes.
const UnknownTypeName = "Unknown"

var fieldTypeNames = map[FieldType]string{
	FieldTypeUnknown:     UnknownTypeName,
	FieldTypePushButton:  "PushButton",
	FieldTypeCheckBox:    "CheckBox",
	FieldTypeRadioButton: "RadioButton",
	FieldTypeComboBox:    "ComboBox",
	FieldTypeListBox:     "ListBox",
	FieldTypeText:        "Text",
	FieldTypeSignature:   "Signature",
}

// Field flags (PDF 32000-1 tables 221, 226, 228, 230). Bit position n is
// 1 << (n-1).
const (
	FlagReadOnly       = 1 << 0
	FlagRequired       = 1 << 1
	FlagNoExport       = 1 << 2
	FlagMultiline      = 1 << 12
	FlagPassword       = 1 << 13
	FlagNoToggleToOff  = 1 << 14
	FlagRadio          = 1 << 15
	FlagPushButton     = 1 << 16
	FlagCombo          = 1 << 17
	FlagEdit           = 1 << 18
	FlagSort           = 1 << 19
	FlagMultiSelect    = 1 << 21
	FlagRadiosInUnison = 1 << 25
)

// TypeName maps a field type code to its canonical name.
func TypeName(code int) string {
	if name, ok := fieldTypeNames[FieldType(code)]; ok {
		return name
	}
	return UnknownTypeName
}

func (t FieldType) String() string {
	return TypeName(int(t))
}

// FieldTypeNames lists the names of the known field types in code order.
func FieldTypeNames() []string {
	names := make([]string, 0, len(fieldTypeNames)-1)
	for t := FieldTypePushButton; t <= FieldTypeSignature; t++ {
		names = append(names, fieldTypeNames[t])
	}
	return names
}

// IsChoice reports whether fields of this type carry an option list.
func (t FieldType) IsChoice() bool {
	return t == FieldTypeComboBox || t == FieldTypeListBox
}

// IsToggle reports whether the field value is an on/off appearance state.
func (t FieldType) IsToggle() bool {
	return t == FieldTypeCheckBox || t == FieldTypeRadioButton
}

// ClassifyField derives the type code from a field's /FT name and /Ff flags.
func ClassifyField(ft string, flags int) FieldType {
	switch ft {
	case "Btn":
		switch {
		case flags&FlagPushButton != 0:
			return FieldTypePushButton
		case flags&FlagRadio != 0:
			return FieldTypeRadioButton
		default:
			return FieldTypeCheckBox
		}
	case "Ch":
		if flags&FlagCombo != 0 {
			return FieldTypeComboBox
		}
		return FieldTypeListBox
	case "Tx":
		return FieldTypeText
	case "Sig":
		return FieldTypeSignature
	default:
		return FieldTypeUnknown
	}
}
