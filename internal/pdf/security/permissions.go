package security

import (
	"fmt"
	"strings"
)

// Permission bits of the encryption dictionary's /P entry (PDF 32000-1
// table 22). Bit n of the table is 1 << (n-1).
const (
	BitPrint            = 1 << 2
	BitModify           = 1 << 3
	BitCopy             = 1 << 4
	BitAnnotate         = 1 << 5
	BitFillForms        = 1 << 8
	BitExtract          = 1 << 9
	BitAssemble         = 1 << 10
	BitPrintHighQuality = 1 << 11
)

// Permissions is the decoded user access of an encrypted document. An
// unencrypted document grants everything.
type Permissions struct {
	Print            bool `json:"print"`
	Modify           bool `json:"modify"`
	Copy             bool `json:"copy"`
	Annotate         bool `json:"annotate"`
	FillForms        bool `json:"fill_forms"`
	Extract          bool `json:"extract"`
	Assemble         bool `json:"assemble"`
	PrintHighQuality bool `json:"print_high_quality"`
}

// NewPermissions decodes a /P value. Only the low 32 bits are significant.
func NewPermissions(p int) Permissions {
	bits := int32(p)
	return Permissions{
		Print:            bits&BitPrint != 0,
		Modify:           bits&BitModify != 0,
		Copy:             bits&BitCopy != 0,
		Annotate:         bits&BitAnnotate != 0,
		FillForms:        bits&BitFillForms != 0,
		Extract:          bits&BitExtract != 0,
		Assemble:         bits&BitAssemble != 0,
		PrintHighQuality: bits&BitPrintHighQuality != 0,
	}
}

// NewFullPermissions grants every operation.
func NewFullPermissions() Permissions {
	return NewPermissions(-1)
}

// CanFillForms reports whether a user may fill in existing form fields. Bit 6
// alone also allows it when bit 9 is clear, for revision 2 handlers.
func (p Permissions) CanFillForms() bool {
	return p.FillForms || p.Annotate
}

// IsRestricted returns true if any permission is denied
func (p Permissions) IsRestricted() bool {
	return len(p.Denied()) > 0
}

func (p Permissions) entries() []struct {
	name    string
	granted bool
} {
	return []struct {
		name    string
		granted bool
	}{
		{"print", p.Print},
		{"modify", p.Modify},
		{"copy", p.Copy},
		{"annotate", p.Annotate},
		{"fill_forms", p.FillForms},
		{"extract", p.Extract},
		{"assemble", p.Assemble},
		{"print_high_quality", p.PrintHighQuality},
	}
}

// Allowed lists granted operations in table order.
func (p Permissions) Allowed() []string {
	var allowed []string
	for _, e := range p.entries() {
		if e.granted {
			allowed = append(allowed, e.name)
		}
	}
	return allowed
}

// Denied lists refused operations in table order.
func (p Permissions) Denied() []string {
	var denied []string
	for _, e := range p.entries() {
		if !e.granted {
			denied = append(denied, e.name)
		}
	}
	return denied
}

// String returns a human-readable representation of the permissions
func (p Permissions) String() string {
	allowed := p.Allowed()
	if len(allowed) == 0 {
		return "No permissions granted"
	}
	return fmt.Sprintf("Allowed: %s", strings.Join(allowed, ", "))
}
