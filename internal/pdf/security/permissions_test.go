package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPermissions(t *testing.T) {
	tests := []struct {
		name     string
		p        int
		want     Permissions
		canFill  bool
		restrict bool
	}{
		{
			name:    "all granted",
			p:       -1,
			want:    Permissions{true, true, true, true, true, true, true, true},
			canFill: true,
		},
		{
			name:     "print only",
			p:        -7996, // 0xFFFFE0C4
			want:     Permissions{Print: true},
			restrict: true,
		},
		{
			name:     "fill forms only",
			p:        BitFillForms,
			want:     Permissions{FillForms: true},
			canFill:  true,
			restrict: true,
		},
		{
			name:     "annotate implies fill",
			p:        BitAnnotate,
			want:     Permissions{Annotate: true},
			canFill:  true,
			restrict: true,
		},
		{
			name:     "nothing",
			p:        0,
			want:     Permissions{},
			restrict: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPermissions(tt.p)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.canFill, got.CanFillForms())
			assert.Equal(t, tt.restrict, got.IsRestricted())
		})
	}
}

func TestPermissions_Lists(t *testing.T) {
	p := NewPermissions(BitPrint | BitFillForms)

	assert.Equal(t, []string{"print", "fill_forms"}, p.Allowed())
	assert.Equal(t, []string{"modify", "copy", "annotate", "extract", "assemble", "print_high_quality"}, p.Denied())
	assert.Equal(t, "Allowed: print, fill_forms", p.String())

	assert.Equal(t, "No permissions granted", Permissions{}.String())
	assert.Empty(t, NewFullPermissions().Denied())
	assert.False(t, NewFullPermissions().IsRestricted())
}
