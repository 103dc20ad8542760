package validation

import (
	"strings"
	"testing"

	"family-tasks/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberValidator_ValidateName(t *testing.T) {
	validator := NewMemberValidator()

	tests := []struct {
		name       string
		memberName string
		wantErr    bool
	}{
		{name: "accepts plain name", memberName: "Ana"},
		{name: "rejects empty name", memberName: "", wantErr: true},
		{name: "rejects whitespace-only name", memberName: "  ", wantErr: true},
		{name: "rejects overlong name", memberName: strings.Repeat("a", 101), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateName(tt.memberName)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMemberValidator_ValidateColor(t *testing.T) {
	validator := NewMemberValidator()

	assert.NoError(t, validator.ValidateColor(""), "empty color falls back to the default")
	assert.NoError(t, validator.ValidateColor("#3b82f6"))
	assert.NoError(t, validator.ValidateColor(domain.DefaultMemberColor))
	assert.Error(t, validator.ValidateColor("blue"))
	assert.Error(t, validator.ValidateColor("#12345"))
	assert.Error(t, validator.ValidateColor("#12345g"))
}

func TestMemberValidator_ValidateMemberInput(t *testing.T) {
	validator := NewMemberValidator()

	assert.NoError(t, validator.ValidateMemberInput(domain.MemberInput{Name: "Ana"}))

	err := validator.ValidateMemberInput(domain.MemberInput{Name: "", Color: "nope"})
	require.Error(t, err)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Len(t, validationErr.Errors, 2)
}

func TestMemberValidator_ValidateMemberID(t *testing.T) {
	validator := NewMemberValidator()

	assert.NoError(t, validator.ValidateMemberID("m1"))
	assert.Error(t, validator.ValidateMemberID(""))
}
