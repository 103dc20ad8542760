package validation

import (
	"family-tasks/internal/domain"
)

const (
	memberNameMinLength = 1
	memberNameMaxLength = 100
)

// MemberValidator provides validation for FamilyMember-related operations
type MemberValidator struct {
	validator *Validator
}

// NewMemberValidator creates a new member validator
func NewMemberValidator() *MemberValidator {
	return &MemberValidator{
		validator: NewValidator(),
	}
}

// ValidateName validates a member display name
func (mv *MemberValidator) ValidateName(name string) error {
	validationError := NewValidationError()

	trimmed := mv.validator.TrimAndValidateString(name)

	if !mv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("name")
		return validationError
	}

	if !mv.validator.IsValidStringLength(trimmed, memberNameMinLength, memberNameMaxLength) {
		validationError.AddInvalidLengthError("name", trimmed, memberNameMinLength, memberNameMaxLength)
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateColor validates a member display color. An empty color is
// accepted; the store substitutes the default palette entry.
func (mv *MemberValidator) ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if !mv.validator.IsValidHexColor(color) {
		validationError := NewValidationError()
		validationError.AddInvalidFormatError("color", color, "#rrggbb")
		return validationError
	}
	return nil
}

// ValidateMemberInput validates the input for member creation or update
func (mv *MemberValidator) ValidateMemberInput(input domain.MemberInput) error {
	validationError := NewValidationError()

	if nameErr := mv.ValidateName(input.Name); nameErr != nil {
		if nameValidationErr, ok := nameErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, nameValidationErr.Errors...)
		}
	}

	if colorErr := mv.ValidateColor(input.Color); colorErr != nil {
		if colorValidationErr, ok := colorErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, colorValidationErr.Errors...)
		}
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateMemberID validates a member identifier
func (mv *MemberValidator) ValidateMemberID(id string) error {
	if !mv.validator.IsNonEmptyString(id) {
		validationError := NewValidationError()
		validationError.AddRequiredError("member_id")
		return validationError
	}
	return nil
}
