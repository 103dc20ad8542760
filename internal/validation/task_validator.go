package validation

import (
	"family-tasks/internal/domain"
)

const (
	titleMinLength = 1
	titleMaxLength = 500
)

// TaskValidator provides validation for Task-related operations.
// Non-empty titles are enforced here, in the store layer, rather than
// relying on the gateway's column constraints.
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// ValidateTitle validates a task title for creation or update
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimAndValidateString(title)

	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("title")
		return validationError
	}

	if !tv.validator.IsValidStringLength(trimmed, titleMinLength, titleMaxLength) {
		validationError.AddInvalidLengthError("title", trimmed, titleMinLength, titleMaxLength)
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidatePriority validates a priority level
func (tv *TaskValidator) ValidatePriority(priority domain.Priority) error {
	if !priority.IsValid() {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("priority", string(priority), "must be low, medium or high")
		return validationError
	}
	return nil
}

// ValidateTaskInput validates the input for task creation
func (tv *TaskValidator) ValidateTaskInput(input domain.TaskInput) error {
	validationError := NewValidationError()

	if titleErr := tv.ValidateTitle(input.Title); titleErr != nil {
		if titleValidationErr, ok := titleErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, titleValidationErr.Errors...)
		}
	}

	if input.Priority != "" {
		if priorityErr := tv.ValidatePriority(input.Priority); priorityErr != nil {
			if priorityValidationErr, ok := priorityErr.(*ValidationError); ok {
				validationError.Errors = append(validationError.Errors, priorityValidationErr.Errors...)
			}
		}
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateTaskID validates a task identifier
func (tv *TaskValidator) ValidateTaskID(id string) error {
	if !tv.validator.IsNonEmptyString(id) {
		validationError := NewValidationError()
		validationError.AddRequiredError("task_id")
		return validationError
	}
	return nil
}

// GetValidTitle returns a cleaned title if valid
func (tv *TaskValidator) GetValidTitle(title string) (string, error) {
	if err := tv.ValidateTitle(title); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(title), nil
}
