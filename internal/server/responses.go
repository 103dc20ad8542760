package server

import (
	"time"

	"family-tasks/internal/domain"
	"family-tasks/internal/errors"
	"family-tasks/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RegisterRequest is the body for profile registration.
type RegisterRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name,omitempty"`
}

// LoginRequest is the body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse carries the profile and its session token.
type SessionResponse struct {
	Token   string          `json:"token"`
	Profile ProfileResponse `json:"profile"`
}

// ProfileResponse is the JSON form of a profile.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskRequest is the body for creating or updating a task.
type TaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Completed   bool       `json:"completed,omitempty"`
}

// TaskResponse is the JSON form of a task.
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// MemberRequest is the body for creating or updating a family member.
type MemberRequest struct {
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Color     string  `json:"color,omitempty"`
}

// MemberResponse is the JSON form of a family member.
type MemberResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// SelectionRequest is the body for selecting a family member.
type SelectionRequest struct {
	MemberID string `json:"member_id"`
}

// SelectionResponse reports the current member selection: the snapshot
// taken at selection time, or null when nothing is selected.
type SelectionResponse struct {
	Member *MemberResponse `json:"member"`
}

// MemberStatsResponse carries the per-member statistics and the top member.
type MemberStatsResponse struct {
	Stats     map[string]domain.MemberStats `json:"stats"`
	TopMember *string                       `json:"top_member"`
}

func toProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		Email:     p.Email,
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
		CreatedAt: p.CreatedAt,
	}
}

func toTaskResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		CompletedAt: t.CompletedAt,
		Category:    t.Category,
		Tags:        t.Tags,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskResponses(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out
}

func toMemberResponse(m domain.FamilyMember) MemberResponse {
	return MemberResponse{
		ID:        m.ID,
		Name:      m.Name,
		AvatarURL: m.AvatarURL,
		Color:     m.Color,
		CreatedAt: m.CreatedAt,
	}
}

func toSelectionResponse(member *domain.FamilyMember) SelectionResponse {
	if member == nil {
		return SelectionResponse{}
	}
	resp := toMemberResponse(*member)
	return SelectionResponse{Member: &resp}
}

func toMemberResponses(members []domain.FamilyMember) []MemberResponse {
	out := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberResponse(m))
	}
	return out
}

// handleError maps application errors onto HTTP responses.
func handleError(c *fiber.Ctx, err error) error {
	if validation.IsValidationError(err) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation",
			Message: err.Error(),
		})
	}

	status := fiber.StatusInternalServerError
	if appErr, ok := errors.AsAppError(err); ok {
		switch appErr.Type {
		case errors.ErrorTypeValidation, errors.ErrorTypeInvalidInput:
			status = fiber.StatusBadRequest
		case errors.ErrorTypeNotFound:
			status = fiber.StatusNotFound
		case errors.ErrorTypeUnauthorized:
			status = fiber.StatusUnauthorized
		case errors.ErrorTypePermission:
			status = fiber.StatusForbidden
		}
	}

	return c.Status(status).JSON(ErrorResponse{
		Error:   errors.GetErrorCode(err),
		Message: errors.GetUserMessage(err),
	})
}
