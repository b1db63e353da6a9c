package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/remind-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	PushKey  string `json:"push_key,omitempty" validate:"max=128"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// Username is the account the tokens were issued to.
	Username string `json:"username"`

	// AccessToken is the JWT token used for API authorization.
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens.
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token
// refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CreateTaskRequest defines the payload for creating a task. Status,
// priority, and recurrence arrive as strings and are parsed against the
// closed enum sets before anything is persisted.
type CreateTaskRequest struct {
	Title      string `json:"title"      validate:"required,min=1"`
	Status     string `json:"status"     validate:"required"`
	DueDate    string `json:"due_date"   validate:"required"`
	Favorite   bool   `json:"favorite"`
	Category   string `json:"category"   validate:"max=64"`
	Priority   string `json:"priority"   validate:"required"`
	Recurrence string `json:"recurrence" validate:"required"`
}

// UpdateTaskRequest defines the payload for replacing a task's mutable
// fields.
type UpdateTaskRequest struct {
	Title      string `json:"title"      validate:"required,min=1"`
	Status     string `json:"status"     validate:"required"`
	DueDate    string `json:"due_date"   validate:"required"`
	Favorite   bool   `json:"favorite"`
	Category   string `json:"category"   validate:"max=64"`
	Priority   string `json:"priority"   validate:"required"`
	Recurrence string `json:"recurrence" validate:"required"`
}

// SetStatusRequest defines the payload for the status transition endpoint.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// TaskResponse is the wire form of a task. The field order (id, owner,
// title, status, due_date, favorite, category, priority, recurrence) is
// the export contract consumed by external renderers; keep it stable.
type TaskResponse struct {
	ID         uuid.UUID `json:"id"`
	Owner      string    `json:"owner"`
	Title      string    `json:"title"`
	Status     string    `json:"status"`
	DueDate    string    `json:"due_date"`
	Favorite   bool      `json:"favorite"`
	Category   string    `json:"category"`
	Priority   string    `json:"priority"`
	Recurrence string    `json:"recurrence"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewTaskResponse converts a domain task into its wire form.
func NewTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:         t.ID,
		Owner:      t.Owner,
		Title:      t.Title,
		Status:     string(t.Status),
		DueDate:    t.DueDate,
		Favorite:   t.Favorite,
		Category:   t.Category,
		Priority:   string(t.Priority),
		Recurrence: string(t.Recurrence),
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// NewTaskListResponse converts a slice of domain tasks into wire form,
// preserving order.
func NewTaskListResponse(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTaskResponse(&tasks[i]))
	}
	return out
}

// SetStatusResponse wraps the post-transition task. When the transition
// completed a recurring task but its stored due date could not be
// advanced, RolloverFailed is true and the task remains Done.
type SetStatusResponse struct {
	Task           TaskResponse `json:"task"`
	RolloverFailed bool         `json:"rollover_failed,omitempty"`
}
