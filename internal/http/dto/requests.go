package dto

import (
	"time"

	"github.com/google/uuid"
)

// Auth

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RecoverPasswordRequest struct {
	Email string `json:"email"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Country   *string `json:"country,omitempty"`
}

// Clients

type CreateClientRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Comment  string `json:"comment,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

type UpdateClientRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Comment  string `json:"comment,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// Mailings

type CreateMailingRequest struct {
	StartTime    time.Time   `json:"start_time"`
	Frequency    string      `json:"frequency"`
	Status       string      `json:"status,omitempty"`
	RecipientIDs []uuid.UUID `json:"recipient_ids,omitempty"`
}

type UpdateMailingRequest struct {
	StartTime    time.Time   `json:"start_time"`
	Frequency    string      `json:"frequency"`
	Status       string      `json:"status,omitempty"`
	RecipientIDs []uuid.UUID `json:"recipient_ids,omitempty"`
}

type ToggleMailingRequest struct {
	Action string `json:"action"` // activate / deactivate
}

// Messages

type CreateMessageRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type UpdateMessageRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Blog

type CreateBlogPostRequest struct {
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	PreviewImage *string `json:"preview_image,omitempty"`
	IsPublished  *bool   `json:"is_published,omitempty"`
}

type UpdateBlogPostRequest struct {
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	PreviewImage *string `json:"preview_image,omitempty"`
	IsPublished  *bool   `json:"is_published,omitempty"`
}
