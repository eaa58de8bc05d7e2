package server

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps go-playground/validator to implement Echo's
// Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// MessageCreatedRequest is the DTO for the message-created publish endpoint.
// The caller guarantees the message has already been persisted.
type MessageCreatedRequest struct {
	ChatID             string          `json:"chatId" validate:"required"`
	Message            json.RawMessage `json:"message" validate:"required"`
	ParticipantUserIDs []string        `json:"participantUserIds" validate:"required,min=1,dive,required"`
}

// MessagesReadRequest is the DTO for the messages-read publish endpoint.
// ParticipantUserIDs lists the participants other than the reader.
type MessagesReadRequest struct {
	ChatID             string   `json:"chatId" validate:"required"`
	ReadByUserID       string   `json:"readByUserId" validate:"required"`
	ParticipantUserIDs []string `json:"participantUserIds" validate:"required,dive,required"`
}
