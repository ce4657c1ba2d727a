package model

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/folio/portfolio-cms/internal/errors"
	"github.com/folio/portfolio-cms/internal/util"
)

type Message struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Message   string    `db:"message" json:"message"`
	Read      bool      `db:"read" json:"read"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// ContactSubmission is the public contact form body.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (s *ContactSubmission) Validate() error {
	if util.IsBlank(s.Name) || util.IsBlank(s.Email) || util.IsBlank(s.Message) {
		return apperrors.ValidationError("Missing required fields")
	}
	return nil
}

func (s *ContactSubmission) ToMessage(now time.Time) *Message {
	return &Message{
		ID:        uuid.New(),
		Name:      s.Name,
		Email:     s.Email,
		Message:   s.Message,
		CreatedAt: now,
	}
}
