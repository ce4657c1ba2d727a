package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/folio/portfolio-cms/internal/database"
	apperrors "github.com/folio/portfolio-cms/internal/errors"
	"github.com/folio/portfolio-cms/internal/model"
	"github.com/folio/portfolio-cms/internal/repository"
	"github.com/folio/portfolio-cms/internal/util"
)

// Forwarder is a second sink for contact messages.
type Forwarder interface {
	Configured() bool
	Forward(ctx context.Context, msg *model.Message) error
}

type InboxService struct {
	messages  repository.MessageRepository
	forwarder Forwarder
	now       func() time.Time
}

func NewInboxService(messages repository.MessageRepository, forwarder Forwarder) *InboxService {
	return &InboxService{messages: messages, forwarder: forwarder, now: time.Now}
}

// Submit stores the message and forwards it. It succeeds when at least one
// sink took the message; without a forwarder the database must.
func (s *InboxService) Submit(ctx context.Context, sub model.ContactSubmission) (*model.Message, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	msg := sub.ToMessage(s.now().UTC().Truncate(time.Microsecond))

	stored := true
	if err := s.messages.Create(ctx, msg); err != nil {
		stored = false
		log.Error().Err(err).Msg("failed to save contact message")
	}

	forwarded := false
	if s.forwarder != nil && s.forwarder.Configured() {
		if err := s.forwarder.Forward(ctx, msg); err != nil {
			log.Error().Err(err).Msg("failed to forward contact message")
		} else {
			forwarded = true
		}
	}

	if !stored && !forwarded {
		return nil, apperrors.Internal("Failed to send message. Please try again later.")
	}
	return msg, nil
}

func (s *InboxService) List(ctx context.Context, limit, offset int) ([]model.Message, int, error) {
	msgs, err := s.messages.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, storageError(err)
	}
	total, err := s.messages.Count(ctx)
	if err != nil {
		return nil, 0, storageError(err)
	}
	return msgs, total, nil
}

func (s *InboxService) Delete(ctx context.Context, id string) error {
	if !util.IsValidUUID(id) {
		return apperrors.InvalidInput("id", "must be a UUID")
	}

	deleted, err := s.messages.Delete(ctx, uuid.MustParse(id))
	if err != nil {
		return storageError(err)
	}
	if !deleted {
		return apperrors.NotFound("Message")
	}
	return nil
}

func storageError(err error) error {
	if errors.Is(err, database.ErrUnavailable) {
		return apperrors.StorageUnavailable(err)
	}
	return apperrors.Database(err)
}
