package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/folio/portfolio-cms/internal/database"
	"github.com/folio/portfolio-cms/internal/model"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	List(ctx context.Context, limit, offset int) ([]model.Message, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type messageRepo struct {
	storage Storage
}

func NewMessageRepository(storage Storage) MessageRepository {
	return &messageRepo{storage: storage}
}

func (r *messageRepo) Create(ctx context.Context, msg *model.Message) error {
	return r.storage.WithStorage(ctx, func(ctx context.Context, db database.DBTX) error {
		_, err := db.ExecContext(ctx, `
			INSERT INTO messages (id, name, email, message, read, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, msg.ID, msg.Name, msg.Email, msg.Message, msg.Read, msg.CreatedAt)
		return err
	})
}

func (r *messageRepo) List(ctx context.Context, limit, offset int) ([]model.Message, error) {
	msgs := []model.Message{}
	err := r.storage.WithStorage(ctx, func(ctx context.Context, db database.DBTX) error {
		return db.SelectContext(ctx, &msgs, `
			SELECT id, name, email, message, read, created_at
			FROM messages
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2
		`, limit, offset)
	})
	return msgs, err
}

func (r *messageRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.storage.WithStorage(ctx, func(ctx context.Context, db database.DBTX) error {
		return db.GetContext(ctx, &count, `SELECT COUNT(*) FROM messages`)
	})
	return count, err
}

func (r *messageRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var affected int64
	err := r.storage.WithStorage(ctx, func(ctx context.Context, db database.DBTX) error {
		res, err := db.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	return affected > 0, err
}
