package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx/types"

	"github.com/folio/portfolio-cms/internal/database"
	"github.com/folio/portfolio-cms/internal/model"
)

// Storage is the accessor the repositories run their statements through.
// *database.Manager implements it.
type Storage interface {
	WithStorage(ctx context.Context, fn func(ctx context.Context, db database.DBTX) error) error
}

// StoredSection is one row of content_sections. Document never carries
// timestamps; those live in their own columns.
type StoredSection struct {
	Section   model.SectionName `db:"section"`
	Document  types.JSONText    `db:"document"`
	CreatedAt time.Time         `db:"created_at"`
	UpdatedAt time.Time         `db:"updated_at"`
}

type SectionRepository interface {
	Find(ctx context.Context, name model.SectionName) (*StoredSection, error)
	Upsert(ctx context.Context, name model.SectionName, document []byte, now time.Time) (*StoredSection, error)
}

type sectionRepo struct {
	storage Storage
}

func NewSectionRepository(storage Storage) SectionRepository {
	return &sectionRepo{storage: storage}
}

func (r *sectionRepo) Find(ctx context.Context, name model.SectionName) (*StoredSection, error) {
	var found *StoredSection
	err := r.storage.WithStorage(ctx, func(ctx context.Context, db database.DBTX) error {
		var row StoredSection
		err := db.GetContext(ctx, &row, `
			SELECT section, document, created_at, updated_at
			FROM content_sections
			WHERE section = $1
		`, name)
		found, err = HandleNotFound(&row, err)
		return err
	})
	return found, err
}

// Upsert replaces the section's document in one statement. created_at is
// set by the first insert only.
func (r *sectionRepo) Upsert(ctx context.Context, name model.SectionName, document []byte, now time.Time) (*StoredSection, error) {
	var row StoredSection
	err := r.storage.WithStorage(ctx, func(ctx context.Context, db database.DBTX) error {
		return db.GetContext(ctx, &row, `
			INSERT INTO content_sections (section, document, created_at, updated_at)
			VALUES ($1, $2, $3, $3)
			ON CONFLICT (section) DO UPDATE
			SET document = EXCLUDED.document,
			    updated_at = EXCLUDED.updated_at
			RETURNING section, document, created_at, updated_at
		`, name, types.JSONText(document), now)
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}
