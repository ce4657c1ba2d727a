package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/folio/portfolio-cms/internal/database"
	apperrors "github.com/folio/portfolio-cms/internal/errors"
	"github.com/folio/portfolio-cms/internal/model"
	"github.com/folio/portfolio-cms/internal/repository"
)

var ErrSectionUnknown = errors.New("unknown content section")

// ContentService keeps one current document per section. Reads never fail
// for lack of content; they fall back to a default.
type ContentService struct {
	sections repository.SectionRepository
	now      func() time.Time
}

func NewContentService(sections repository.SectionRepository) *ContentService {
	return &ContentService{sections: sections, now: time.Now}
}

// ReadSection returns the stored document for name, or def when storage is
// unavailable, the section was never written, or a list section is empty.
func (s *ContentService) ReadSection(ctx context.Context, name model.SectionName, def model.Document) model.Document {
	row, err := s.sections.Find(ctx, name)
	if err != nil {
		if !errors.Is(err, database.ErrNotConfigured) {
			log.Warn().Err(err).Str("section", string(name)).Msg("serving default content")
		}
		return def
	}
	if row == nil {
		return def
	}

	doc, _ := model.NewSection(name)
	if err := json.Unmarshal(row.Document, doc); err != nil {
		log.Error().Err(err).Str("section", string(name)).Msg("stored document does not decode, serving default")
		return def
	}
	if doc.Empty() {
		return def
	}

	doc.SetTimestamps(row.CreatedAt, row.UpdatedAt)
	doc.Prepare()
	return doc
}

// Read is ReadSection with the built-in default for name.
func (s *ContentService) Read(ctx context.Context, name model.SectionName) (model.Document, error) {
	def, ok := model.DefaultSection(name)
	if !ok {
		return nil, ErrSectionUnknown
	}
	return s.ReadSection(ctx, name, def), nil
}

// Write validates payload as the named section and replaces the stored
// document with it. The returned document is what storage now holds.
func (s *ContentService) Write(ctx context.Context, name model.SectionName, payload []byte) (model.Document, error) {
	doc, ok := model.NewSection(name)
	if !ok {
		return nil, apperrors.NotFound("Section")
	}
	if err := json.Unmarshal(payload, doc); err != nil {
		return nil, apperrors.InvalidInput("payload", "malformed JSON for section "+string(name))
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	doc.ClearTimestamps()
	doc.Normalize()

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, apperrors.Internal("Failed to encode document").WithCause(err)
	}

	now := s.now().UTC().Truncate(time.Microsecond)
	row, err := s.sections.Upsert(ctx, name, raw, now)
	if err != nil {
		log.Error().Err(err).Str("section", string(name)).Msg("failed to upsert section")
		return nil, storageError(err)
	}

	stored, _ := model.NewSection(name)
	if err := json.Unmarshal(row.Document, stored); err != nil {
		return nil, apperrors.Database(err)
	}
	stored.SetTimestamps(row.CreatedAt, row.UpdatedAt)
	stored.Prepare()
	return stored, nil
}

// All is the public page's aggregate read.
type All struct {
	Hero        *model.Hero            `json:"hero"`
	About       *model.About           `json:"about"`
	Experiences []model.ExperienceItem `json:"experiences"`
	Projects    []model.Project        `json:"projects"`
	Skills      []model.Skill          `json:"skills"`
	Contact     *model.Contact         `json:"contact"`
}

// ReadAll reads every page section concurrently. Each one falls back to
// its default on its own.
func (s *ContentService) ReadAll(ctx context.Context) (*All, error) {
	var all All
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		all.Hero = s.ReadSection(ctx, model.SectionHero, model.DefaultHero()).(*model.Hero)
		return nil
	})
	g.Go(func() error {
		all.About = s.ReadSection(ctx, model.SectionAbout, model.DefaultAbout()).(*model.About)
		return nil
	})
	g.Go(func() error {
		doc := s.ReadSection(ctx, model.SectionExperience, &model.Experience{Experiences: model.DefaultExperiences()})
		all.Experiences = doc.(*model.Experience).Experiences
		return nil
	})
	g.Go(func() error {
		doc := s.ReadSection(ctx, model.SectionProjects, &model.Projects{Projects: model.DefaultProjects()})
		all.Projects = doc.(*model.Projects).Projects
		return nil
	})
	g.Go(func() error {
		doc := s.ReadSection(ctx, model.SectionSkills, &model.Skills{Skills: model.DefaultSkills()})
		all.Skills = doc.(*model.Skills).Skills
		return nil
	})
	g.Go(func() error {
		all.Contact = s.ReadSection(ctx, model.SectionContact, model.DefaultContact()).(*model.Contact)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &all, nil
}
