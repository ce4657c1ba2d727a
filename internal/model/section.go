package model

import (
	"time"

	apperrors "github.com/folio/portfolio-cms/internal/errors"
	"github.com/folio/portfolio-cms/internal/util"
)

// Document is one section's content. Each section validates its own
// required fields.
type Document interface {
	Validate() error
	// Normalize prepares a validated payload for storage.
	Normalize()
	// Prepare readies a stored document for clients.
	Prepare()
	// Empty reports a stored document that should read as the default.
	Empty() bool
	SetTimestamps(createdAt, updatedAt time.Time)
	ClearTimestamps()
}

// Timestamps are owned by storage. Client supplied values are dropped
// before every write.
type Timestamps struct {
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func (t *Timestamps) SetTimestamps(createdAt, updatedAt time.Time) {
	t.CreatedAt = &createdAt
	t.UpdatedAt = &updatedAt
}

func (t *Timestamps) ClearTimestamps() {
	t.CreatedAt = nil
	t.UpdatedAt = nil
}

// scalar is embedded by sections without list fields.
type scalar struct{}

func (scalar) Normalize()  {}
func (scalar) Prepare()    {}
func (scalar) Empty() bool { return false }

type Hero struct {
	scalar
	Name        string   `json:"name"`
	Roles       []string `json:"roles"`
	Description string   `json:"description"`
	Avatar      string   `json:"avatar"`
	ResumeURL   string   `json:"resumeUrl"`
	Timestamps
}

func (h *Hero) Validate() error {
	switch {
	case util.IsBlank(h.Name):
		return apperrors.MissingRequired("name")
	case len(h.Roles) == 0:
		return apperrors.MissingRequired("roles")
	case util.IsBlank(h.Description):
		return apperrors.MissingRequired("description")
	}
	return nil
}

type AboutStatus struct {
	Available bool   `json:"available"`
	Company   string `json:"company"`
}

type About struct {
	scalar
	Bio    string       `json:"bio"`
	Avatar string       `json:"avatar"`
	Status *AboutStatus `json:"status"`
	Timestamps
}

func (a *About) Validate() error {
	switch {
	case util.IsBlank(a.Bio):
		return apperrors.MissingRequired("bio")
	case a.Status == nil:
		return apperrors.MissingRequired("status")
	}
	return nil
}

type ExperienceItem struct {
	Role    string `json:"role"`
	Company string `json:"company"`
	Period  string `json:"period"`
	Logo    string `json:"logo"`
	LogoBg  string `json:"logoBg"`
	Position
}

type Experience struct {
	Experiences []ExperienceItem `json:"experiences"`
	Timestamps
}

func (e *Experience) Validate() error {
	if e.Experiences == nil {
		return apperrors.MissingRequired("experiences")
	}
	return nil
}

func (e *Experience) Normalize()  { NormalizeOrder(e.Experiences) }
func (e *Experience) Prepare()    { SortByOrder(e.Experiences) }
func (e *Experience) Empty() bool { return len(e.Experiences) == 0 }

type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Image       string   `json:"image"`
	LiveURL     string   `json:"liveUrl"`
	GithubURL   string   `json:"githubUrl"`
	Position
}

type Projects struct {
	Projects []Project `json:"projects"`
	Timestamps
}

func (p *Projects) Validate() error {
	if p.Projects == nil {
		return apperrors.MissingRequired("projects")
	}
	return nil
}

func (p *Projects) Normalize()  { NormalizeOrder(p.Projects) }
func (p *Projects) Prepare()    { SortByOrder(p.Projects) }
func (p *Projects) Empty() bool { return len(p.Projects) == 0 }

type Skill struct {
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	ClassName string `json:"className,omitempty"`
	Position
}

type Skills struct {
	Skills []Skill `json:"skills"`
	Timestamps
}

func (s *Skills) Validate() error {
	if s.Skills == nil {
		return apperrors.MissingRequired("skills")
	}
	return nil
}

func (s *Skills) Normalize() { NormalizeOrder(s.Skills) }

func (s *Skills) Prepare() {
	SortByOrder(s.Skills)
	for i := range s.Skills {
		s.Skills[i].Icon = ResolveIcon(s.Skills[i].Icon)
	}
}

func (s *Skills) Empty() bool { return len(s.Skills) == 0 }

type Contact struct {
	scalar
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Timestamps
}

func (c *Contact) Validate() error {
	switch {
	case util.IsBlank(c.Email):
		return apperrors.MissingRequired("email")
	case util.IsBlank(c.Phone):
		return apperrors.MissingRequired("phone")
	case util.IsBlank(c.Location):
		return apperrors.MissingRequired("location")
	}
	return nil
}

type SiteMetadata struct {
	scalar
	Title        string `json:"title"`
	Description  string `json:"description"`
	Keywords     string `json:"keywords,omitempty"`
	Author       string `json:"author,omitempty"`
	CanonicalURL string `json:"canonicalUrl,omitempty"`
	Robots       string `json:"robots,omitempty"`

	OGTitle       string `json:"ogTitle,omitempty"`
	OGDescription string `json:"ogDescription,omitempty"`
	OGImage       string `json:"ogImage,omitempty"`
	OGURL         string `json:"ogUrl,omitempty"`
	OGType        string `json:"ogType,omitempty"`
	OGSiteName    string `json:"ogSiteName,omitempty"`

	TwitterCard        string `json:"twitterCard,omitempty"`
	TwitterTitle       string `json:"twitterTitle,omitempty"`
	TwitterDescription string `json:"twitterDescription,omitempty"`
	TwitterImage       string `json:"twitterImage,omitempty"`
	TwitterSite        string `json:"twitterSite,omitempty"`
	TwitterCreator     string `json:"twitterCreator,omitempty"`

	Viewport   string `json:"viewport,omitempty"`
	ThemeColor string `json:"themeColor,omitempty"`
	Language   string `json:"language,omitempty"`
	Favicon    string `json:"favicon,omitempty"`
	Timestamps
}

func (m *SiteMetadata) Validate() error {
	if util.IsBlank(m.Title) || util.IsBlank(m.Description) {
		return apperrors.ValidationError("Title and description are required fields")
	}
	return nil
}

// NewSection returns an empty document to decode a payload into.
func NewSection(name SectionName) (Document, bool) {
	switch name {
	case SectionHero:
		return &Hero{}, true
	case SectionAbout:
		return &About{}, true
	case SectionExperience:
		return &Experience{}, true
	case SectionProjects:
		return &Projects{}, true
	case SectionSkills:
		return &Skills{}, true
	case SectionContact:
		return &Contact{}, true
	case SectionMetadata:
		return &SiteMetadata{}, true
	}
	return nil, false
}
