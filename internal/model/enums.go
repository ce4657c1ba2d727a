package model

type SectionName string

const (
	SectionHero       SectionName = "hero"
	SectionAbout      SectionName = "about"
	SectionExperience SectionName = "experience"
	SectionProjects   SectionName = "projects"
	SectionSkills     SectionName = "skills"
	SectionContact    SectionName = "contact"
	SectionMetadata   SectionName = "metadata"
)

// Sections lists every section in display order.
var Sections = []SectionName{
	SectionHero,
	SectionAbout,
	SectionExperience,
	SectionProjects,
	SectionSkills,
	SectionContact,
	SectionMetadata,
}

func ParseSection(s string) (SectionName, bool) {
	for _, name := range Sections {
		if string(name) == s {
			return name, true
		}
	}
	return "", false
}
