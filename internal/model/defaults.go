package model

// DefaultSection returns a fresh copy of what a section reads as before
// anything has been written to it.
func DefaultSection(name SectionName) (Document, bool) {
	switch name {
	case SectionHero:
		return DefaultHero(), true
	case SectionAbout:
		return DefaultAbout(), true
	case SectionExperience:
		return &Experience{Experiences: DefaultExperiences()}, true
	case SectionProjects:
		return &Projects{Projects: DefaultProjects()}, true
	case SectionSkills:
		return &Skills{Skills: DefaultSkills()}, true
	case SectionContact:
		return DefaultContact(), true
	case SectionMetadata:
		return DefaultMetadata(), true
	}
	return nil, false
}

func DefaultHero() *Hero {
	return &Hero{
		Name:        "Prashant Basnet",
		Roles:       []string{"Full Stack Web Developer", "UI/UX Enthusiast", "React Specialist", "Next.js Expert"},
		Description: "I build scalable, fast, and modern web applications. Currently, I work at Digitrix Agency.",
		Avatar:      "/MyAvatar.png",
		ResumeURL:   "/Prashant-Resume.pdf",
	}
}

func DefaultAbout() *About {
	return &About{
		Bio:    "I'm a Full Stack web Developer with experience in building scalable, SEO-friendly and modern web applications.",
		Avatar: "/MyAvatar.png",
		Status: &AboutStatus{Available: true, Company: "Digitrix Agency"},
	}
}

func DefaultExperiences() []ExperienceItem {
	return []ExperienceItem{
		{
			Role:     "Web Developer",
			Company:  "Digitrix Agency",
			Period:   "Aug 2024 - Present",
			Logo:     "m",
			LogoBg:   "bg-blue-600",
			Position: Position{Order: intPtr(0)},
		},
		{
			Role:     "Sr. PHP Developer",
			Company:  "Benum.oDesign",
			Period:   "Apr 2024 - Jun 2024",
			Logo:     "☼",
			LogoBg:   "bg-blue-500",
			Position: Position{Order: intPtr(1)},
		},
	}
}

func DefaultProjects() []Project {
	return []Project{
		{
			Title:       "Create Receipts",
			Description: "SaaS web app for personal bookkeeping and receipt management. Streamlines financial tracking with intuitive tools.",
			Tags:        []string{"React", "Node.js", "MongoDB", "Tailwind"},
			Image:       "/projects/receipts.png",
			LiveURL:     "#",
			GithubURL:   "#",
			Position:    Position{Order: intPtr(0)},
		},
		{
			Title:       "AI Homework",
			Description: "Subscription based AI homework helper platform developed with Next.js. Helps students solve complex problems instantly.",
			Tags:        []string{"Next.js", "OpenAI API", "Stripe", "TypeScript"},
			Image:       "/projects/homework.png",
			LiveURL:     "#",
			GithubURL:   "#",
			Position:    Position{Order: intPtr(1)},
		},
		{
			Title:       "Portfolio Websites",
			Description: "Modern portfolio websites developed using Vite, Tailwind CSS and Framer Motion. Showcasing creative developer identities.",
			Tags:        []string{"React", "Vite", "Tailwind CSS", "Framer Motion"},
			Image:       "/projects/portfolio.png",
			LiveURL:     "#",
			GithubURL:   "#",
			Position:    Position{Order: intPtr(2)},
		},
	}
}

func DefaultSkills() []Skill {
	icon := func(name string) string {
		return "https://api.iconify.design/logos:" + name + ".svg"
	}
	return []Skill{
		{Name: "Next.js", Icon: icon("nextjs-icon"), ClassName: "dark:invert", Position: Position{Order: intPtr(0)}},
		{Name: "React", Icon: icon("react"), Position: Position{Order: intPtr(1)}},
		{Name: "JavaScript", Icon: icon("javascript"), Position: Position{Order: intPtr(2)}},
		{Name: "TypeScript", Icon: icon("typescript-icon"), Position: Position{Order: intPtr(3)}},
		{Name: "Node.js", Icon: icon("nodejs-icon"), Position: Position{Order: intPtr(4)}},
		{Name: "Tailwind CSS", Icon: icon("tailwindcss-icon"), Position: Position{Order: intPtr(5)}},
		{Name: "PHP", Icon: icon("php"), Position: Position{Order: intPtr(6)}},
		{Name: "MongoDB", Icon: icon("mongodb-icon"), Position: Position{Order: intPtr(7)}},
	}
}

func DefaultContact() *Contact {
	return &Contact{
		Email:    "prashantbasnet222@gmail.com",
		Phone:    "+91 7030842261",
		Location: "Mumbai, India",
	}
}

func DefaultMetadata() *SiteMetadata {
	return &SiteMetadata{
		Title:       "Prashant Basnet — Web Developer",
		Description: "Portfolio",
		Robots:      "index, follow",
		OGType:      "website",
		TwitterCard: "summary_large_image",
		Language:    "en",
	}
}
