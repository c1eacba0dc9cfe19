package resume

// Sample returns a filled-in example resume.
func Sample() Document {
	return Document{
		Personal: Personal{
			Name:     "Alex Rivera",
			Email:    "alex.rivera@example.com",
			Phone:    "+1 (555) 123-4567",
			Location: "San Francisco, CA",
		},
		Summary: "Senior Frontend Engineer with 6+ years of experience building scalable web applications. " +
			"Passionate about clean code, performance optimization, and intuitive user experiences. Expert in React ecosystem and modern CSS.",
		Education: []Education{
			{Degree: "B.S. Computer Science", Institution: "University of California, Berkeley", Year: "2016 - 2020"},
		},
		Experience: []Experience{
			{
				Role:     "Senior Software Engineer",
				Company:  "TechFlow Inc.",
				Duration: "2022 - Present",
				Description: "Led the migration of a legacy monolithic application to a micro-frontend architecture using Webpack Module Federation.\n" +
					"Improved site performance metrics (Core Web Vitals) by 40% through code splitting and lazy loading.\n" +
					"Mentored 3 junior developers and established code review guidelines.",
			},
			{
				Role:     "Frontend Developer",
				Company:  "StartUp Alpha",
				Duration: "2020 - 2022",
				Description: "Developed and maintained the core customer dashboard used by 50k+ daily users.\n" +
					"Collaborated with product designers to implement a new design system using Tailwind CSS.",
			},
		},
		Projects: []Project{
			{
				ID:          "1",
				Title:       "E-Commerce Platform",
				Description: "A full-stack e-commerce solution built with Next.js, Stripe, and PostgreSQL. Features real-time inventory and AI recommendations.",
				TechStack:   []string{"Next.js", "PostgreSQL", "Stripe", "Redis"},
				LiveURL:     "https://demo-ecommerce.com",
				GithubURL:   "https://github.com/alex/ecommerce",
			},
			{
				ID:          "2",
				Title:       "Task Master AI",
				Description: "Productivity app utilizing OpenAI API to auto-categorize tasks and suggest priority levels based on user habits.",
				TechStack:   []string{"React", "Node.js", "OpenAI API"},
				GithubURL:   "https://github.com/alex/task-ai",
			},
		},
		Skills: Skills{
			Technical: []string{"React", "TypeScript", "Node.js", "PostgreSQL", "GraphQL"},
			Soft:      []string{"Team Leadership", "Mentoring", "Agile Methodologies"},
			Tools:     []string{"Git", "Docker", "AWS", "Figma"},
		},
		Links:      Links{Github: "github.com/alexrivera", Linkedin: "linkedin.com/in/alexrivera"},
		Template:   TemplateClassic,
		ThemeColor: DefaultThemeColor,
	}
}
