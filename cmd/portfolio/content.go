package main

import "github.com/oliverisaac/portfolio/types"

func siteContent() types.HomePageData {
	return types.HomePageData{
		Profile: types.Profile{
			Name:    "Prabin Shrestha",
			Roles:   []string{"Frontend Developer", "UI/UX Designer", "QA Engineer"},
			Tagline: "Building clean, responsive and reliable web experiences.",
			Image:   "https://images.unsplash.com/photo-1672676434074-20ff3b80a9c0?fit=max&w=1080&q=80",
			About: []string{
				"Hello! I'm Prabin Shrestha, a frontend-focused developer with a strong interest in UI/UX design and software quality assurance. I enjoy building clean, responsive, and user-friendly web applications.",
				"I'm currently pursuing a Bachelor's degree in Information Management, where I've developed a solid foundation in web technologies, design principles, and software testing.",
				"I believe good software is not only about how it looks, but also how reliably it works. By combining development, design, and QA skills, I aim to create digital experiences that are both beautiful and dependable.",
				"I'm continuously learning, experimenting with new tools, and improving my skills to grow as a well-rounded professional in the tech industry.",
			},
			Facts: []string{
				"Location: Lalitpur, Nepal",
				"Education: Bachelor's in Information Management (BIM)",
				"Core Skills: Frontend Development, UI/UX Design, Manual QA Testing",
			},
		},
		Nav: []types.NavItem{
			{Label: "Home", ID: "home"},
			{Label: "About", ID: "about"},
			{Label: "Skills", ID: "skills"},
			{Label: "Passion", ID: "passion"},
			{Label: "Projects", ID: "projects"},
			{Label: "Contact", ID: "contact"},
		},
		Skills: []types.Skill{
			{Title: "Frontend Development", Description: "React, TypeScript, HTML, CSS, Tailwind"},
			{Title: "Backend Development", Description: "Node.js, Python, APIs, Database Design"},
			{Title: "UI/UX Design", Description: "Figma, Adobe XD, User Research, Prototyping"},
			{Title: "Responsive Design", Description: "Mobile-first approach, Cross-browser compatibility"},
			{Title: "Web Technologies", Description: "Modern frameworks, Progressive Web Apps"},
			{Title: "Performance", Description: "Optimization, SEO, Accessibility"},
		},
		Passions: []types.Passion{
			{Title: "Quality-Driven Problem Solving", Description: "Identifying edge cases, analyzing user flows, and solving issues that affect usability and overall software quality."},
			{Title: "Sports & Team Spirit", Description: "Football, Basketball, and Table Tennis build teamwork, focus, discipline, and quick decision-making."},
			{Title: "Music & Creative Thinking", Description: "Music fuels creativity and keeps me focused while designing and testing applications."},
			{Title: "Attention to Detail", Description: "UI alignment, spacing, text clarity, and visual consistency across devices and browsers."},
			{Title: "User-Centric Perspective", Description: "Testing applications from real user viewpoints for accessibility, usability, and smooth interaction flows."},
			{Title: "Continuous Learning", Description: "Always learning new tools, testing techniques, and practices to improve software quality."},
		},
		Projects: []types.Project{
			{
				Title:       "Personal Portfolio Website",
				Description: "A personal website showcasing frontend, UI/UX, and QA skills with responsive design, clean UI, and optimized performance.",
				Tags:        []string{"Go", "templ", "htmx"},
				GitHub:      "https://github.com/Hsin-arp/Personalwebsite",
				Demo:        "https://prabin369.com.np",
			},
			{
				Title:       "QA & Software Testing Projects",
				Description: "Manual testing projects including test case creation, exploratory testing, and detailed bug reporting on real web applications.",
				Tags:        []string{"Manual Testing", "Test Cases", "Bug Reporting", "Exploratory Testing"},
				ActionLabel: "Reports (Coming Soon)",
				ActionURL:   "#",
			},
			{
				Title:       "Website QA Case Study",
				Description: "Requirement analysis, test scenario design, defect tracking, and validation of UI/UX and functional flows.",
				Tags:        []string{"Test Scenarios", "Regression Testing", "UI Testing"},
				ActionLabel: "Details",
				ActionURL:   "#",
			},
		},
		Info: types.ContactInfo{
			Email:    "pranish909@gmail.com",
			Phone:    "+977-9844637427",
			Location: "Lalitpur, Nepal",
			Socials: []types.Link{
				{Label: "GitHub", URL: "https://github.com"},
				{Label: "LinkedIn", URL: "https://linkedin.com"},
			},
		},
	}
}
