package types

type NavItem struct {
	Label string
	ID    string
}

type Link struct {
	Label string
	URL   string
}

type Skill struct {
	Title       string
	Description string
}

type Passion struct {
	Title       string
	Description string
}

type Project struct {
	Title       string
	Description string
	Image       string
	Tags        []string
	GitHub      string
	Demo        string
	ActionLabel string
	ActionURL   string
}

type ContactInfo struct {
	Email    string
	Phone    string
	Location string
	Socials  []Link
}

type Profile struct {
	Name    string
	Roles   []string
	Tagline string
	About   []string
	Facts   []string
	Image   string
}

type HomePageData struct {
	Profile  Profile
	Nav      []NavItem
	Skills   []Skill
	Passions []Passion
	Projects []Project
	Info     ContactInfo
	Contact  ContactFormView
	Year     int
}

func (d HomePageData) WithContact(v ContactFormView) HomePageData {
	d.Contact = v
	return d
}

func (d HomePageData) WithYear(year int) HomePageData {
	d.Year = year
	return d
}
