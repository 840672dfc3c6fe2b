package models

// Profile is the site owner's public profile record.
type Profile struct {
	ID       string   `bson:"id" json:"id"`
	Name     string   `bson:"name" json:"name"`
	Title    string   `bson:"title" json:"title"`
	Tagline  string   `bson:"tagline" json:"tagline"`
	About    string   `bson:"about" json:"about"`
	Skills   []string `bson:"skills" json:"skills"`
	Email    string   `bson:"email" json:"email"`
	Github   string   `bson:"github" json:"github"`
	Linkedin string   `bson:"linkedin" json:"linkedin"`
	Upwork   string   `bson:"upwork,omitempty" json:"upwork,omitempty"`
}

// Project is a portfolio project card.
type Project struct {
	ID           string   `bson:"id" json:"id"`
	Title        string   `bson:"title" json:"title"`
	Description  string   `bson:"description" json:"description"`
	Image        string   `bson:"image" json:"image"`
	Technologies []string `bson:"technologies" json:"technologies"`
	Category     string   `bson:"category" json:"category"`
	Link         string   `bson:"link,omitempty" json:"link,omitempty"`
	Github       string   `bson:"github,omitempty" json:"github,omitempty"`
	Featured     bool     `bson:"featured" json:"featured"`
	SortOrder    int      `bson:"sortOrder" json:"sortOrder"`
}

// Experience is one entry of the career timeline.
type Experience struct {
	ID          string   `bson:"id" json:"id"`
	Year        string   `bson:"year" json:"year"`
	Title       string   `bson:"title" json:"title"`
	Company     string   `bson:"company" json:"company"`
	Description string   `bson:"description" json:"description"`
	Skills      []string `bson:"skills" json:"skills"`
	Icon        string   `bson:"icon,omitempty" json:"icon,omitempty"`
	SortOrder   int      `bson:"sortOrder" json:"sortOrder"`
}

// Testimonial is a client quote shown on the landing page.
type Testimonial struct {
	ID      string `bson:"id" json:"id"`
	Name    string `bson:"name" json:"name"`
	Role    string `bson:"role" json:"role"`
	Content string `bson:"content" json:"content"`
	Avatar  string `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Rating  int    `bson:"rating" json:"rating"`
}
