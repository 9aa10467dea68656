package client

import "time"

type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Hero struct {
	Meta
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	LinkedIn    string `json:"linkedin"`
	GitHub      string `json:"github"`
	Instagram   string `json:"instagram"`
	Twitter     string `json:"twitter"`
	Fiverr      string `json:"fiverr"`
	Upwork      string `json:"upwork"`
}

type Skill struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

type About struct {
	Meta
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Skills      []Skill `json:"skills"`
}

type Technology struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type Feature struct {
	ID      string `json:"id,omitempty"`
	Content string `json:"content"`
}

type GalleryItem struct {
	ID  string `json:"id,omitempty"`
	URL string `json:"url"`
	Alt string `json:"alt"`
}

type Project struct {
	Meta
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Image        string        `json:"image"`
	GitHub       string        `json:"github"`
	Demo         string        `json:"demo"`
	Category     string        `json:"category"`
	Published    bool          `json:"published"`
	Featured     bool          `json:"featured"`
	Order        int           `json:"order"`
	Technologies []Technology  `json:"technologies"`
	Features     []Feature     `json:"features"`
	Gallery      []GalleryItem `json:"gallery"`
}

type Review struct {
	Meta
	Name      string `json:"name"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Image     string `json:"image"`
	Rating    int    `json:"rating"`
	VerifyURL string `json:"verifyUrl"`
}

type Message struct {
	Meta
	Name        string `json:"name"`
	Email       string `json:"email"`
	Subject     string `json:"subject"`
	Content     string `json:"content"`
	Read        bool   `json:"read"`
	ContentHTML string `json:"contentHtml,omitempty"`
}

// MessageInput is a public contact form submission.
type MessageInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Content string `json:"content"`
}

type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Patch carries the fields of a partial update. Present keys are written,
// absent keys are left alone; a child collection key replaces the set.
type Patch map[string]any

type ProjectFilter struct {
	Featured  bool
	Published bool
}

type MessageFilter struct {
	Unread bool
}
