package models

// Message is a contact form submission.
type Message struct {
	Base
	Name    string `json:"name"    gorm:"not null"`
	Email   string `json:"email"   gorm:"not null;index"`
	Subject string `json:"subject"`
	Content string `json:"content" gorm:"type:text"`
	Read    bool   `json:"read"    gorm:"not null;index"`
}

func (Message) TableName() string { return "messages" }
