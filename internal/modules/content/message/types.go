package message

import "github.com/mx-space/folio/internal/models"

type CreateMessageDTO struct {
	Name    string `json:"name"    binding:"required"`
	Email   string `json:"email"   binding:"required,email"`
	Subject string `json:"subject"`
	Content string `json:"content" binding:"required"`
}

type UpdateMessageDTO struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Subject *string `json:"subject"`
	Content *string `json:"content"`
	Read    *bool   `json:"read"`
}

func (d *UpdateMessageDTO) updates() map[string]interface{} {
	m := map[string]interface{}{}
	if d.Name != nil {
		m["name"] = *d.Name
	}
	if d.Email != nil {
		m["email"] = *d.Email
	}
	if d.Subject != nil {
		m["subject"] = *d.Subject
	}
	if d.Content != nil {
		m["content"] = *d.Content
	}
	if d.Read != nil {
		m["read"] = *d.Read
	}
	return m
}

// ListFilter narrows the inbox.
type ListFilter struct {
	UnreadOnly bool
}

// Detail is a message with its body rendered for display.
type Detail struct {
	models.Message
	ContentHTML string `json:"contentHtml"`
}
