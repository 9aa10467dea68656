package project

import (
	"strings"

	"github.com/mx-space/folio/internal/models"
	"github.com/mx-space/folio/internal/pkg/apperr"
	"github.com/mx-space/folio/internal/pkg/richtext"
)

type TechnologyInput struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type FeatureInput struct {
	ID      string `json:"id,omitempty"`
	Content string `json:"content"`
}

type GalleryInput struct {
	ID  string `json:"id,omitempty"`
	URL string `json:"url"`
	Alt string `json:"alt"`
}

type CreateProjectDTO struct {
	Title        string            `json:"title"       binding:"required"`
	Description  string            `json:"description"`
	Image        string            `json:"image"`
	GitHub       string            `json:"github"`
	Demo         string            `json:"demo"`
	Category     string            `json:"category"`
	Order        int               `json:"order"`
	Published    *bool             `json:"published"`
	Featured     *bool             `json:"featured"`
	Technologies []TechnologyInput `json:"technologies"`
	Features     []FeatureInput    `json:"features"`
	Gallery      []GalleryInput    `json:"gallery"`
}

// UpdateProjectDTO updates only what is present. A present collection, even
// an empty one, replaces the stored collection.
type UpdateProjectDTO struct {
	Title        *string            `json:"title"`
	Description  *string            `json:"description"`
	Image        *string            `json:"image"`
	GitHub       *string            `json:"github"`
	Demo         *string            `json:"demo"`
	Category     *string            `json:"category"`
	Order        *int               `json:"order"`
	Published    *bool              `json:"published"`
	Featured     *bool              `json:"featured"`
	Technologies *[]TechnologyInput `json:"technologies"`
	Features     *[]FeatureInput    `json:"features"`
	Gallery      *[]GalleryInput    `json:"gallery"`
}

// ListFilter narrows a project listing. A false field applies no filter.
type ListFilter struct {
	FeaturedOnly  bool
	PublishedOnly bool
}

func (d *UpdateProjectDTO) updates() (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if d.Title != nil {
		title := strings.TrimSpace(*d.Title)
		if title == "" {
			return nil, apperr.Validation("title is required")
		}
		updates["title"] = title
	}
	if d.Description != nil {
		updates["description"] = richtext.Sanitize(*d.Description)
	}
	if d.Image != nil {
		updates["image"] = *d.Image
	}
	if d.GitHub != nil {
		updates["github"] = *d.GitHub
	}
	if d.Demo != nil {
		updates["demo"] = *d.Demo
	}
	if d.Category != nil {
		updates["category"] = normalizeCategory(*d.Category)
	}
	if d.Order != nil {
		updates["order"] = *d.Order
	}
	if d.Published != nil {
		updates["published"] = *d.Published
	}
	if d.Featured != nil {
		updates["featured"] = *d.Featured
	}
	return updates, nil
}

func normalizeCategory(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func toTechnologies(projectID string, in []TechnologyInput) ([]models.Technology, error) {
	out := make([]models.Technology, 0, len(in))
	for i, t := range in {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return nil, apperr.Validation("technology name is required")
		}
		out = append(out, models.Technology{
			Child:     models.Child{ID: strings.TrimSpace(t.ID), Position: i},
			ProjectID: projectID,
			Name:      name,
		})
	}
	return out, nil
}

func toFeatures(projectID string, in []FeatureInput) ([]models.Feature, error) {
	out := make([]models.Feature, 0, len(in))
	for i, f := range in {
		content := richtext.Sanitize(f.Content)
		if strings.TrimSpace(content) == "" {
			return nil, apperr.Validation("feature content is required")
		}
		out = append(out, models.Feature{
			Child:     models.Child{ID: strings.TrimSpace(f.ID), Position: i},
			ProjectID: projectID,
			Content:   content,
		})
	}
	return out, nil
}

func toGallery(projectID string, in []GalleryInput) ([]models.GalleryItem, error) {
	out := make([]models.GalleryItem, 0, len(in))
	for i, g := range in {
		url := strings.TrimSpace(g.URL)
		if url == "" {
			return nil, apperr.Validation("gallery url is required")
		}
		out = append(out, models.GalleryItem{
			Child:     models.Child{ID: strings.TrimSpace(g.ID), Position: i},
			ProjectID: projectID,
			URL:       url,
			Alt:       g.Alt,
		})
	}
	return out, nil
}

// children is the validated form of the collections in a payload. A nil
// field means the payload did not carry that collection.
type children struct {
	technologies []models.Technology
	features     []models.Feature
	gallery      []models.GalleryItem
}

func (d *UpdateProjectDTO) children(projectID string) (children, error) {
	var (
		c   children
		err error
	)
	if d.Technologies != nil {
		if c.technologies, err = toTechnologies(projectID, *d.Technologies); err != nil {
			return c, err
		}
	}
	if d.Features != nil {
		if c.features, err = toFeatures(projectID, *d.Features); err != nil {
			return c, err
		}
	}
	if d.Gallery != nil {
		if c.gallery, err = toGallery(projectID, *d.Gallery); err != nil {
			return c, err
		}
	}
	return c, nil
}
