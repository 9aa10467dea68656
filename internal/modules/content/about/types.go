package about

import (
	"strings"

	"github.com/mx-space/folio/internal/models"
	"github.com/mx-space/folio/internal/pkg/apperr"
)

type SkillInput struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type CreateAboutDTO struct {
	Title       string       `json:"title"       binding:"required"`
	Description string       `json:"description"`
	Skills      []SkillInput `json:"skills"`
}

// UpdateAboutDTO replaces the skill set whenever Skills is present, even as [].
type UpdateAboutDTO struct {
	ID          string        `json:"id"`
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Skills      *[]SkillInput `json:"skills"`
}

func toSkills(aboutID string, inputs []SkillInput) ([]models.Skill, error) {
	skills := make([]models.Skill, 0, len(inputs))
	for i, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return nil, apperr.Validation("skill name is required")
		}
		icon, err := models.ParseSkillIcon(in.Icon)
		if err != nil {
			return nil, apperr.Validation("%s", err.Error())
		}
		skills = append(skills, models.Skill{
			Child:   models.Child{ID: strings.TrimSpace(in.ID), Position: i},
			AboutID: aboutID,
			Name:    name,
			Icon:    icon,
		})
	}
	return skills, nil
}
