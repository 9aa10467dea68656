package about

import (
	"context"
	"errors"
	"strings"

	"github.com/mx-space/folio/internal/database"
	"github.com/mx-space/folio/internal/models"
	"github.com/mx-space/folio/internal/pkg/apperr"
	"github.com/mx-space/folio/internal/pkg/richtext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const notFoundMessage = "About not found"

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func withSkills(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Skills", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// Get returns the about section with its skills, or nil when none exists.
func (s *Service) Get(ctx context.Context) (*models.About, error) {
	var a models.About
	err := withSkills(s.db.WithContext(ctx)).Where("slot = ?", models.SingletonSlot).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.FromDB(err, notFoundMessage)
	}
	return &a, nil
}

func (s *Service) Create(ctx context.Context, dto *CreateAboutDTO) (*models.About, error) {
	skills, err := toSkills("", dto.Skills)
	if err != nil {
		return nil, err
	}
	a := models.About{
		Slot:        models.SingletonSlot,
		Title:       dto.Title,
		Description: richtext.Sanitize(dto.Description),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.About{}).Where("slot = ?", models.SingletonSlot).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict("about already exists, update it instead")
		}
		if err := tx.Omit(clause.Associations).Create(&a).Error; err != nil {
			return err
		}
		for i := range skills {
			skills[i].AboutID = a.ID
		}
		return database.InsertChildren(tx, skills)
	})
	if err != nil {
		return nil, apperr.FromDB(err, notFoundMessage)
	}
	a.Skills = skills
	return &a, nil
}

// Update changes the supplied scalar fields and, when dto.Skills is set,
// replaces the whole skill set in the same transaction.
func (s *Service) Update(ctx context.Context, dto *UpdateAboutDTO) (*models.About, error) {
	id := strings.TrimSpace(dto.ID)
	if id == "" {
		return nil, apperr.Validation("ID required")
	}
	var skills []models.Skill
	if dto.Skills != nil {
		var err error
		if skills, err = toSkills(id, *dto.Skills); err != nil {
			return nil, err
		}
	}

	var a models.About
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&a, "id = ?", id).Error; err != nil {
			return err
		}
		updates := map[string]interface{}{}
		if dto.Title != nil {
			updates["title"] = *dto.Title
		}
		if dto.Description != nil {
			updates["description"] = richtext.Sanitize(*dto.Description)
		}
		if len(updates) > 0 || dto.Skills != nil {
			updates["updated_at"] = tx.NowFunc()
			if err := tx.Model(&a).Updates(updates).Error; err != nil {
				return err
			}
		}
		if dto.Skills != nil {
			if err := database.ReplaceChildren(tx, "about_id", id, skills); err != nil {
				return err
			}
		}
		return withSkills(tx).First(&a, "id = ?", id).Error
	})
	if err != nil {
		return nil, apperr.FromDB(err, notFoundMessage)
	}
	return &a, nil
}
