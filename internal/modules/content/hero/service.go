package hero

import (
	"context"
	"errors"
	"strings"

	"github.com/mx-space/folio/internal/models"
	"github.com/mx-space/folio/internal/pkg/apperr"
	"gorm.io/gorm"
)

const notFoundMessage = "Hero not found"

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Get returns the hero section, or nil when none has been created yet.
func (s *Service) Get(ctx context.Context) (*models.Hero, error) {
	var h models.Hero
	err := s.db.WithContext(ctx).Where("slot = ?", models.SingletonSlot).First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.FromDB(err, notFoundMessage)
	}
	return &h, nil
}

// Create inserts the hero section. A second hero is rejected with ErrConflict.
func (s *Service) Create(ctx context.Context, dto *CreateHeroDTO) (*models.Hero, error) {
	h := models.Hero{
		Slot:        models.SingletonSlot,
		Name:        dto.Name,
		Title:       dto.Title,
		Description: dto.Description,
		Image:       dto.Image,
		LinkedIn:    dto.LinkedIn,
		GitHub:      dto.GitHub,
		Instagram:   dto.Instagram,
		Twitter:     dto.Twitter,
		Fiverr:      dto.Fiverr,
		Upwork:      dto.Upwork,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Hero{}).Where("slot = ?", models.SingletonSlot).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict("hero already exists, update it instead")
		}
		return tx.Create(&h).Error
	})
	if err != nil {
		return nil, apperr.FromDB(err, notFoundMessage)
	}
	return &h, nil
}

// Update applies the supplied fields to the hero identified by dto.ID.
func (s *Service) Update(ctx context.Context, dto *UpdateHeroDTO) (*models.Hero, error) {
	id := strings.TrimSpace(dto.ID)
	if id == "" {
		return nil, apperr.Validation("ID required")
	}

	var h models.Hero
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&h, "id = ?", id).Error; err != nil {
			return err
		}
		if updates := dto.updates(); len(updates) > 0 {
			if err := tx.Model(&h).Updates(updates).Error; err != nil {
				return err
			}
		}
		return tx.First(&h, "id = ?", id).Error
	})
	if err != nil {
		return nil, apperr.FromDB(err, notFoundMessage)
	}
	return &h, nil
}
