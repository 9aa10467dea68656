package review

import (
	"context"
	"strings"

	"github.com/mx-space/folio/internal/models"
	"github.com/mx-space/folio/internal/pkg/apperr"
	"github.com/mx-space/folio/internal/pkg/richtext"
	"gorm.io/gorm"
)

const notFoundMessage = "Review not found"

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// List returns reviews, most recently updated first.
func (s *Service) List(ctx context.Context) ([]models.Review, error) {
	items := []models.Review{}
	if err := s.db.WithContext(ctx).Order("updated_at DESC").Find(&items).Error; err != nil {
		return nil, apperr.FromDB(err, notFoundMessage)
	}
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.Review, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperr.Validation("ID required")
	}
	var r models.Review
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, notFoundMessage)
	}
	return &r, nil
}

func (s *Service) Create(ctx context.Context, dto *CreateReviewDTO) (*models.Review, error) {
	rating := models.DefaultRating
	if dto.Rating != nil {
		rating = *dto.Rating
	}
	if err := checkRating(rating); err != nil {
		return nil, err
	}
	r := models.Review{
		Name:      strings.TrimSpace(dto.Name),
		Role:      dto.Role,
		Content:   richtext.Sanitize(dto.Content),
		Image:     dto.Image,
		Rating:    rating,
		VerifyURL: strings.TrimSpace(dto.VerifyURL),
	}
	if r.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return nil, apperr.FromDB(err, notFoundMessage)
	}
	return &r, nil
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdateReviewDTO) (*models.Review, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperr.Validation("ID required")
	}
	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = strings.TrimSpace(*dto.Name)
	}
	if dto.Role != nil {
		updates["role"] = *dto.Role
	}
	if dto.Content != nil {
		updates["content"] = richtext.Sanitize(*dto.Content)
	}
	if dto.Image != nil {
		updates["image"] = *dto.Image
	}
	if dto.Rating != nil {
		if err := checkRating(*dto.Rating); err != nil {
			return nil, err
		}
		updates["rating"] = *dto.Rating
	}
	if dto.VerifyURL != nil {
		updates["verify_url"] = strings.TrimSpace(*dto.VerifyURL)
	}

	r, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return r, nil
	}
	if err := s.db.WithContext(ctx).Model(r).Updates(updates).Error; err != nil {
		return nil, apperr.FromDB(err, notFoundMessage)
	}
	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperr.Validation("ID required")
	}
	res := s.db.WithContext(ctx).Delete(&models.Review{}, "id = ?", id)
	if res.Error != nil {
		return apperr.FromDB(res.Error, notFoundMessage)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(notFoundMessage)
	}
	return nil
}
