package project

import (
	"context"
	"strings"

	"github.com/mx-space/folio/internal/database"
	"github.com/mx-space/folio/internal/models"
	"github.com/mx-space/folio/internal/pkg/apperr"
	"github.com/mx-space/folio/internal/pkg/richtext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const notFoundMessage = "Project not found"

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func byPosition(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }

func withChildren(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Technologies", byPosition).
		Preload("Features", byPosition).
		Preload("Gallery", byPosition)
}

// List returns projects sorted by display order, most recently updated first
// within the same order value.
func (s *Service) List(ctx context.Context, f ListFilter) ([]models.Project, error) {
	tx := withChildren(s.db.WithContext(ctx)).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "updated_at"}, Desc: true})
	if f.FeaturedOnly {
		tx = tx.Where("featured = ?", true)
	}
	if f.PublishedOnly {
		tx = tx.Where("published = ?", true)
	}

	items := []models.Project{}
	if err := tx.Find(&items).Error; err != nil {
		return nil, apperr.FromDB(err, notFoundMessage)
	}
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.Project, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperr.Validation("ID required")
	}
	var p models.Project
	if err := withChildren(s.db.WithContext(ctx)).First(&p, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, notFoundMessage)
	}
	return &p, nil
}

// Create inserts the project and its collections in one transaction.
func (s *Service) Create(ctx context.Context, dto *CreateProjectDTO) (*models.Project, error) {
	title := strings.TrimSpace(dto.Title)
	if title == "" {
		return nil, apperr.Validation("title is required")
	}
	technologies, err := toTechnologies("", dto.Technologies)
	if err != nil {
		return nil, err
	}
	features, err := toFeatures("", dto.Features)
	if err != nil {
		return nil, err
	}
	gallery, err := toGallery("", dto.Gallery)
	if err != nil {
		return nil, err
	}

	p := models.Project{
		Title:        title,
		Description:  richtext.Sanitize(dto.Description),
		Image:        dto.Image,
		GitHub:       dto.GitHub,
		Demo:         dto.Demo,
		Category:     normalizeCategory(dto.Category),
		Order:        dto.Order,
		Published:    true,
		Featured:     false,
	}
	if dto.Published != nil {
		p.Published = *dto.Published
	}
	if dto.Featured != nil {
		p.Featured = *dto.Featured
	}

	// Children are inserted explicitly: gorm's association save upserts by
	// primary key, which would steal a child id owned by another project.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&p).Error; err != nil {
			return err
		}
		for i := range technologies {
			technologies[i].ProjectID = p.ID
		}
		for i := range features {
			features[i].ProjectID = p.ID
		}
		for i := range gallery {
			gallery[i].ProjectID = p.ID
		}
		if err := database.InsertChildren(tx, technologies); err != nil {
			return err
		}
		if err := database.InsertChildren(tx, features); err != nil {
			return err
		}
		return database.InsertChildren(tx, gallery)
	})
	if err != nil {
		return nil, apperr.FromDB(err, notFoundMessage)
	}
	p.Technologies, p.Features, p.Gallery = technologies, features, gallery
	return &p, nil
}

// Update changes the supplied scalar fields and replaces every supplied
// collection. Parent update and replacements commit or roll back together.
func (s *Service) Update(ctx context.Context, id string, dto *UpdateProjectDTO) (*models.Project, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.Validation("ID required")
	}
	updates, err := dto.updates()
	if err != nil {
		return nil, err
	}
	kids, err := dto.children(id)
	if err != nil {
		return nil, err
	}

	var p models.Project
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			return err
		}
		touched := dto.Technologies != nil || dto.Features != nil || dto.Gallery != nil
		if len(updates) > 0 || touched {
			updates["updated_at"] = tx.NowFunc()
			if err := tx.Model(&p).Updates(updates).Error; err != nil {
				return err
			}
		}
		if dto.Technologies != nil {
			if err := database.ReplaceChildren(tx, "project_id", id, kids.technologies); err != nil {
				return err
			}
		}
		if dto.Features != nil {
			if err := database.ReplaceChildren(tx, "project_id", id, kids.features); err != nil {
				return err
			}
		}
		if dto.Gallery != nil {
			if err := database.ReplaceChildren(tx, "project_id", id, kids.gallery); err != nil {
				return err
			}
		}
		return withChildren(tx).First(&p, "id = ?", id).Error
	})
	if err != nil {
		return nil, apperr.FromDB(err, notFoundMessage)
	}
	return &p, nil
}

// Delete removes the project and every row it owns.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperr.Validation("ID required")
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Project
		if err := tx.Select("id").First(&p, "id = ?", id).Error; err != nil {
			return err
		}
		// Children first; not every backend enforces the cascade.
		for _, child := range []interface{}{&models.Technology{}, &models.Feature{}, &models.GalleryItem{}} {
			if err := tx.Where("project_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Project{}, "id = ?", id).Error
	})
	return apperr.FromDB(err, notFoundMessage)
}
