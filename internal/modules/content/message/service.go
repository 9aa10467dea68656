package message

import (
	"context"
	"strings"

	"github.com/mx-space/folio/internal/models"
	"github.com/mx-space/folio/internal/pkg/apperr"
	"github.com/mx-space/folio/internal/pkg/pagination"
	"github.com/mx-space/folio/internal/pkg/response"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const notFoundMessage = "Message not found"

// read is reserved in MySQL, so the column is always quoted.
var unread = clause.Eq{Column: clause.Column{Name: "read"}, Value: false}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) query(ctx context.Context, f ListFilter) *gorm.DB {
	tx := s.db.WithContext(ctx).Model(&models.Message{})
	if f.UnreadOnly {
		tx = tx.Where(unread)
	}
	return tx.Order("created_at DESC")
}

// List returns every message, newest first.
func (s *Service) List(ctx context.Context, f ListFilter) ([]models.Message, error) {
	items := []models.Message{}
	if err := s.query(ctx, f).Find(&items).Error; err != nil {
		return nil, apperr.FromDB(err, notFoundMessage)
	}
	return items, nil
}

func (s *Service) ListPage(ctx context.Context, f ListFilter, q pagination.Query) ([]models.Message, response.Pagination, error) {
	items := []models.Message{}
	pag, err := pagination.Paginate(s.query(ctx, f), q, &items)
	if err != nil {
		return nil, response.Pagination{}, apperr.FromDB(err, notFoundMessage)
	}
	return items, pag, nil
}

func (s *Service) UnreadCount(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Message{}).Where(unread).Count(&n).Error
	if err != nil {
		return 0, apperr.FromDB(err, notFoundMessage)
	}
	return n, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.Message, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperr.Validation("ID required")
	}
	var m models.Message
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, notFoundMessage)
	}
	return &m, nil
}

func (s *Service) Create(ctx context.Context, dto *CreateMessageDTO) (*models.Message, error) {
	m := models.Message{
		Name:    strings.TrimSpace(dto.Name),
		Email:   strings.TrimSpace(dto.Email),
		Subject: strings.TrimSpace(dto.Subject),
		Content: dto.Content,
	}
	if m.Name == "" || m.Email == "" || strings.TrimSpace(m.Content) == "" {
		return nil, apperr.Validation("name, email and content are required")
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, apperr.FromDB(err, notFoundMessage)
	}
	return &m, nil
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdateMessageDTO) (*models.Message, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := dto.updates()
	if len(updates) == 0 {
		return m, nil
	}
	if err := s.db.WithContext(ctx).Model(m).Updates(updates).Error; err != nil {
		return nil, apperr.FromDB(err, notFoundMessage)
	}
	return s.GetByID(ctx, id)
}

func (s *Service) MarkRead(ctx context.Context, id string, read bool) (*models.Message, error) {
	return s.Update(ctx, id, &UpdateMessageDTO{Read: &read})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperr.Validation("ID required")
	}
	res := s.db.WithContext(ctx).Delete(&models.Message{}, "id = ?", id)
	if res.Error != nil {
		return apperr.FromDB(res.Error, notFoundMessage)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(notFoundMessage)
	}
	return nil
}
