package review

import (
	"github.com/mx-space/folio/internal/models"
	"github.com/mx-space/folio/internal/pkg/apperr"
)

type CreateReviewDTO struct {
	Name      string `json:"name"      binding:"required"`
	Role      string `json:"role"`
	Content   string `json:"content"   binding:"required"`
	Image     string `json:"image"`
	Rating    *int   `json:"rating"`
	VerifyURL string `json:"verifyUrl"`
}

type UpdateReviewDTO struct {
	Name      *string `json:"name"`
	Role      *string `json:"role"`
	Content   *string `json:"content"`
	Image     *string `json:"image"`
	Rating    *int    `json:"rating"`
	VerifyURL *string `json:"verifyUrl"`
}

func checkRating(r int) error {
	if r < models.MinRating || r > models.MaxRating {
		return apperr.Validation("rating must be between %d and %d", models.MinRating, models.MaxRating)
	}
	return nil
}
