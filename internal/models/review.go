package models

// Review is a client testimonial.
type Review struct {
	Base
	Name      string `json:"name"      gorm:"not null"`
	Role      string `json:"role"`
	Content   string `json:"content"   gorm:"type:text"`
	Image     string `json:"image"`
	Rating    int    `json:"rating"    gorm:"not null"`
	VerifyURL string `json:"verifyUrl" gorm:"column:verify_url"`
}

func (Review) TableName() string { return "reviews" }

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)
