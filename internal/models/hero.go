package models

// Hero is the landing section. At most one row exists.
type Hero struct {
	Base
	Slot        string `json:"-"           gorm:"size:16;uniqueIndex;not null"`
	Name        string `json:"name"        gorm:"not null"`
	Title       string `json:"title"       gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	Image       string `json:"image"`
	LinkedIn    string `json:"linkedin"    gorm:"column:linkedin"`
	GitHub      string `json:"github"      gorm:"column:github"`
	Instagram   string `json:"instagram"`
	Twitter     string `json:"twitter"`
	Fiverr      string `json:"fiverr"`
	Upwork      string `json:"upwork"`
}

func (Hero) TableName() string { return "heroes" }
