package models

// Project is a portfolio entry with its owned collections.
type Project struct {
	Base
	Title        string        `json:"title"        gorm:"not null"`
	Description  string        `json:"description"  gorm:"type:text"`
	Image        string        `json:"image"`
	GitHub       string        `json:"github"       gorm:"column:github"`
	Demo         string        `json:"demo"`
	Category     string        `json:"category"     gorm:"size:32"`
	Order        int           `json:"order"        gorm:"column:order;not null;default:0;index"`
	Published    bool          `json:"published"    gorm:"not null;index"`
	Featured     bool          `json:"featured"     gorm:"not null;index"`
	Technologies []Technology  `json:"technologies" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Features     []Feature     `json:"features"     gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Gallery      []GalleryItem `json:"gallery"      gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Project) TableName() string { return "projects" }

type Technology struct {
	Child
	ProjectID string `json:"-"    gorm:"type:char(36);index;not null"`
	Name      string `json:"name" gorm:"not null"`
}

func (Technology) TableName() string { return "technologies" }

// Feature is a rich-text bullet describing the project.
type Feature struct {
	Child
	ProjectID string `json:"-"       gorm:"type:char(36);index;not null"`
	Content   string `json:"content" gorm:"type:text"`
}

func (Feature) TableName() string { return "features" }

type GalleryItem struct {
	Child
	ProjectID string `json:"-"   gorm:"type:char(36);index;not null"`
	URL       string `json:"url" gorm:"not null"`
	Alt       string `json:"alt"`
}

func (GalleryItem) TableName() string { return "gallery_items" }

// Project categories offered by the admin form. Other values are stored as is.
const (
	CategoryWeb     = "web"
	CategoryMobile  = "mobile"
	CategoryDesktop = "desktop"
	CategoryOther   = "other"
)
