package models

import (
	"fmt"
	"strings"
)

// About is the biography section. At most one row exists.
type About struct {
	Base
	Slot        string  `json:"-"           gorm:"size:16;uniqueIndex;not null"`
	Title       string  `json:"title"       gorm:"not null"`
	Description string  `json:"description" gorm:"type:text"`
	Skills      []Skill `json:"skills"      gorm:"foreignKey:AboutID;references:ID;constraint:OnDelete:CASCADE"`
}

func (About) TableName() string { return "abouts" }

type Skill struct {
	Child
	AboutID string    `json:"-"    gorm:"type:char(36);index;not null"`
	Name    string    `json:"name" gorm:"not null"`
	Icon    SkillIcon `json:"icon" gorm:"size:32"`
}

func (Skill) TableName() string { return "skills" }

// SkillIcon names one of the icons the front end knows how to draw.
// The empty value means the front end picks its default.
type SkillIcon string

const (
	IconHTML5      SkillIcon = "Html5"
	IconCSS3       SkillIcon = "Css3"
	IconJavascript SkillIcon = "Javascript"
	IconReact      SkillIcon = "React"
	IconDatabase   SkillIcon = "Database"
	IconServer     SkillIcon = "Server"
	IconCode       SkillIcon = "Code"
	IconLayers     SkillIcon = "Layers"
	IconCPU        SkillIcon = "Cpu"
	IconGlobe      SkillIcon = "Globe"
)

var skillIcons = []SkillIcon{
	IconHTML5, IconCSS3, IconJavascript, IconReact, IconDatabase,
	IconServer, IconCode, IconLayers, IconCPU, IconGlobe,
}

// SkillIcons lists every accepted icon key.
func SkillIcons() []SkillIcon {
	out := make([]SkillIcon, len(skillIcons))
	copy(out, skillIcons)
	return out
}

// ParseSkillIcon matches raw case-insensitively against the known icon keys
// and returns the canonical spelling.
func ParseSkillIcon(raw string) (SkillIcon, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}
	for _, icon := range skillIcons {
		if strings.EqualFold(string(icon), trimmed) {
			return icon, nil
		}
	}
	return "", fmt.Errorf("unknown skill icon %q", raw)
}
