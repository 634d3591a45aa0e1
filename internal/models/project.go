package models

import (
	"strings"
	"time"
)

type Project struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Color     string    `gorm:"type:varchar(16);default:'#3b82f6'" json:"color"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

// ProjectInput is the payload for creating a project
type ProjectInput struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// ProjectPatch is a partial project update
type ProjectPatch struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

// Apply returns p with the patch applied
func (pp ProjectPatch) Apply(p Project) Project {
	if pp.Name != nil {
		p.Name = strings.TrimSpace(*pp.Name)
	}
	if pp.Color != nil {
		p.Color = strings.TrimSpace(*pp.Color)
	}
	return p
}
