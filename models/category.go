package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups posts. Posts own the association; the back-reference is
// read-only from the category side.
type Category struct {
	ID          uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string     `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex:idx_category_name"`
	Slug        string     `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_category_slug"`
	Description *string    `json:"description,omitempty" db:"description" gorm:"type:text"`
	Posts       []BlogPost `json:"-" gorm:"many2many:blog_post_categories"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
