package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a free-form label. Tags are created implicitly the first time a post
// names them. Names are unique and compared case-sensitively.
type Tag struct {
	ID    uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name  string     `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex:idx_tag_name"`
	Slug  string     `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_tag_slug"`
	Posts []BlogPost `json:"-" gorm:"many2many:blog_post_tags"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
