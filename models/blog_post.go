package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogPost represents a complete blog post with metadata
type BlogPost struct {
	ID            uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title         string     `json:"title" db:"title" gorm:"type:text;not null"`
	Slug          string     `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_blog_post_slug"`
	Content       string     `json:"content" db:"content" gorm:"type:text;not null"`
	Excerpt       *string    `json:"excerpt,omitempty" db:"excerpt" gorm:"type:text"`
	FeaturedImage *string    `json:"featuredImage,omitempty" db:"featured_image" gorm:"type:text"`
	Published     bool       `json:"published" db:"published" gorm:"not null;default:false;index"`
	Featured      bool       `json:"featured" db:"featured" gorm:"not null;default:false"`
	AuthorID      uuid.UUID  `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index:idx_blog_post_author_id"`
	AuthorName    string     `json:"authorName" db:"author_name" gorm:"type:text;not null;default:''"`
	ViewCount     int64      `json:"viewCount" db:"view_count" gorm:"not null;default:0"`
	LikedBy       LikeSet    `json:"-" db:"liked_by" gorm:"column:liked_by;not null"`
	DateAdded     time.Time  `json:"dateAdded" db:"date_added" gorm:"not null"`
	DateEdited    time.Time  `json:"dateEdited" db:"date_edited" gorm:"not null"`
	Categories    []Category `json:"categories,omitempty" gorm:"many2many:blog_post_categories;constraint:OnDelete:CASCADE"`
	Tags          []Tag      `json:"tags,omitempty" gorm:"many2many:blog_post_tags;constraint:OnDelete:CASCADE"`
	Comments      []Comment  `json:"-" gorm:"foreignKey:BlogPostID;references:ID;constraint:OnDelete:CASCADE"`
}

func (p *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *BlogPost) Likes() *LikeSet {
	return &p.LikedBy
}

// NumberOfLikes is always derived from the like set.
func (p *BlogPost) NumberOfLikes() int {
	return p.LikedBy.Len()
}
