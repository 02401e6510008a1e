package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a reply to a post, optionally nested under another comment of
// the same post. The parent is fixed at creation time, which keeps every
// post's comments an acyclic forest.
type Comment struct {
	ID              uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Content         string     `json:"content" db:"content" gorm:"type:text;not null"`
	AuthorID        uuid.UUID  `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index:idx_comment_author_id"`
	AuthorName      string     `json:"authorName" db:"author_name" gorm:"type:text;not null;default:''"`
	BlogPostID      uuid.UUID  `json:"postId" db:"blog_post_id" gorm:"type:uuid;not null;index:idx_comment_blog_post_id"`
	ParentCommentID *uuid.UUID `json:"parentCommentId,omitempty" db:"parent_comment_id" gorm:"type:uuid;index:idx_comment_parent_id"`
	LikedBy         LikeSet    `json:"-" db:"liked_by" gorm:"column:liked_by;not null"`
	DateAdded       time.Time  `json:"dateAdded" db:"date_added" gorm:"not null;index"`
	DateEdited      time.Time  `json:"dateEdited" db:"date_edited" gorm:"not null"`
	Replies         []Comment  `json:"-" gorm:"foreignKey:ParentCommentID;references:ID;constraint:OnDelete:CASCADE"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Comment) Likes() *LikeSet {
	return &c.LikedBy
}

func (c *Comment) NumberOfLikes() int {
	return c.LikedBy.Len()
}

// IsEdited reports whether the content changed after creation.
func (c *Comment) IsEdited() bool {
	return !c.DateEdited.Equal(c.DateAdded)
}
