package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/unified-blog-backend/models"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// FindByID returns a comment by its ID
func (r *CommentRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Add inserts a new comment into the database
func (r *CommentRepo) Add(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Omit("Replies").Create(comment).Error
}

// ListByPost returns one page of a post's comments, ordered by the given scopes.
func (r *CommentRepo) ListByPost(ctx context.Context, postID uuid.UUID, offset, limit int, order ...func(*gorm.DB) *gorm.DB) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Where("blog_post_id = ?", postID).
		Scopes(order...).
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	return comments, err
}

// CountByPost returns the number of comments on a post.
func (r *CommentRepo) CountByPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("blog_post_id = ?", postID).Count(&count).Error
	return count, err
}

// ParentLinks returns the id and parent id of every comment on a post.
func (r *CommentRepo) ParentLinks(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	var links []models.Comment
	err := r.db.WithContext(ctx).
		Select("id", "parent_comment_id").
		Where("blog_post_id = ?", postID).
		Find(&links).Error
	return links, err
}

// UpdateContent replaces a comment's content and stamps its edit time.
func (r *CommentRepo) UpdateContent(ctx context.Context, id uuid.UUID, content string, editedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"content":     content,
			"date_edited": editedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByIDs removes the given comments.
func (r *CommentRepo) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Comment{})
	return result.RowsAffected, result.Error
}

// DeleteByPost removes every comment on a post.
func (r *CommentRepo) DeleteByPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("blog_post_id = ?", postID).Delete(&models.Comment{})
	return result.RowsAffected, result.Error
}

// ToggleLike flips userID's like on a comment. found is false when the
// comment does not exist.
func (r *CommentRepo) ToggleLike(ctx context.Context, id, userID uuid.UUID) (found, liked bool, err error) {
	return toggleLike[models.Comment](ctx, r.db, id, userID)
}
