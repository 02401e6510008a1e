package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/unified-blog-backend/models"
)

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// PostFilter narrows post listings. Empty fields do not filter.
type PostFilter struct {
	CategorySlug  string
	TagSlug       string
	PublishedOnly bool
}

func (f PostFilter) scope(root *gorm.DB) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.PublishedOnly {
			db = db.Where("blog_posts.published = ?", true)
		}
		if f.CategorySlug != "" {
			db = db.Where("blog_posts.id IN (?)", root.
				Table("blog_post_categories").
				Select("blog_post_categories.blog_post_id").
				Joins("JOIN categories ON categories.id = blog_post_categories.category_id").
				Where("categories.slug = ?", f.CategorySlug))
		}
		if f.TagSlug != "" {
			db = db.Where("blog_posts.id IN (?)", root.
				Table("blog_post_tags").
				Select("blog_post_tags.blog_post_id").
				Joins("JOIN tags ON tags.id = blog_post_tags.tag_id").
				Where("tags.slug = ?", f.TagSlug))
		}
		return db
	}
}

// FindByID returns a blog post with its categories and tags
func (r *BlogPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	var blogPost models.BlogPost
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Tags").
		First(&blogPost, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &blogPost, nil
}

// FindBySlug returns a blog post by its slug
func (r *BlogPostRepo) FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var blogPost models.BlogPost
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Tags").
		First(&blogPost, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &blogPost, nil
}

// Exists reports whether a post with id exists.
func (r *BlogPostRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BlogPost{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// List returns one page of posts matching filter, ordered by the given scopes.
func (r *BlogPostRepo) List(ctx context.Context, filter PostFilter, offset, limit int, order ...func(*gorm.DB) *gorm.DB) ([]*models.BlogPost, error) {
	var blogPosts []*models.BlogPost
	err := r.db.WithContext(ctx).
		Model(&models.BlogPost{}).
		Scopes(filter.scope(r.db.WithContext(ctx))).
		Scopes(order...).
		Preload("Categories").
		Preload("Tags").
		Offset(offset).
		Limit(limit).
		Find(&blogPosts).Error
	return blogPosts, err
}

// Count returns the number of posts matching filter.
func (r *BlogPostRepo) Count(ctx context.Context, filter PostFilter) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.BlogPost{}).
		Scopes(filter.scope(r.db.WithContext(ctx))).
		Count(&count).Error
	return count, err
}

// SlugTaken reports whether slug belongs to a post other than exceptID.
func (r *BlogPostRepo) SlugTaken(ctx context.Context, slug string, exceptID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.BlogPost{}).
		Where("slug = ? AND id <> ?", slug, exceptID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a new blog post. Associations are written separately.
func (r *BlogPostRepo) Add(ctx context.Context, blogPost *models.BlogPost) error {
	return r.db.WithContext(ctx).Omit("Categories", "Tags", "Comments").Create(blogPost).Error
}

// UpdateFields writes the given columns of one post. Columns not named are
// left untouched, so likes and view counts cannot be overwritten here.
func (r *BlogPostRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&models.BlogPost{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplaceCategories clears the post's category links and links categories.
func (r *BlogPostRepo) ReplaceCategories(ctx context.Context, blogPost *models.BlogPost, categories []models.Category) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(blogPost).Association("Categories").Clear(); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}
	if len(categories) == 0 {
		return nil
	}
	if err := db.Model(blogPost).Association("Categories").Append(categories); err != nil {
		return fmt.Errorf("append categories: %w", err)
	}
	return nil
}

// ReplaceTags clears the post's tag links and links tags.
func (r *BlogPostRepo) ReplaceTags(ctx context.Context, blogPost *models.BlogPost, tags []models.Tag) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(blogPost).Association("Tags").Clear(); err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}
	if len(tags) == 0 {
		return nil
	}
	if err := db.Model(blogPost).Association("Tags").Append(tags); err != nil {
		return fmt.Errorf("append tags: %w", err)
	}
	return nil
}

// IncrementViewCount adds one view without reading the current value.
func (r *BlogPostRepo) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.BlogPost{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ToggleLike flips userID's like on a post. found is false when the post
// does not exist.
func (r *BlogPostRepo) ToggleLike(ctx context.Context, id, userID uuid.UUID) (found, liked bool, err error) {
	return toggleLike[models.BlogPost](ctx, r.db, id, userID)
}

// Delete removes a post together with its association rows. Comments must
// be removed first.
func (r *BlogPostRepo) Delete(ctx context.Context, blogPost *models.BlogPost) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(blogPost).Association("Categories").Clear(); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}
	if err := db.Model(blogPost).Association("Tags").Clear(); err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}
	result := db.Delete(&models.BlogPost{}, "id = ?", blogPost.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
