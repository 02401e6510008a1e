package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/unified-blog-backend/models"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// FindAll returns all categories ordered by name
func (r *CategoryRepo) FindAll(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.WithContext(ctx).Order("name").Find(&categories).Error
	return categories, err
}

// FindByIDs returns the categories among ids that exist. Unknown ids are
// simply absent from the result.
func (r *CategoryRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var categories []models.Category
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error
	return categories, err
}

// SlugTaken reports whether any category uses slug.
func (r *CategoryRepo) SlugTaken(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// Add inserts a new category into the database
func (r *CategoryRepo) Add(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Omit("Posts").Create(category).Error
}

// PostCounts returns the number of posts linked to each category that has any.
func (r *CategoryRepo) PostCounts(ctx context.Context) (map[uuid.UUID]int64, error) {
	return countLinks(ctx, r.db, "blog_post_categories", "category_id")
}

type linkCount struct {
	OwnerID uuid.UUID
	Total   int64
}

// countLinks groups a join table by column and counts rows per owner.
func countLinks(ctx context.Context, db *gorm.DB, table, column string) (map[uuid.UUID]int64, error) {
	var rows []linkCount
	err := db.WithContext(ctx).
		Table(table).
		Select(column + " AS owner_id, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.OwnerID] = row.Total
	}
	return counts, nil
}
