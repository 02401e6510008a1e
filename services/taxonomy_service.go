package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/unified-blog-backend/database"
	"github.com/rpupo63/unified-blog-backend/errs"
	"github.com/rpupo63/unified-blog-backend/models"
	"github.com/rpupo63/unified-blog-backend/paging"
)

type TaxonomyService struct {
	db     database.Database
	logger zerolog.Logger
}

func NewTaxonomyService(db database.Database) *TaxonomyService {
	return &TaxonomyService{
		db:     db,
		logger: log.With().Str("service", "taxonomy").Logger(),
	}
}

// ListCategories returns a page of categories ordered by name, each with its
// post count.
func (s *TaxonomyService) ListCategories(ctx context.Context, page, pageSize int) (paging.Result[CategorySummary], error) {
	req, err := paging.Normalize(page, pageSize)
	if err != nil {
		return paging.Result[CategorySummary]{}, err
	}

	categories, err := s.db.CategoryRepo().FindAll(ctx)
	if err != nil {
		return paging.Result[CategorySummary]{}, errs.NewDatabaseError("list", "categories", err)
	}
	counts, err := s.db.CategoryRepo().PostCounts(ctx)
	if err != nil {
		return paging.Result[CategorySummary]{}, errs.NewDatabaseError("count", "category posts", err)
	}

	items, total := paging.Slice(categories, req)
	return paging.Map(paging.NewResult(items, total, req), func(c *models.Category) CategorySummary {
		return CategorySummary{
			CategoryView: newCategoryView(*c),
			PostCount:    counts[c.ID],
		}
	}), nil
}

// ListTags returns a page of tags ordered by name, each with its post count.
func (s *TaxonomyService) ListTags(ctx context.Context, page, pageSize int) (paging.Result[TagSummary], error) {
	req, err := paging.Normalize(page, pageSize)
	if err != nil {
		return paging.Result[TagSummary]{}, err
	}

	tags, err := s.db.TagRepo().FindAll(ctx)
	if err != nil {
		return paging.Result[TagSummary]{}, errs.NewDatabaseError("list", "tags", err)
	}
	counts, err := s.db.TagRepo().PostCounts(ctx)
	if err != nil {
		return paging.Result[TagSummary]{}, errs.NewDatabaseError("count", "tag posts", err)
	}

	items, total := paging.Slice(tags, req)
	return paging.Map(paging.NewResult(items, total, req), func(t *models.Tag) TagSummary {
		return TagSummary{
			TagView:   newTagView(*t),
			PostCount: counts[t.ID],
		}
	}), nil
}

// CreateCategory adds a category. Names are unique; the slug is derived from
// the name and suffixed when already used.
func (s *TaxonomyService) CreateCategory(ctx context.Context, name string, description *string) (CategoryView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CategoryView{}, errs.NewMissingRequiredFieldError("name")
	}

	var category models.Category
	err := s.db.Transaction(ctx, func(tx database.Database) error {
		base := models.Slugify(name)
		if base == "" {
			base = "category"
		}
		slug, err := freeSlug(base, func(candidate string) (bool, error) {
			taken, err := tx.CategoryRepo().SlugTaken(ctx, candidate)
			if err != nil {
				return false, errs.NewDatabaseError("check", "category slug", err)
			}
			return taken, nil
		})
		if err != nil {
			return err
		}

		category = models.Category{Name: name, Slug: slug, Description: description}
		if err := tx.CategoryRepo().Add(ctx, &category); err != nil {
			return errs.NewDatabaseError("create", "category", err)
		}
		return nil
	})
	if err != nil {
		return CategoryView{}, err
	}

	s.logger.Info().Str("category", name).Str("slug", category.Slug).Msg("Created category")
	return newCategoryView(category), nil
}
