package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/unified-blog-backend/database"
	"github.com/rpupo63/unified-blog-backend/errs"
	"github.com/rpupo63/unified-blog-backend/models"
)

// maxSlugAttempts bounds the numeric suffix search for a free slug.
const maxSlugAttempts = 1000

// Reconciler replaces a post's category and tag associations with a desired
// set. It always clears and rebuilds the association, and must be given the
// transaction the post is being written in.
type Reconciler struct {
	logger zerolog.Logger
}

func NewReconciler() *Reconciler {
	return &Reconciler{
		logger: log.With().Str("service", "reconciler").Logger(),
	}
}

// ReconcileCategories links post to exactly the existing categories among ids.
// Unknown ids are dropped.
func (r *Reconciler) ReconcileCategories(ctx context.Context, tx database.Database, post *models.BlogPost, ids []uuid.UUID) error {
	wanted := dedupeIDs(ids)

	categories, err := tx.CategoryRepo().FindByIDs(ctx, wanted)
	if err != nil {
		return errs.NewDatabaseError("load", "categories", err)
	}

	if dropped := len(wanted) - len(categories); dropped > 0 {
		r.logger.Debug().
			Str("postID", post.ID.String()).
			Int("dropped", dropped).
			Msg("Ignoring unknown category ids")
	}

	if err := tx.BlogPostRepo().ReplaceCategories(ctx, post, categories); err != nil {
		return errs.NewDatabaseError("update", "post categories", err)
	}
	return nil
}

// ReconcileTags links post to the tags named in names, creating the missing
// ones first. Names are trimmed and matched exactly.
func (r *Reconciler) ReconcileTags(ctx context.Context, tx database.Database, post *models.BlogPost, names []string) error {
	wanted := normalizeTagNames(names)

	existing, err := tx.TagRepo().FindByNames(ctx, wanted)
	if err != nil {
		return errs.NewDatabaseError("load", "tags", err)
	}

	byName := make(map[string]models.Tag, len(existing))
	for _, tag := range existing {
		byName[tag.Name] = tag
	}

	tags := make([]models.Tag, 0, len(wanted))
	for _, name := range wanted {
		if tag, ok := byName[name]; ok {
			tags = append(tags, tag)
			continue
		}

		tag, err := r.createTag(ctx, tx, name)
		if err != nil {
			return err
		}
		tags = append(tags, tag)
	}

	if err := tx.BlogPostRepo().ReplaceTags(ctx, post, tags); err != nil {
		return errs.NewDatabaseError("update", "post tags", err)
	}
	return nil
}

// createTag inserts a tag named name inside a savepoint. When another writer
// committed the same name first, the existing row is returned instead.
func (r *Reconciler) createTag(ctx context.Context, tx database.Database, name string) (models.Tag, error) {
	slug, err := r.freeTagSlug(ctx, tx, models.TagSlug(name))
	if err != nil {
		return models.Tag{}, err
	}

	tag := models.Tag{Name: name, Slug: slug}
	err = tx.Transaction(ctx, func(sp database.Database) error {
		if err := sp.TagRepo().Add(ctx, &tag); err != nil {
			return errs.NewDatabaseError("create", "tag", err)
		}
		return nil
	})
	if err == nil {
		r.logger.Debug().Str("tag", name).Str("slug", slug).Msg("Created tag")
		return tag, nil
	}
	if !errs.IsUniqueConstraintViolationError(err) {
		return models.Tag{}, err
	}

	existing, findErr := tx.TagRepo().FindByNames(ctx, []string{name})
	if findErr != nil {
		return models.Tag{}, errs.NewDatabaseError("load", "tag", findErr)
	}
	if len(existing) == 0 {
		// The slug clashed, not the name.
		return models.Tag{}, err
	}
	r.logger.Debug().Str("tag", name).Msg("Tag created concurrently, reusing it")
	return existing[0], nil
}

func (r *Reconciler) freeTagSlug(ctx context.Context, tx database.Database, base string) (string, error) {
	return freeSlug(base, func(candidate string) (bool, error) {
		taken, err := tx.TagRepo().SlugTaken(ctx, candidate)
		if err != nil {
			return false, errs.NewDatabaseError("check", "tag slug", err)
		}
		return taken, nil
	})
}

// freeSlug returns base, or base-2, base-3 and so on, whichever taken
// reports free first.
func freeSlug(base string, taken func(string) (bool, error)) (string, error) {
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		candidate := models.SlugCandidate(base, attempt)
		used, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !used {
			return candidate, nil
		}
	}
	return "", errs.NewAlreadyExists("slug " + base)
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == uuid.Nil {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// normalizeTagNames trims names, drops empty ones and keeps the first
// occurrence of each, preserving order.
func normalizeTagNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
