package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/unified-blog-backend/database"
	"github.com/rpupo63/unified-blog-backend/errs"
	"github.com/rpupo63/unified-blog-backend/models"
	"github.com/rpupo63/unified-blog-backend/paging"
	"github.com/rpupo63/unified-blog-backend/sorting"
)

const postEntity = "blog post"

// CreatePostRequest carries a new post. AuthorID and AuthorName come from the
// authenticated caller.
type CreatePostRequest struct {
	Title         string
	Content       string
	Excerpt       *string
	FeaturedImage *string
	Published     bool
	Featured      bool
	AuthorID      uuid.UUID
	AuthorName    string
	CategoryIDs   []uuid.UUID
	TagNames      []string
}

// UpdatePostRequest replaces every editable field of a post, including its
// category and tag sets.
type UpdatePostRequest struct {
	Title         string
	Content       string
	Excerpt       *string
	FeaturedImage *string
	Published     bool
	Featured      bool
	CategoryIDs   []uuid.UUID
	TagNames      []string
}

// PostQuery selects one page of posts. Empty CategorySlug and TagSlug do not
// filter; an empty SortField keeps storage order.
type PostQuery struct {
	Page          int
	PageSize      int
	CategorySlug  string
	TagSlug       string
	PublishedOnly bool
	SortField     string
	Direction     string
	ViewerID      uuid.UUID
}

type PostService struct {
	db         database.Database
	reconciler *Reconciler
	baseURL    string
	logger     zerolog.Logger
}

func NewPostService(db database.Database, reconciler *Reconciler, baseURL string) *PostService {
	return &PostService{
		db:         db,
		reconciler: reconciler,
		baseURL:    baseURL,
		logger:     log.With().Str("service", "posts").Logger(),
	}
}

func (s *PostService) CreatePost(ctx context.Context, req CreatePostRequest) (PostView, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return PostView{}, errs.NewMissingRequiredFieldError("title")
	}
	if strings.TrimSpace(req.Content) == "" {
		return PostView{}, errs.NewMissingRequiredFieldError("content")
	}
	if req.AuthorID == uuid.Nil {
		return PostView{}, errs.NewMissingRequiredFieldError("authorId")
	}

	var created *models.BlogPost
	err := s.db.Transaction(ctx, func(tx database.Database) error {
		slug, err := s.freePostSlug(ctx, tx, title, uuid.Nil)
		if err != nil {
			return err
		}

		now := timestamp()
		post := &models.BlogPost{
			Title:         title,
			Slug:          slug,
			Content:       req.Content,
			Excerpt:       req.Excerpt,
			FeaturedImage: req.FeaturedImage,
			Published:     req.Published,
			Featured:      req.Featured,
			AuthorID:      req.AuthorID,
			AuthorName:    req.AuthorName,
			LikedBy:       models.NewLikeSet(),
			DateAdded:     now,
			DateEdited:    now,
		}
		if err := tx.BlogPostRepo().Add(ctx, post); err != nil {
			return errs.NewDatabaseError("create", postEntity, err)
		}

		if err := s.reconciler.ReconcileCategories(ctx, tx, post, req.CategoryIDs); err != nil {
			return err
		}
		if err := s.reconciler.ReconcileTags(ctx, tx, post, req.TagNames); err != nil {
			return err
		}

		created, err = tx.BlogPostRepo().FindByID(ctx, post.ID)
		if err != nil {
			return errs.NewDatabaseError("load", postEntity, err)
		}
		return nil
	})
	if err != nil {
		return PostView{}, err
	}

	s.logger.Info().Str("postID", created.ID.String()).Str("slug", created.Slug).Msg("Created blog post")
	return newPostView(created, req.AuthorID, s.baseURL), nil
}

// UpdatePost rewrites the editable fields of a post owned by actorID. Likes
// and the view counter are never written here.
func (s *PostService) UpdatePost(ctx context.Context, id, actorID uuid.UUID, req UpdatePostRequest) (PostView, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return PostView{}, errs.NewMissingRequiredFieldError("title")
	}
	if strings.TrimSpace(req.Content) == "" {
		return PostView{}, errs.NewMissingRequiredFieldError("content")
	}

	var updated *models.BlogPost
	err := s.db.Transaction(ctx, func(tx database.Database) error {
		post, err := tx.BlogPostRepo().FindByID(ctx, id)
		if database.IsNotFound(err) {
			return errs.NewNotFound(postEntity)
		}
		if err != nil {
			return errs.NewDatabaseError("load", postEntity, err)
		}
		if post.AuthorID != actorID {
			return errs.NewNotAuthorError(postEntity)
		}

		fields := map[string]any{
			"title":          title,
			"content":        req.Content,
			"excerpt":        req.Excerpt,
			"featured_image": req.FeaturedImage,
			"published":      req.Published,
			"featured":       req.Featured,
			"date_edited":    timestamp(),
		}
		if title != post.Title {
			slug, err := s.freePostSlug(ctx, tx, title, post.ID)
			if err != nil {
				return err
			}
			fields["slug"] = slug
		}
		if err := tx.BlogPostRepo().UpdateFields(ctx, post.ID, fields); err != nil {
			return errs.NewDatabaseError("update", postEntity, err)
		}

		if err := s.reconciler.ReconcileCategories(ctx, tx, post, req.CategoryIDs); err != nil {
			return err
		}
		if err := s.reconciler.ReconcileTags(ctx, tx, post, req.TagNames); err != nil {
			return err
		}

		updated, err = tx.BlogPostRepo().FindByID(ctx, post.ID)
		if err != nil {
			return errs.NewDatabaseError("load", postEntity, err)
		}
		return nil
	})
	if err != nil {
		return PostView{}, err
	}

	s.logger.Info().Str("postID", id.String()).Msg("Updated blog post")
	return newPostView(updated, actorID, s.baseURL), nil
}

// DeletePost removes a post owned by actorID along with its comments and
// association rows. It reports false when the post does not exist.
func (s *PostService) DeletePost(ctx context.Context, id, actorID uuid.UUID) (bool, error) {
	found := false
	err := s.db.Transaction(ctx, func(tx database.Database) error {
		post, err := tx.BlogPostRepo().FindByID(ctx, id)
		if database.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return errs.NewDatabaseError("load", postEntity, err)
		}
		if post.AuthorID != actorID {
			return errs.NewNotAuthorError(postEntity)
		}

		removed, err := tx.CommentRepo().DeleteByPost(ctx, post.ID)
		if err != nil {
			return errs.NewDatabaseError("delete", "comments", err)
		}
		if err := tx.BlogPostRepo().Delete(ctx, post); err != nil {
			return errs.NewDatabaseError("delete", postEntity, err)
		}

		found = true
		s.logger.Info().Str("postID", id.String()).Int64("comments", removed).Msg("Deleted blog post")
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// GetPost returns a post and counts the read.
func (s *PostService) GetPost(ctx context.Context, id, viewerID uuid.UUID) (PostView, error) {
	var post *models.BlogPost
	err := s.db.Transaction(ctx, func(tx database.Database) error {
		if err := tx.BlogPostRepo().IncrementViewCount(ctx, id); err != nil {
			if database.IsNotFound(err) {
				return errs.NewNotFound(postEntity)
			}
			return errs.NewDatabaseError("count view of", postEntity, err)
		}

		var err error
		post, err = tx.BlogPostRepo().FindByID(ctx, id)
		if err != nil {
			return errs.NewDatabaseError("load", postEntity, err)
		}
		return nil
	})
	if err != nil {
		return PostView{}, err
	}
	return newPostView(post, viewerID, s.baseURL), nil
}

// GetPostBySlug returns a post by slug and counts the read.
func (s *PostService) GetPostBySlug(ctx context.Context, slug string, viewerID uuid.UUID) (PostView, error) {
	var post *models.BlogPost
	err := s.db.Transaction(ctx, func(tx database.Database) error {
		var err error
		post, err = tx.BlogPostRepo().FindBySlug(ctx, slug)
		if database.IsNotFound(err) {
			return errs.NewNotFound(postEntity)
		}
		if err != nil {
			return errs.NewDatabaseError("load", postEntity, err)
		}

		if err := tx.BlogPostRepo().IncrementViewCount(ctx, post.ID); err != nil {
			return errs.NewDatabaseError("count view of", postEntity, err)
		}
		post.ViewCount++
		return nil
	})
	if err != nil {
		return PostView{}, err
	}
	return newPostView(post, viewerID, s.baseURL), nil
}

// ListPosts returns one page of posts. The total count and the page are
// read concurrently.
func (s *PostService) ListPosts(ctx context.Context, q PostQuery) (paging.Result[PostView], error) {
	req, err := paging.Normalize(q.Page, q.PageSize)
	if err != nil {
		return paging.Result[PostView]{}, err
	}
	order, err := PostSortFields.Scope(q.SortField, sorting.ParseDirection(q.Direction))
	if err != nil {
		return paging.Result[PostView]{}, err
	}

	filter := database.PostFilter{
		CategorySlug:  q.CategorySlug,
		TagSlug:       q.TagSlug,
		PublishedOnly: q.PublishedOnly,
	}

	var (
		total int64
		posts []*models.BlogPost
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.db.BlogPostRepo().Count(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		posts, err = s.db.BlogPostRepo().List(gctx, filter, req.Offset(), req.Limit(), order)
		return err
	})
	if err := g.Wait(); err != nil {
		return paging.Result[PostView]{}, errs.NewDatabaseError("list", "blog posts", err)
	}

	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, newPostView(p, q.ViewerID, s.baseURL))
	}
	return paging.NewResult(views, total, req), nil
}

// ListPostCategories pages through the categories linked to a post.
func (s *PostService) ListPostCategories(ctx context.Context, postID uuid.UUID, page, pageSize int, sortField, direction string) (paging.Result[CategoryView], error) {
	req, err := paging.Normalize(page, pageSize)
	if err != nil {
		return paging.Result[CategoryView]{}, err
	}

	post, err := s.findPost(ctx, postID)
	if err != nil {
		return paging.Result[CategoryView]{}, err
	}

	categories := post.Categories
	if err := CategorySortFields.Sort(categories, sortField, sorting.ParseDirection(direction)); err != nil {
		return paging.Result[CategoryView]{}, err
	}

	items, total := paging.Slice(categories, req)
	return paging.Map(paging.NewResult(items, total, req), newCategoryView), nil
}

// ListPostTags pages through the tags linked to a post.
func (s *PostService) ListPostTags(ctx context.Context, postID uuid.UUID, page, pageSize int, sortField, direction string) (paging.Result[TagView], error) {
	req, err := paging.Normalize(page, pageSize)
	if err != nil {
		return paging.Result[TagView]{}, err
	}

	post, err := s.findPost(ctx, postID)
	if err != nil {
		return paging.Result[TagView]{}, err
	}

	tags := post.Tags
	if err := TagSortFields.Sort(tags, sortField, sorting.ParseDirection(direction)); err != nil {
		return paging.Result[TagView]{}, err
	}

	items, total := paging.Slice(tags, req)
	return paging.Map(paging.NewResult(items, total, req), newTagView), nil
}

// TogglePostLike flips userID's like on a post. It reports false only when
// the post does not exist.
func (s *PostService) TogglePostLike(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, errs.NewMissingRequiredFieldError("userId")
	}

	found, liked, err := s.db.BlogPostRepo().ToggleLike(ctx, postID, userID)
	if err != nil {
		return false, errs.NewDatabaseError("toggle like on", postEntity, err)
	}
	if found {
		s.logger.Debug().Str("postID", postID.String()).Bool("liked", liked).Msg("Toggled post like")
	}
	return found, nil
}

func (s *PostService) findPost(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	post, err := s.db.BlogPostRepo().FindByID(ctx, id)
	if database.IsNotFound(err) {
		return nil, errs.NewNotFound(postEntity)
	}
	if err != nil {
		return nil, errs.NewDatabaseError("load", postEntity, err)
	}
	return post, nil
}

func (s *PostService) freePostSlug(ctx context.Context, tx database.Database, title string, self uuid.UUID) (string, error) {
	base := models.Slugify(title)
	if base == "" {
		base = "post"
	}
	return freeSlug(base, func(candidate string) (bool, error) {
		taken, err := tx.BlogPostRepo().SlugTaken(ctx, candidate, self)
		if err != nil {
			return false, errs.NewDatabaseError("check", "post slug", err)
		}
		return taken, nil
	})
}

// timestamp is the current time at the precision every supported store keeps.
func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
