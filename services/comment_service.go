package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/unified-blog-backend/database"
	"github.com/rpupo63/unified-blog-backend/errs"
	"github.com/rpupo63/unified-blog-backend/models"
	"github.com/rpupo63/unified-blog-backend/paging"
	"github.com/rpupo63/unified-blog-backend/sorting"
)

const commentEntity = "comment"

type CreateCommentRequest struct {
	PostID          uuid.UUID
	AuthorID        uuid.UUID
	AuthorName      string
	Content         string
	ParentCommentID *uuid.UUID
}

// CommentQuery selects one flat page of a post's comments. An empty
// SortField orders by creation time.
type CommentQuery struct {
	PostID    uuid.UUID
	Page      int
	PageSize  int
	SortField string
	Direction string
	ViewerID  uuid.UUID
}

type CommentService struct {
	db     database.Database
	logger zerolog.Logger
}

func NewCommentService(db database.Database) *CommentService {
	return &CommentService{
		db:     db,
		logger: log.With().Str("service", "comments").Logger(),
	}
}

// CreateComment adds a comment to a post. A parent, when given, must be a
// comment of the same post.
func (s *CommentService) CreateComment(ctx context.Context, req CreateCommentRequest) (CommentView, error) {
	if strings.TrimSpace(req.Content) == "" {
		return CommentView{}, errs.NewMissingRequiredFieldError("content")
	}
	if req.AuthorID == uuid.Nil {
		return CommentView{}, errs.NewMissingRequiredFieldError("authorId")
	}

	var comment *models.Comment
	err := s.db.Transaction(ctx, func(tx database.Database) error {
		exists, err := tx.BlogPostRepo().Exists(ctx, req.PostID)
		if err != nil {
			return errs.NewDatabaseError("load", postEntity, err)
		}
		if !exists {
			return errs.NewNotFound(postEntity)
		}

		if req.ParentCommentID != nil {
			parent, err := tx.CommentRepo().FindByID(ctx, *req.ParentCommentID)
			if database.IsNotFound(err) {
				return errs.NewInvalidParentError("parent comment does not exist")
			}
			if err != nil {
				return errs.NewDatabaseError("load", "parent comment", err)
			}
			if parent.BlogPostID != req.PostID {
				return errs.NewInvalidParentError("parent comment belongs to another post")
			}
		}

		now := timestamp()
		comment = &models.Comment{
			Content:         req.Content,
			AuthorID:        req.AuthorID,
			AuthorName:      req.AuthorName,
			BlogPostID:      req.PostID,
			ParentCommentID: req.ParentCommentID,
			LikedBy:         models.NewLikeSet(),
			DateAdded:       now,
			DateEdited:      now,
		}
		if err := tx.CommentRepo().Add(ctx, comment); err != nil {
			return errs.NewDatabaseError("create", commentEntity, err)
		}
		return nil
	})
	if err != nil {
		return CommentView{}, err
	}

	s.logger.Debug().Str("commentID", comment.ID.String()).Str("postID", req.PostID.String()).Msg("Created comment")
	return newCommentView(comment, req.AuthorID), nil
}

// ListComments returns a flat page of a post's comments. Replies are not
// grouped under their parents; see BuildCommentThreads.
func (s *CommentService) ListComments(ctx context.Context, q CommentQuery) (paging.Result[CommentView], error) {
	req, err := paging.Normalize(q.Page, q.PageSize)
	if err != nil {
		return paging.Result[CommentView]{}, err
	}

	sortField := q.SortField
	if strings.TrimSpace(sortField) == "" {
		sortField = defaultCommentSort
	}
	order, err := CommentSortFields.Scope(sortField, sorting.ParseDirection(q.Direction))
	if err != nil {
		return paging.Result[CommentView]{}, err
	}

	exists, err := s.db.BlogPostRepo().Exists(ctx, q.PostID)
	if err != nil {
		return paging.Result[CommentView]{}, errs.NewDatabaseError("load", postEntity, err)
	}
	if !exists {
		return paging.Result[CommentView]{}, errs.NewNotFound(postEntity)
	}

	total, err := s.db.CommentRepo().CountByPost(ctx, q.PostID)
	if err != nil {
		return paging.Result[CommentView]{}, errs.NewDatabaseError("count", "comments", err)
	}
	comments, err := s.db.CommentRepo().ListByPost(ctx, q.PostID, req.Offset(), req.Limit(), order)
	if err != nil {
		return paging.Result[CommentView]{}, errs.NewDatabaseError("list", "comments", err)
	}

	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, newCommentView(c, q.ViewerID))
	}
	return paging.NewResult(views, total, req), nil
}

// UpdateComment replaces a comment's content. Only its author may do so.
func (s *CommentService) UpdateComment(ctx context.Context, id, authorID uuid.UUID, content string) (CommentView, error) {
	if strings.TrimSpace(content) == "" {
		return CommentView{}, errs.NewMissingRequiredFieldError("content")
	}

	var comment *models.Comment
	err := s.db.Transaction(ctx, func(tx database.Database) error {
		var err error
		comment, err = tx.CommentRepo().FindByID(ctx, id)
		if database.IsNotFound(err) {
			return errs.NewNotFound(commentEntity)
		}
		if err != nil {
			return errs.NewDatabaseError("load", commentEntity, err)
		}
		if comment.AuthorID != authorID {
			return errs.NewNotAuthorError(commentEntity)
		}

		// an edit must never carry the creation time
		editedAt := timestamp()
		if !editedAt.After(comment.DateAdded) {
			editedAt = comment.DateAdded.Add(time.Microsecond)
		}
		if err := tx.CommentRepo().UpdateContent(ctx, id, content, editedAt); err != nil {
			return errs.NewDatabaseError("update", commentEntity, err)
		}
		comment.Content = content
		comment.DateEdited = editedAt
		return nil
	})
	if err != nil {
		return CommentView{}, err
	}
	return newCommentView(comment, authorID), nil
}

// DeleteComment removes a comment owned by actorID together with every reply
// below it. It reports false when the comment does not exist.
func (s *CommentService) DeleteComment(ctx context.Context, id, actorID uuid.UUID) (bool, error) {
	found := false
	err := s.db.Transaction(ctx, func(tx database.Database) error {
		comment, err := tx.CommentRepo().FindByID(ctx, id)
		if database.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return errs.NewDatabaseError("load", commentEntity, err)
		}
		if comment.AuthorID != actorID {
			return errs.NewNotAuthorError(commentEntity)
		}

		links, err := tx.CommentRepo().ParentLinks(ctx, comment.BlogPostID)
		if err != nil {
			return errs.NewDatabaseError("load", "comment replies", err)
		}
		subtree := collectSubtree(comment.ID, links)

		removed, err := tx.CommentRepo().DeleteByIDs(ctx, subtree)
		if err != nil {
			return errs.NewDatabaseError("delete", commentEntity, err)
		}

		found = true
		s.logger.Debug().Str("commentID", id.String()).Int64("removed", removed).Msg("Deleted comment thread")
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// ToggleCommentLike flips userID's like on a comment. It reports false only
// when the comment does not exist.
func (s *CommentService) ToggleCommentLike(ctx context.Context, commentID, userID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, errs.NewMissingRequiredFieldError("userId")
	}

	found, liked, err := s.db.CommentRepo().ToggleLike(ctx, commentID, userID)
	if err != nil {
		return false, errs.NewDatabaseError("toggle like on", commentEntity, err)
	}
	if found {
		s.logger.Debug().Str("commentID", commentID.String()).Bool("liked", liked).Msg("Toggled comment like")
	}
	return found, nil
}

// collectSubtree returns root and every comment that descends from it,
// breadth first.
func collectSubtree(root uuid.UUID, links []models.Comment) []uuid.UUID {
	children := make(map[uuid.UUID][]uuid.UUID)
	for _, c := range links {
		if c.ParentCommentID != nil {
			children[*c.ParentCommentID] = append(children[*c.ParentCommentID], c.ID)
		}
	}

	seen := map[uuid.UUID]bool{root: true}
	queue := []uuid.UUID{root}
	for i := 0; i < len(queue); i++ {
		for _, child := range children[queue[i]] {
			if !seen[child] {
				seen[child] = true
				queue = append(queue, child)
			}
		}
	}
	return queue
}
