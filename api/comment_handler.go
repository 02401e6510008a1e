package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/unified-blog-backend/errs"
	"github.com/rpupo63/unified-blog-backend/services"
)

type commentHandler struct {
	responder      Responder
	logger         zerolog.Logger
	comments       *services.CommentService
	maxThreadDepth int
}

func newCommentHandler(comments *services.CommentService, maxThreadDepth int) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		comments:       comments,
		maxThreadDepth: maxThreadDepth,
	}
}

// listComments returns one page of a post's comments
// @Summary List comments
// @Description Flat page of comments. With threaded=true the page is also returned grouped by parent.
// @Tags Comments
// @Produce json
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Param page query int false "1-based page number"
// @Param pageSize query int false "Items per page"
// @Param sortField query string false "createdDate, updatedDate, authorName"
// @Param direction query string false "asc or desc"
// @Param threaded query bool false "Group the page by parent"
// @Param maxDepth query int false "Nesting levels shown when threaded"
// @Success 200 {object} CommentPage
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /blog-post/{blogPostID}/comments [get]
func (h commentHandler) listComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := pathUUID(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		params, err := parseListParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		threaded, err := queryBool(r, "threaded", false)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		maxDepth, err := queryInt(r, "maxDepth", h.maxThreadDepth)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		result, err := h.comments.ListComments(r.Context(), services.CommentQuery{
			PostID:    blogPostID,
			Page:      params.Page,
			PageSize:  params.PageSize,
			SortField: params.SortField,
			Direction: params.Direction,
			ViewerID:  viewerID(r.Context()),
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		response := CommentPage{Result: result}
		if threaded {
			response.Threads = services.BuildCommentThreads(result.Items, maxDepth)
		}
		h.responder.WriteJSON(w, response)
	}
}

// createComment adds a comment by the caller to a blog post
// @Summary Create comment
// @Tags Comments
// @Accept json
// @Produce json
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Param comment body CommentPayload true "Comment data"
// @Success 201 {object} services.CommentView
// @Failure 400 {object} ErrorResponse "Bad Request - Empty content or invalid parent"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /blog-post/{blogPostID}/comments [post]
func (h commentHandler) createComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := pathUUID(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var payload CommentPayload
		if err := h.responder.ReadJSON(w, r, "comment", &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comment, err := h.comments.CreateComment(r.Context(), services.CreateCommentRequest{
			PostID:          blogPostID,
			AuthorID:        viewerID(r.Context()),
			AuthorName:      ctxGetUserName(r.Context()),
			Content:         payload.Content,
			ParentCommentID: payload.ParentCommentID,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, comment)
	}
}

// updateComment replaces the content of the caller's comment
// @Summary Update comment
// @Tags Comments
// @Accept json
// @Produce json
// @Param commentID path string true "Comment ID" format(uuid)
// @Param comment body CommentPayload true "New content"
// @Success 200 {object} services.CommentView
// @Failure 403 {object} ErrorResponse "Forbidden - Caller is not the author"
// @Failure 404 {object} ErrorResponse "Not Found - Comment not found"
// @Router /comment/{commentID} [put]
func (h commentHandler) updateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commentID, err := pathUUID(r, "commentID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var payload CommentPayload
		if err := h.responder.ReadJSON(w, r, "comment", &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comment, err := h.comments.UpdateComment(r.Context(), commentID, viewerID(r.Context()), payload.Content)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, comment)
	}
}

// deleteComment removes the caller's comment and every reply below it
// @Summary Delete comment
// @Tags Comments
// @Param commentID path string true "Comment ID" format(uuid)
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse "Forbidden - Caller is not the author"
// @Failure 404 {object} ErrorResponse "Not Found - Comment not found"
// @Router /comment/{commentID} [delete]
func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commentID, err := pathUUID(r, "commentID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		deleted, err := h.comments.DeleteComment(r.Context(), commentID, viewerID(r.Context()))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFound("comment"))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// toggleCommentLike flips the caller's like on a comment
// @Summary Toggle comment like
// @Tags Comments
// @Produce json
// @Param commentID path string true "Comment ID" format(uuid)
// @Success 200 {object} ToggleResponse
// @Failure 404 {object} ErrorResponse "Not Found - Comment not found"
// @Router /comment/{commentID}/like [post]
func (h commentHandler) toggleCommentLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commentID, err := pathUUID(r, "commentID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		ok, err := h.comments.ToggleCommentLike(r.Context(), commentID, viewerID(r.Context()))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if !ok {
			h.responder.WriteError(w, errs.NewNotFound("comment"))
			return
		}

		h.responder.WriteJSON(w, ToggleResponse{Success: true})
	}
}
