package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/unified-blog-backend/errs"
	"github.com/rpupo63/unified-blog-backend/services"
)

type blogPostHandler struct {
	responder Responder
	logger    zerolog.Logger
	posts     *services.PostService
}

func newBlogPostHandler(posts *services.PostService) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder: NewResponder(logger),
		logger:    logger,
		posts:     posts,
	}
}

// listBlogPosts returns one page of blog posts
// @Summary List blog posts
// @Description Pages through blog posts, optionally filtered by category or tag slug
// @Tags Blog Posts
// @Produce json
// @Param page query int false "1-based page number"
// @Param pageSize query int false "Items per page"
// @Param sortField query string false "title, slug, authorName, viewCount, published, featured, createdDate, updatedDate"
// @Param direction query string false "asc or desc"
// @Param category query string false "Category slug"
// @Param tag query string false "Tag slug"
// @Param published query bool false "Only published posts"
// @Success 200 {object} paging.Result[services.PostView]
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid paging or sort parameters"
// @Router /blog-posts [get]
func (h blogPostHandler) listBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parseListParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		publishedOnly, err := queryBool(r, "published", false)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		query := r.URL.Query()
		result, err := h.posts.ListPosts(r.Context(), services.PostQuery{
			Page:          params.Page,
			PageSize:      params.PageSize,
			CategorySlug:  query.Get("category"),
			TagSlug:       query.Get("tag"),
			PublishedOnly: publishedOnly,
			SortField:     params.SortField,
			Direction:     params.Direction,
			ViewerID:      viewerID(r.Context()),
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if h.responder.CheckContextTimeout(w, r) {
			return
		}

		h.responder.WriteJSON(w, result)
	}
}

// getBlogPost retrieves a blog post by ID and counts the view
// @Summary Get blog post
// @Tags Blog Posts
// @Produce json
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} services.PostView
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blogPostID"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /blog-post/{blogPostID} [get]
func (h blogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := pathUUID(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.posts.GetPost(r.Context(), blogPostID, viewerID(r.Context()))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// getBlogPostBySlug retrieves a blog post by its slug and counts the view
// @Summary Get blog post by slug
// @Tags Blog Posts
// @Produce json
// @Param slug path string true "Blog post slug"
// @Success 200 {object} services.PostView
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /blog-post/slug/{slug} [get]
func (h blogPostHandler) getBlogPostBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("slug"))
			return
		}

		post, err := h.posts.GetPostBySlug(r.Context(), slug, viewerID(r.Context()))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// createBlogPost creates a blog post authored by the caller
// @Summary Create blog post
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param blogPost body BlogPostPayload true "Blog post data"
// @Success 201 {object} services.PostView
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blog post data"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /blog-post [post]
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		var payload BlogPostPayload
		if err := h.responder.ReadJSON(w, r, "blog post", &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.posts.CreatePost(r.Context(), services.CreatePostRequest{
			Title:         payload.Title,
			Content:       payload.Content,
			Excerpt:       payload.Excerpt,
			FeaturedImage: payload.FeaturedImage,
			Published:     payload.Published,
			Featured:      payload.Featured,
			AuthorID:      authorID,
			AuthorName:    ctxGetUserName(r.Context()),
			CategoryIDs:   payload.CategoryIDs,
			TagNames:      payload.Tags,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("blogPostID", post.ID.String()).Str("slug", post.Slug).Msg("Created blog post")
		h.responder.WriteJSONStatus(w, http.StatusCreated, post)
	}
}

// updateBlogPost replaces the editable fields of a blog post
// @Summary Update blog post
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Param blogPost body BlogPostPayload true "Updated blog post data"
// @Success 200 {object} services.PostView
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blog post data"
// @Failure 403 {object} ErrorResponse "Forbidden - Caller is not the author"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /blog-post/{blogPostID} [put]
func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := pathUUID(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var payload BlogPostPayload
		if err := h.responder.ReadJSON(w, r, "blog post", &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.posts.UpdatePost(r.Context(), blogPostID, viewerID(r.Context()), services.UpdatePostRequest{
			Title:         payload.Title,
			Content:       payload.Content,
			Excerpt:       payload.Excerpt,
			FeaturedImage: payload.FeaturedImage,
			Published:     payload.Published,
			Featured:      payload.Featured,
			CategoryIDs:   payload.CategoryIDs,
			TagNames:      payload.Tags,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// deleteBlogPost removes a blog post with its comments
// @Summary Delete blog post
// @Tags Blog Posts
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse "Forbidden - Caller is not the author"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /blog-post/{blogPostID} [delete]
func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := pathUUID(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		deleted, err := h.posts.DeletePost(r.Context(), blogPostID, viewerID(r.Context()))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFound("blog post"))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// toggleBlogPostLike flips the caller's like on a blog post
// @Summary Toggle blog post like
// @Tags Blog Posts
// @Produce json
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} ToggleResponse
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /blog-post/{blogPostID}/like [post]
func (h blogPostHandler) toggleBlogPostLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := pathUUID(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		ok, err := h.posts.TogglePostLike(r.Context(), blogPostID, viewerID(r.Context()))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if !ok {
			h.responder.WriteError(w, errs.NewNotFound("blog post"))
			return
		}

		h.responder.WriteJSON(w, ToggleResponse{Success: true})
	}
}

// listBlogPostCategories returns one page of a post's categories
// @Summary List blog post categories
// @Tags Blog Posts
// @Produce json
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} paging.Result[services.CategoryView]
// @Router /blog-post/{blogPostID}/categories [get]
func (h blogPostHandler) listBlogPostCategories() http.HandlerFunc {
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

		result, err := h.posts.ListPostCategories(r.Context(), blogPostID, params.Page, params.PageSize, params.SortField, params.Direction)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, result)
	}
}

// listBlogPostTags returns one page of a post's tags
// @Summary List blog post tags
// @Tags Blog Posts
// @Produce json
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} paging.Result[services.TagView]
// @Router /blog-post/{blogPostID}/tags [get]
func (h blogPostHandler) listBlogPostTags() http.HandlerFunc {
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

		result, err := h.posts.ListPostTags(r.Context(), blogPostID, params.Page, params.PageSize, params.SortField, params.Direction)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, result)
	}
}
