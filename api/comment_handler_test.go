package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/unified-blog-backend/paging"
	"github.com/rpupo63/unified-blog-backend/services"
)

func TestCommentRoutes(t *testing.T) {
	router := newTestRouter(t)
	author := bearer(t, uuid.New(), "Ada")
	commenterID := uuid.New()
	commenter := bearer(t, commenterID, "Linus")

	post := createTestPost(t, router, author, BlogPostPayload{Title: "Discuss", Content: "body"})
	commentsPath := "/blog-post/" + post.ID.String() + "/comments"

	create := func(t *testing.T, payload CommentPayload) services.CommentView {
		t.Helper()
		rec := doRequest(t, router, http.MethodPost, commentsPath, payload, commenter)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		return decodeBody[services.CommentView](t, rec)
	}

	root := create(t, CommentPayload{Content: "first"})
	assert.Equal(t, commenterID, root.AuthorID)
	assert.Equal(t, "Linus", root.AuthorName)
	child := create(t, CommentPayload{Content: "reply", ParentCommentID: &root.ID})
	grandchild := create(t, CommentPayload{Content: "deeper", ParentCommentID: &child.ID})

	t.Run("flat page", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, commentsPath, nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		page := decodeBody[CommentPage](t, rec)
		assert.Equal(t, int64(3), page.TotalCount)
		assert.Len(t, page.Items, 3)
		assert.Empty(t, page.Threads)
	})

	t.Run("threaded page folds below the configured depth", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, commentsPath+"?threaded=true", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		page := decodeBody[CommentPage](t, rec)
		require.Len(t, page.Threads, 1)
		assert.Equal(t, root.ID, page.Threads[0].ID)
		require.Len(t, page.Threads[0].Replies, 2)
		assert.Equal(t, child.ID, page.Threads[0].Replies[0].ID)
		assert.Equal(t, grandchild.ID, page.Threads[0].Replies[1].ID)
	})

	t.Run("threaded page with a deeper limit", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, commentsPath+"?threaded=true&maxDepth=5", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		page := decodeBody[CommentPage](t, rec)
		require.Len(t, page.Threads, 1)
		require.Len(t, page.Threads[0].Replies, 1)
		require.Len(t, page.Threads[0].Replies[0].Replies, 1)
		assert.Equal(t, 2, page.Threads[0].Replies[0].Replies[0].Depth)
	})

	t.Run("parent from another post", func(t *testing.T) {
		other := createTestPost(t, router, author, BlogPostPayload{Title: "Other", Content: "body"})
		rec := doRequest(t, router, http.MethodPost, "/blog-post/"+other.ID.String()+"/comments",
			CommentPayload{Content: "misplaced", ParentCommentID: &root.ID}, commenter)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "parentCommentId", decodeBody[ErrorResponse](t, rec).Field)
	})

	t.Run("comments on a missing post", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/blog-post/"+uuid.NewString()+"/comments", nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("edit by the author", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPut, "/comment/"+child.ID.String(), CommentPayload{Content: "hijack"}, author)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = doRequest(t, router, http.MethodPut, "/comment/"+child.ID.String(), CommentPayload{Content: "edited reply"}, commenter)
		require.Equal(t, http.StatusOK, rec.Code)
		edited := decodeBody[services.CommentView](t, rec)
		assert.Equal(t, "edited reply", edited.Content)
		assert.True(t, edited.IsEdited)
	})

	t.Run("like", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/comment/"+root.ID.String()+"/like", nil, author)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(t, router, http.MethodGet, commentsPath, nil, author)
		page := decodeBody[CommentPage](t, rec)
		for _, c := range page.Items {
			if c.ID == root.ID {
				assert.Equal(t, 1, c.NumberOfLikes)
				assert.True(t, c.IsLikedByUser)
			}
		}

		rec = doRequest(t, router, http.MethodPost, "/comment/"+uuid.NewString()+"/like", nil, author)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete removes the thread", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodDelete, "/comment/"+root.ID.String(), nil, author)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = doRequest(t, router, http.MethodDelete, "/comment/"+root.ID.String(), nil, commenter)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doRequest(t, router, http.MethodGet, commentsPath, nil, "")
		assert.Equal(t, int64(0), decodeBody[CommentPage](t, rec).TotalCount)

		rec = doRequest(t, router, http.MethodDelete, "/comment/"+root.ID.String(), nil, commenter)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestTaxonomyRoutes(t *testing.T) {
	router := newTestRouter(t)
	author := bearer(t, uuid.New(), "Ada")
	description := "Posts about building things"

	rec := doRequest(t, router, http.MethodPost, "/category", CategoryPayload{Name: "Engineering", Description: &description}, author)
	require.Equal(t, http.StatusCreated, rec.Code)
	category := decodeBody[services.CategoryView](t, rec)
	assert.Equal(t, "engineering", category.Slug)

	rec = doRequest(t, router, http.MethodPost, "/category", CategoryPayload{Name: "Engineering"}, author)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/category", CategoryPayload{Name: "Anything"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	createTestPost(t, router, author, BlogPostPayload{
		Title:       "Counted",
		Content:     "body",
		CategoryIDs: []uuid.UUID{category.ID},
		Tags:        []string{"go"},
	})

	rec = doRequest(t, router, http.MethodGet, "/categories", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	categories := decodeBody[paging.Result[services.CategorySummary]](t, rec)
	assert.Equal(t, int64(1), categories.TotalCount)
	assert.Equal(t, 1, categories.CurrentPage)
	assert.Equal(t, defaultPageSize, categories.PageSize)
	require.Len(t, categories.Items, 1)
	assert.Equal(t, int64(1), categories.Items[0].PostCount)

	rec = doRequest(t, router, http.MethodGet, "/tags", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	tags := decodeBody[paging.Result[services.TagSummary]](t, rec)
	assert.Equal(t, int64(1), tags.TotalCount)
	assert.Equal(t, 1, tags.TotalPages)
	require.Len(t, tags.Items, 1)
	assert.Equal(t, "go", tags.Items[0].Slug)
	assert.Equal(t, int64(1), tags.Items[0].PostCount)

	rec = doRequest(t, router, http.MethodGet, "/tags?pageSize=0", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPresignFeaturedImage_Unconfigured(t *testing.T) {
	router := newTestRouter(t)
	author := bearer(t, uuid.New(), "Ada")

	rec := doRequest(t, router, http.MethodPost, "/media/featured-image", FeaturedImagePayload{FileName: "cover.png", ContentType: "image/png"}, author)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/media/featured-image", FeaturedImagePayload{ContentType: "image/png"}, author)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
