package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/unified-blog-backend/paging"
	"github.com/rpupo63/unified-blog-backend/services"
)

func createTestPost(t *testing.T, router http.Handler, authorization string, payload BlogPostPayload) services.PostView {
	t.Helper()
	rec := doRequest(t, router, http.MethodPost, "/blog-post", payload, authorization)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[services.PostView](t, rec)
}

func TestBlogPostLifecycle(t *testing.T) {
	router := newTestRouter(t)
	authorID := uuid.New()
	author := bearer(t, authorID, "Ada")
	reader := bearer(t, uuid.New(), "Grace")

	post := createTestPost(t, router, author, BlogPostPayload{
		Title:   "Hello World",
		Content: "first post",
		Tags:    []string{"go", "web", "go"},
	})
	assert.Equal(t, "hello-world", post.Slug)
	assert.Equal(t, authorID, post.AuthorID)
	assert.Equal(t, "Ada", post.AuthorName)
	assert.Len(t, post.Tags, 2)

	t.Run("get counts the view", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/blog-post/"+post.ID.String(), nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(1), decodeBody[services.PostView](t, rec).ViewCount)
	})

	t.Run("get by slug", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/blog-post/slug/hello-world", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, post.ID, decodeBody[services.PostView](t, rec).ID)
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/blog-post/not-a-uuid", nil, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("like toggles for the caller", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/blog-post/"+post.ID.String()+"/like", nil, reader)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decodeBody[ToggleResponse](t, rec).Success)

		rec = doRequest(t, router, http.MethodGet, "/blog-post/"+post.ID.String(), nil, reader)
		view := decodeBody[services.PostView](t, rec)
		assert.Equal(t, 1, view.NumberOfLikes)
		assert.True(t, view.IsLikedByUser)

		rec = doRequest(t, router, http.MethodGet, "/blog-post/"+post.ID.String(), nil, "")
		assert.False(t, decodeBody[services.PostView](t, rec).IsLikedByUser)

		rec = doRequest(t, router, http.MethodPost, "/blog-post/"+uuid.NewString()+"/like", nil, reader)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("only the author may update", func(t *testing.T) {
		update := BlogPostPayload{Title: "Hello Again", Content: "edited", Tags: []string{"go"}}

		rec := doRequest(t, router, http.MethodPut, "/blog-post/"+post.ID.String(), update, reader)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = doRequest(t, router, http.MethodPut, "/blog-post/"+post.ID.String(), update, author)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		updated := decodeBody[services.PostView](t, rec)
		assert.Equal(t, "hello-again", updated.Slug)
		assert.Equal(t, 1, updated.NumberOfLikes)
		require.Len(t, updated.Tags, 1)
		assert.Equal(t, "go", updated.Tags[0].Name)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPut, "/blog-post/"+post.ID.String(), "not an object", author)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("only the author may delete", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodDelete, "/blog-post/"+post.ID.String(), nil, reader)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = doRequest(t, router, http.MethodDelete, "/blog-post/"+post.ID.String(), nil, author)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = doRequest(t, router, http.MethodGet, "/blog-post/"+post.ID.String(), nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = doRequest(t, router, http.MethodDelete, "/blog-post/"+post.ID.String(), nil, author)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListBlogPosts(t *testing.T) {
	router := newTestRouter(t)
	author := bearer(t, uuid.New(), "Ada")

	for i := 0; i < 3; i++ {
		createTestPost(t, router, author, BlogPostPayload{
			Title:     fmt.Sprintf("Post %d", i),
			Content:   "body",
			Published: i != 1,
			Tags:      []string{"series"},
		})
	}
	createTestPost(t, router, author, BlogPostPayload{Title: "Standalone", Content: "body", Published: true})

	t.Run("pages sorted by title", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/blog-posts?page=1&pageSize=3&sortField=title&direction=desc", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		page := decodeBody[paging.Result[services.PostView]](t, rec)
		assert.Equal(t, int64(4), page.TotalCount)
		assert.Equal(t, 2, page.TotalPages)
		assert.True(t, page.HasNextPage)
		require.Len(t, page.Items, 3)
		assert.Equal(t, "Standalone", page.Items[0].Title)
	})

	t.Run("filters by tag and published", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/blog-posts?tag=series&published=true", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		page := decodeBody[paging.Result[services.PostView]](t, rec)
		assert.Equal(t, int64(2), page.TotalCount)
	})

	t.Run("unknown sort field names the accepted ones", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/blog-posts?sortField=numberOfLikes", nil, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody[ErrorResponse](t, rec)
		assert.Equal(t, "sortField", body.Field)
		assert.Contains(t, body.Details, "valid fields:")
		assert.Contains(t, body.Details, "title")
	})

	tests := []struct {
		name  string
		query string
	}{
		{name: "zero page size", query: "pageSize=0"},
		{name: "page is not a number", query: "page=abc"},
		{name: "likes are not sortable", query: "sortField=numberOfLikes"},
		{name: "published is not a bool", query: "published=maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodGet, "/blog-posts?"+tt.query, nil, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestListBlogPostTaxonomy(t *testing.T) {
	router := newTestRouter(t)
	author := bearer(t, uuid.New(), "Ada")

	rec := doRequest(t, router, http.MethodPost, "/category", CategoryPayload{Name: "Engineering"}, author)
	require.Equal(t, http.StatusCreated, rec.Code)
	category := decodeBody[services.CategoryView](t, rec)

	post := createTestPost(t, router, author, BlogPostPayload{
		Title:       "Tagged",
		Content:     "body",
		CategoryIDs: []uuid.UUID{category.ID, uuid.New()},
		Tags:        []string{"zeta", "alpha", "mid"},
	})
	require.Len(t, post.Categories, 1)

	rec = doRequest(t, router, http.MethodGet, "/blog-post/"+post.ID.String()+"/tags?pageSize=2&sortField=name", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	tags := decodeBody[paging.Result[services.TagView]](t, rec)
	assert.Equal(t, int64(3), tags.TotalCount)
	require.Len(t, tags.Items, 2)
	assert.Equal(t, "alpha", tags.Items[0].Name)
	assert.Equal(t, "mid", tags.Items[1].Name)

	rec = doRequest(t, router, http.MethodGet, "/blog-post/"+post.ID.String()+"/categories", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	categories := decodeBody[paging.Result[services.CategoryView]](t, rec)
	require.Len(t, categories.Items, 1)
	assert.Equal(t, "engineering", categories.Items[0].Slug)

	rec = doRequest(t, router, http.MethodGet, "/blog-post/"+uuid.NewString()+"/tags", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
