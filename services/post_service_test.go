package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/unified-blog-backend/database"
	"github.com/rpupo63/unified-blog-backend/errs"
	"github.com/rpupo63/unified-blog-backend/internal/testutil"
	"github.com/rpupo63/unified-blog-backend/models"
)

func newTestPostService(t *testing.T) (*PostService, database.Database) {
	t.Helper()
	db := testutil.NewDB(t)
	return NewPostService(db, NewReconciler(), "https://blog.example"), db
}

func createPost(t *testing.T, svc *PostService, author uuid.UUID, title string, tags ...string) PostView {
	t.Helper()
	post, err := svc.CreatePost(context.Background(), CreatePostRequest{
		Title:      title,
		Content:    "<p>" + title + "</p>",
		Published:  true,
		AuthorID:   author,
		AuthorName: "Author",
		TagNames:   tags,
	})
	require.NoError(t, err)
	return post
}

func tagIDs(tags []TagView) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(tags))
	for _, tag := range tags {
		ids = append(ids, tag.ID)
	}
	return ids
}

func TestCreatePost(t *testing.T) {
	svc, _ := newTestPostService(t)
	author := uuid.New()

	post := createPost(t, svc, author, "Hello, World!")
	assert.Equal(t, "hello-world", post.Slug)
	assert.Equal(t, "https://blog.example/blog/hello-world", post.URL)
	assert.Equal(t, 0, post.NumberOfLikes)
	assert.Equal(t, post.CreatedDate, post.UpdatedDate)
	assert.Empty(t, post.Tags)

	t.Run("duplicate titles get suffixed slugs", func(t *testing.T) {
		second := createPost(t, svc, author, "Hello World")
		third := createPost(t, svc, author, "hello world")
		assert.Equal(t, "hello-world-2", second.Slug)
		assert.Equal(t, "hello-world-3", third.Slug)
	})

	t.Run("title and content are required", func(t *testing.T) {
		_, err := svc.CreatePost(context.Background(), CreatePostRequest{Content: "x", AuthorID: author})
		assert.True(t, errs.IsMissingRequiredFieldError(err))

		_, err = svc.CreatePost(context.Background(), CreatePostRequest{Title: "x", AuthorID: author})
		assert.True(t, errs.IsMissingRequiredFieldError(err))
	})
}

func TestTagReconciliationScenario(t *testing.T) {
	svc, db := newTestPostService(t)
	ctx := context.Background()
	author := uuid.New()

	existing := models.Tag{Name: "ai", Slug: "ai"}
	require.NoError(t, db.TagRepo().Add(ctx, &existing))

	post := createPost(t, svc, author, "Tagged", "ai")
	assert.Equal(t, []uuid.UUID{existing.ID}, tagIDs(post.Tags))

	allTags, err := db.TagRepo().FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, allTags, 1)

	post, err = svc.UpdatePost(ctx, post.ID, author, UpdatePostRequest{
		Title:    "Tagged",
		Content:  "body",
		TagNames: []string{"ai", "new-topic"},
	})
	require.NoError(t, err)
	require.Len(t, post.Tags, 2)
	assert.Contains(t, tagIDs(post.Tags), existing.ID)

	var created TagView
	for _, tag := range post.Tags {
		if tag.Name == "new-topic" {
			created = tag
		}
	}
	assert.Equal(t, "new-topic", created.Slug)

	post, err = svc.UpdatePost(ctx, post.ID, author, UpdatePostRequest{
		Title:    "Tagged",
		Content:  "body",
		TagNames: []string{"new-topic"},
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{created.ID}, tagIDs(post.Tags))

	allTags, err = db.TagRepo().FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, allTags, 2, "dropped tag rows are kept")
}

func TestTagReconciliationCollapsesDuplicates(t *testing.T) {
	svc, db := newTestPostService(t)
	ctx := context.Background()

	post := createPost(t, svc, uuid.New(), "Languages", "Go", "Go", " Rust ", "")

	names := make([]string, 0, len(post.Tags))
	for _, tag := range post.Tags {
		names = append(names, tag.Name)
	}
	assert.ElementsMatch(t, []string{"Go", "Rust"}, names)

	allTags, err := db.TagRepo().FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, allTags, 2)

	t.Run("case variants get distinct slugs", func(t *testing.T) {
		other := createPost(t, svc, uuid.New(), "Lowercase", "go")
		require.Len(t, other.Tags, 1)
		assert.Equal(t, "go-2", other.Tags[0].Slug)
	})
}

func TestCreateTagReusesConcurrentInsert(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	reconciler := NewReconciler()

	// Another writer committed "go" after the reconciler looked it up.
	winner := models.Tag{Name: "go", Slug: "go"}
	require.NoError(t, db.TagRepo().Add(ctx, &winner))

	var got models.Tag
	err := db.Transaction(ctx, func(tx database.Database) error {
		var err error
		got, err = reconciler.createTag(ctx, tx, "go")
		if err != nil {
			return err
		}
		// The transaction stays usable after the conflicting insert.
		_, err = reconciler.createTag(ctx, tx, "rust")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, winner.ID, got.ID)
	assert.Equal(t, "go", got.Slug)

	tags, err := db.TagRepo().FindByNames(ctx, []string{"go", "rust"})
	require.NoError(t, err)
	assert.Len(t, tags, 2)
}

func TestCategoryReconciliation(t *testing.T) {
	svc, db := newTestPostService(t)
	ctx := context.Background()
	taxonomy := NewTaxonomyService(db)
	author := uuid.New()

	engineering, err := taxonomy.CreateCategory(ctx, "Engineering", nil)
	require.NoError(t, err)
	design, err := taxonomy.CreateCategory(ctx, "Design", nil)
	require.NoError(t, err)

	post, err := svc.CreatePost(ctx, CreatePostRequest{
		Title:       "Categorised",
		Content:     "body",
		AuthorID:    author,
		CategoryIDs: []uuid.UUID{engineering.ID, engineering.ID, uuid.New()},
	})
	require.NoError(t, err)
	require.Len(t, post.Categories, 1, "unknown ids are dropped")
	assert.Equal(t, engineering.ID, post.Categories[0].ID)

	post, err = svc.UpdatePost(ctx, post.ID, author, UpdatePostRequest{
		Title:       "Categorised",
		Content:     "body",
		CategoryIDs: []uuid.UUID{design.ID},
	})
	require.NoError(t, err)
	require.Len(t, post.Categories, 1)
	assert.Equal(t, design.ID, post.Categories[0].ID)
}

func TestUpdatePost(t *testing.T) {
	svc, _ := newTestPostService(t)
	ctx := context.Background()
	author := uuid.New()
	post := createPost(t, svc, author, "Original")

	_, err := svc.TogglePostLike(ctx, post.ID, uuid.New())
	require.NoError(t, err)
	_, err = svc.GetPost(ctx, post.ID, uuid.Nil)
	require.NoError(t, err)

	t.Run("non-author is rejected", func(t *testing.T) {
		_, err := svc.UpdatePost(ctx, post.ID, uuid.New(), UpdatePostRequest{Title: "x", Content: "y"})
		assert.True(t, errs.IsForbidden(err))
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := svc.UpdatePost(ctx, uuid.New(), author, UpdatePostRequest{Title: "x", Content: "y"})
		assert.True(t, errs.IsNotFound(err))
	})

	updated, err := svc.UpdatePost(ctx, post.ID, author, UpdatePostRequest{Title: "Renamed", Content: "new body"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Slug)
	assert.Equal(t, "new body", updated.Content)
	assert.Equal(t, 1, updated.NumberOfLikes, "likes survive edits")
	assert.Equal(t, int64(1), updated.ViewCount, "views survive edits")
	assert.True(t, updated.UpdatedDate.After(updated.CreatedDate) || updated.UpdatedDate.Equal(updated.CreatedDate))
}

func TestDeletePost(t *testing.T) {
	svc, db := newTestPostService(t)
	ctx := context.Background()
	comments := NewCommentService(db)
	author := uuid.New()
	post := createPost(t, svc, author, "Doomed", "go")

	root, err := comments.CreateComment(ctx, CreateCommentRequest{PostID: post.ID, AuthorID: uuid.New(), Content: "first"})
	require.NoError(t, err)
	_, err = comments.CreateComment(ctx, CreateCommentRequest{PostID: post.ID, AuthorID: uuid.New(), Content: "reply", ParentCommentID: &root.ID})
	require.NoError(t, err)

	_, err = svc.DeletePost(ctx, post.ID, uuid.New())
	assert.True(t, errs.IsForbidden(err))

	deleted, err := svc.DeletePost(ctx, post.ID, author)
	require.NoError(t, err)
	assert.True(t, deleted)

	count, err := db.CommentRepo().CountByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	tags, err := db.TagRepo().FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1, "tags outlive the post")

	deleted, err = svc.DeletePost(ctx, post.ID, author)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestGetPost(t *testing.T) {
	svc, _ := newTestPostService(t)
	ctx := context.Background()
	post := createPost(t, svc, uuid.New(), "Readable")

	first, err := svc.GetPost(ctx, post.ID, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ViewCount)

	bySlug, err := svc.GetPostBySlug(ctx, "readable", uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), bySlug.ViewCount)

	_, err = svc.GetPost(ctx, uuid.New(), uuid.Nil)
	assert.True(t, errs.IsNotFound(err))

	_, err = svc.GetPostBySlug(ctx, "missing", uuid.Nil)
	assert.True(t, errs.IsNotFound(err))
}

func TestTogglePostLikeScenario(t *testing.T) {
	svc, _ := newTestPostService(t)
	ctx := context.Background()
	post := createPost(t, svc, uuid.New(), "Likeable")
	user := uuid.New()

	ok, err := svc.TogglePostLike(ctx, post.ID, user)
	require.NoError(t, err)
	assert.True(t, ok)

	view, err := svc.GetPost(ctx, post.ID, user)
	require.NoError(t, err)
	assert.Equal(t, 1, view.NumberOfLikes)
	assert.True(t, view.IsLikedByUser)

	anonymous, err := svc.GetPost(ctx, post.ID, uuid.Nil)
	require.NoError(t, err)
	assert.False(t, anonymous.IsLikedByUser)

	ok, err = svc.TogglePostLike(ctx, post.ID, user)
	require.NoError(t, err)
	assert.True(t, ok)

	view, err = svc.GetPost(ctx, post.ID, user)
	require.NoError(t, err)
	assert.Equal(t, 0, view.NumberOfLikes)
	assert.False(t, view.IsLikedByUser)

	ok, err = svc.TogglePostLike(ctx, uuid.New(), user)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListPosts(t *testing.T) {
	svc, db := newTestPostService(t)
	ctx := context.Background()
	author := uuid.New()
	taxonomy := NewTaxonomyService(db)
	category, err := taxonomy.CreateCategory(ctx, "Engineering", nil)
	require.NoError(t, err)

	for _, title := range []string{"Charlie", "alpha", "Bravo"} {
		createPost(t, svc, author, title, "go")
	}
	_, err = svc.CreatePost(ctx, CreatePostRequest{
		Title: "Delta", Content: "body", AuthorID: author, CategoryIDs: []uuid.UUID{category.ID},
	})
	require.NoError(t, err)

	t.Run("sort by title", func(t *testing.T) {
		page, err := svc.ListPosts(ctx, PostQuery{Page: 1, PageSize: 10, SortField: "TITLE", Direction: "asc"})
		require.NoError(t, err)
		titles := make([]string, 0, len(page.Items))
		for _, p := range page.Items {
			titles = append(titles, p.Title)
		}
		assert.Equal(t, []string{"Bravo", "Charlie", "Delta", "alpha"}, titles)
	})

	t.Run("descending", func(t *testing.T) {
		page, err := svc.ListPosts(ctx, PostQuery{Page: 1, PageSize: 1, SortField: "title", Direction: "DESC"})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "alpha", page.Items[0].Title)
		assert.Equal(t, 4, page.TotalPages)
		assert.True(t, page.HasNextPage)
	})

	t.Run("unknown sort field", func(t *testing.T) {
		_, err := svc.ListPosts(ctx, PostQuery{Page: 1, PageSize: 10, SortField: "doesNotExist"})
		assert.True(t, errs.IsInvalidSortFieldError(err))
	})

	t.Run("likes are not sortable", func(t *testing.T) {
		_, err := svc.ListPosts(ctx, PostQuery{Page: 1, PageSize: 10, SortField: "numberOfLikes"})
		assert.True(t, errs.IsInvalidSortFieldError(err))
	})

	t.Run("invalid page size", func(t *testing.T) {
		_, err := svc.ListPosts(ctx, PostQuery{Page: 1, PageSize: 0})
		assert.True(t, errs.IsInvalidPageSizeError(err))
	})

	t.Run("filters", func(t *testing.T) {
		byTag, err := svc.ListPosts(ctx, PostQuery{Page: 1, PageSize: 10, TagSlug: "go"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), byTag.TotalCount)

		byCategory, err := svc.ListPosts(ctx, PostQuery{Page: 1, PageSize: 10, CategorySlug: "engineering"})
		require.NoError(t, err)
		require.Len(t, byCategory.Items, 1)
		assert.Equal(t, "Delta", byCategory.Items[0].Title)

		published, err := svc.ListPosts(ctx, PostQuery{Page: 1, PageSize: 10, PublishedOnly: true})
		require.NoError(t, err)
		assert.Equal(t, int64(3), published.TotalCount)
	})

	t.Run("page beyond the end", func(t *testing.T) {
		page, err := svc.ListPosts(ctx, PostQuery{Page: 9, PageSize: 10})
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, int64(4), page.TotalCount)
		assert.False(t, page.HasNextPage)
		assert.True(t, page.HasPreviousPage)
	})
}

func TestListPostTagsAndCategories(t *testing.T) {
	svc, db := newTestPostService(t)
	ctx := context.Background()
	taxonomy := NewTaxonomyService(db)

	var categoryIDs []uuid.UUID
	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		c, err := taxonomy.CreateCategory(ctx, name, nil)
		require.NoError(t, err)
		categoryIDs = append(categoryIDs, c.ID)
	}

	post, err := svc.CreatePost(ctx, CreatePostRequest{
		Title: "Many", Content: "body", AuthorID: uuid.New(),
		CategoryIDs: categoryIDs,
		TagNames:    []string{"c", "a", "b"},
	})
	require.NoError(t, err)

	tags, err := svc.ListPostTags(ctx, post.ID, 1, 2, "name", "asc")
	require.NoError(t, err)
	require.Len(t, tags.Items, 2)
	assert.Equal(t, "a", tags.Items[0].Name)
	assert.Equal(t, "b", tags.Items[1].Name)
	assert.Equal(t, 2, tags.TotalPages)

	categories, err := svc.ListPostCategories(ctx, post.ID, 1, 10, "name", "desc")
	require.NoError(t, err)
	require.Len(t, categories.Items, 3)
	assert.Equal(t, "Zeta", categories.Items[0].Name)

	_, err = svc.ListPostTags(ctx, post.ID, 1, 10, "color", "")
	assert.True(t, errs.IsInvalidSortFieldError(err))

	_, err = svc.ListPostCategories(ctx, uuid.New(), 1, 10, "", "")
	assert.True(t, errs.IsNotFound(err))
}

func TestListPostsPagesThroughEverything(t *testing.T) {
	svc, _ := newTestPostService(t)
	ctx := context.Background()
	author := uuid.New()
	for i := 0; i < 7; i++ {
		createPost(t, svc, author, fmt.Sprintf("Post %02d", i))
	}

	seen := map[uuid.UUID]bool{}
	for page := 1; page <= 3; page++ {
		result, err := svc.ListPosts(ctx, PostQuery{Page: page, PageSize: 3, SortField: "title"})
		require.NoError(t, err)
		for _, p := range result.Items {
			seen[p.ID] = true
		}
	}
	assert.Len(t, seen, 7)
}
