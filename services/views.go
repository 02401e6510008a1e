package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/rpupo63/unified-blog-backend/models"
)

type CategoryView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
}

// CategorySummary is a category with the number of posts linked to it.
type CategorySummary struct {
	CategoryView
	PostCount int64 `json:"postCount"`
}

type TagView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// TagSummary is a tag with the number of posts linked to it.
type TagSummary struct {
	TagView
	PostCount int64 `json:"postCount"`
}

// PostView is the read model of a post as seen by one viewer.
type PostView struct {
	ID            uuid.UUID      `json:"id"`
	Title         string         `json:"title"`
	Slug          string         `json:"slug"`
	Excerpt       *string        `json:"excerpt,omitempty"`
	Content       string         `json:"content"`
	FeaturedImage *string        `json:"featuredImage,omitempty"`
	Published     bool           `json:"published"`
	Featured      bool           `json:"featured"`
	AuthorID      uuid.UUID      `json:"authorId"`
	AuthorName    string         `json:"authorName"`
	Categories    []CategoryView `json:"categories"`
	Tags          []TagView      `json:"tags"`
	NumberOfLikes int            `json:"numberOfLikes"`
	IsLikedByUser bool           `json:"isLikedByUser"`
	ViewCount     int64          `json:"viewCount"`
	URL           string         `json:"url,omitempty"`
	CreatedDate   time.Time      `json:"createdDate"`
	UpdatedDate   time.Time      `json:"updatedDate"`
}

// CommentView is the read model of a comment as seen by one viewer.
type CommentView struct {
	ID              uuid.UUID  `json:"id"`
	PostID          uuid.UUID  `json:"postId"`
	Content         string     `json:"content"`
	AuthorID        uuid.UUID  `json:"authorId"`
	AuthorName      string     `json:"authorName"`
	ParentCommentID *uuid.UUID `json:"parentCommentId"`
	NumberOfLikes   int        `json:"numberOfLikes"`
	IsLikedByUser   bool       `json:"isLikedByUser"`
	IsEdited        bool       `json:"isEdited"`
	CreatedDate     time.Time  `json:"createdDate"`
	UpdatedDate     time.Time  `json:"updatedDate"`
}

func newCategoryView(c models.Category) CategoryView {
	return CategoryView{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
	}
}

func newTagView(t models.Tag) TagView {
	return TagView{
		ID:   t.ID,
		Name: t.Name,
		Slug: t.Slug,
	}
}

// newPostView builds the read model; viewerID is uuid.Nil for anonymous readers.
func newPostView(p *models.BlogPost, viewerID uuid.UUID, baseURL string) PostView {
	categories := make([]CategoryView, 0, len(p.Categories))
	for _, c := range p.Categories {
		categories = append(categories, newCategoryView(c))
	}
	tags := make([]TagView, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, newTagView(t))
	}

	return PostView{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		Content:       p.Content,
		FeaturedImage: p.FeaturedImage,
		Published:     p.Published,
		Featured:      p.Featured,
		AuthorID:      p.AuthorID,
		AuthorName:    p.AuthorName,
		Categories:    categories,
		Tags:          tags,
		NumberOfLikes: p.NumberOfLikes(),
		IsLikedByUser: viewerID != uuid.Nil && p.LikedBy.Contains(viewerID),
		ViewCount:     p.ViewCount,
		URL:           BuildBlogPostURL(baseURL, p.Slug),
		CreatedDate:   p.DateAdded,
		UpdatedDate:   p.DateEdited,
	}
}

func newCommentView(c *models.Comment, viewerID uuid.UUID) CommentView {
	return CommentView{
		ID:              c.ID,
		PostID:          c.BlogPostID,
		Content:         c.Content,
		AuthorID:        c.AuthorID,
		AuthorName:      c.AuthorName,
		ParentCommentID: c.ParentCommentID,
		NumberOfLikes:   c.NumberOfLikes(),
		IsLikedByUser:   viewerID != uuid.Nil && c.LikedBy.Contains(viewerID),
		IsEdited:        c.IsEdited(),
		CreatedDate:     c.DateAdded,
		UpdatedDate:     c.DateEdited,
	}
}
