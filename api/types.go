package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/rpupo63/unified-blog-backend/paging"
	"github.com/rpupo63/unified-blog-backend/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	healthHandler   healthHandler
	blogPostHandler blogPostHandler
	commentHandler  commentHandler
	taxonomyHandler taxonomyHandler
	mediaHandler    mediaHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// BlogPostPayload is the body of a create or update request. Tags are given
// by name and created on first use.
type BlogPostPayload struct {
	Title         string      `json:"title"`
	Content       string      `json:"content"`
	Excerpt       *string     `json:"excerpt,omitempty"`
	FeaturedImage *string     `json:"featuredImage,omitempty"`
	Published     bool        `json:"published"`
	Featured      bool        `json:"featured"`
	CategoryIDs   []uuid.UUID `json:"categoryIds"`
	Tags          []string    `json:"tags"`
}

type CommentPayload struct {
	Content         string     `json:"content"`
	ParentCommentID *uuid.UUID `json:"parentCommentId,omitempty"`
}

type CategoryPayload struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type FeaturedImagePayload struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

// ToggleResponse reports that a like was flipped.
type ToggleResponse struct {
	Success bool `json:"success"`
}

// CommentPage is one page of comments. Threads is set when the caller asks
// for the page grouped by parent.
type CommentPage struct {
	paging.Result[services.CommentView]
	Threads []*services.CommentNode `json:"threads,omitempty"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	StartedAt time.Time `json:"startedAt"`
	Uptime    string    `json:"uptime"`
}
