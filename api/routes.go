package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// setupFrontendRoutes registers every route. Reads accept an optional bearer
// token; writes require one.
func setupFrontendRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(HTTPLoggingMiddleware(log.Logger))
		r.Use(authMiddleware.identify)

		r.Get("/health", handlers.healthHandler.getHealth())

		// Blog Post Handler endpoints
		r.Get("/blog-posts", handlers.blogPostHandler.listBlogPosts())
		r.Get("/blog-post/slug/{slug}", handlers.blogPostHandler.getBlogPostBySlug())
		r.Get("/blog-post/{blogPostID}", handlers.blogPostHandler.getBlogPost())
		r.Get("/blog-post/{blogPostID}/categories", handlers.blogPostHandler.listBlogPostCategories())
		r.Get("/blog-post/{blogPostID}/tags", handlers.blogPostHandler.listBlogPostTags())

		// Comment Handler endpoints
		r.Get("/blog-post/{blogPostID}/comments", handlers.commentHandler.listComments())

		// Taxonomy Handler endpoints
		r.Get("/categories", handlers.taxonomyHandler.listCategories())
		r.Get("/tags", handlers.taxonomyHandler.listTags())

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Post("/blog-post", handlers.blogPostHandler.createBlogPost())
			r.Put("/blog-post/{blogPostID}", handlers.blogPostHandler.updateBlogPost())
			r.Delete("/blog-post/{blogPostID}", handlers.blogPostHandler.deleteBlogPost())
			r.Post("/blog-post/{blogPostID}/like", handlers.blogPostHandler.toggleBlogPostLike())

			r.Post("/blog-post/{blogPostID}/comments", handlers.commentHandler.createComment())
			r.Put("/comment/{commentID}", handlers.commentHandler.updateComment())
			r.Delete("/comment/{commentID}", handlers.commentHandler.deleteComment())
			r.Post("/comment/{commentID}/like", handlers.commentHandler.toggleCommentLike())

			r.Post("/category", handlers.taxonomyHandler.createCategory())

			r.Post("/media/featured-image", handlers.mediaHandler.presignFeaturedImage())
		})
	})
}
