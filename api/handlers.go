package api

import (
	"github.com/rpupo63/unified-blog-backend/config"
	"github.com/rpupo63/unified-blog-backend/database"
	"github.com/rpupo63/unified-blog-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, router router) *routeHandlers {
	posts := services.NewPostService(database, services.NewReconciler(), services.GetBaseURL(router.config))
	comments := services.NewCommentService(database)
	maxThreadDepth := config.GetInt(router.config, "MAX_THREAD_DEPTH", services.DefaultMaxThreadDepth)

	return &routeHandlers{
		healthHandler:   newHealthHandler(database, router.startupTime),
		blogPostHandler: newBlogPostHandler(posts),
		commentHandler:  newCommentHandler(comments, maxThreadDepth),
		taxonomyHandler: newTaxonomyHandler(services.NewTaxonomyService(database)),
		mediaHandler:    newMediaHandler(router.media),
	}
}
