package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/unified-blog-backend/services"
)

type taxonomyHandler struct {
	responder Responder
	logger    zerolog.Logger
	taxonomy  *services.TaxonomyService
}

func newTaxonomyHandler(taxonomy *services.TaxonomyService) taxonomyHandler {
	logger := log.With().Str("handlerName", "taxonomyHandler").Logger()

	return taxonomyHandler{
		responder: NewResponder(logger),
		logger:    logger,
		taxonomy:  taxonomy,
	}
}

// listCategories returns a page of categories with their post counts
// @Summary List categories
// @Tags Taxonomy
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} paging.Result[services.CategorySummary]
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid page size"
// @Router /categories [get]
func (h taxonomyHandler) listCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parseListParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		result, err := h.taxonomy.ListCategories(r.Context(), params.Page, params.PageSize)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, result)
	}
}

// listTags returns a page of tags with their post counts
// @Summary List tags
// @Tags Taxonomy
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} paging.Result[services.TagSummary]
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid page size"
// @Router /tags [get]
func (h taxonomyHandler) listTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parseListParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		result, err := h.taxonomy.ListTags(r.Context(), params.Page, params.PageSize)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, result)
	}
}

// createCategory adds a category
// @Summary Create category
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Param category body CategoryPayload true "Category data"
// @Success 201 {object} services.CategoryView
// @Failure 409 {object} ErrorResponse "Conflict - Category already exists"
// @Router /category [post]
func (h taxonomyHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload CategoryPayload
		if err := h.responder.ReadJSON(w, r, "category", &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category, err := h.taxonomy.CreateCategory(r.Context(), payload.Name, payload.Description)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, category)
	}
}
