package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/unified-blog-backend/errs"
	"github.com/rpupo63/unified-blog-backend/services"
)

type mediaHandler struct {
	responder Responder
	logger    zerolog.Logger
	media     *services.MediaService
}

func newMediaHandler(media *services.MediaService) mediaHandler {
	logger := log.With().Str("handlerName", "mediaHandler").Logger()

	return mediaHandler{
		responder: NewResponder(logger),
		logger:    logger,
		media:     media,
	}
}

// presignFeaturedImage issues an upload URL for a post's featured image
// @Summary Presign featured image upload
// @Tags Media
// @Accept json
// @Produce json
// @Param image body FeaturedImagePayload true "Image file name and content type"
// @Success 200 {object} services.UploadTicket
// @Failure 415 {object} ErrorResponse "Unsupported Media Type - Not an image"
// @Failure 503 {object} ErrorResponse "Service Unavailable - Uploads are not configured"
// @Router /media/featured-image [post]
func (h mediaHandler) presignFeaturedImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload FeaturedImagePayload
		if err := h.responder.ReadJSON(w, r, "featured image", &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if payload.FileName == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("fileName"))
			return
		}

		ticket, err := h.media.PresignFeaturedImageUpload(r.Context(), viewerID(r.Context()), payload.FileName, payload.ContentType)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, ticket)
	}
}
