package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rpupo63/unified-blog-backend/errs"
)

const defaultPageSize = 10

// pathUUID parses the named route parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, errs.NewMissingRequiredFieldError(name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError(name, "must be a UUID")
	}
	return id, nil
}

func queryInt(r *http.Request, key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewInvalidFieldError(key, "must be an integer")
	}
	return value, nil
}

func queryBool(r *http.Request, key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errs.NewInvalidFieldError(key, "must be true or false")
	}
	return value, nil
}

// listParams are the paging and ordering query parameters shared by every
// listing route.
type listParams struct {
	Page      int
	PageSize  int
	SortField string
	Direction string
}

func parseListParams(r *http.Request) (listParams, error) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		return listParams{}, err
	}
	pageSize, err := queryInt(r, "pageSize", defaultPageSize)
	if err != nil {
		return listParams{}, err
	}
	q := r.URL.Query()
	return listParams{
		Page:      page,
		PageSize:  pageSize,
		SortField: q.Get("sortField"),
		Direction: q.Get("direction"),
	}, nil
}
