package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"giftcertificates/internal/delivery/http/helpers"
	"giftcertificates/internal/domain"
)

// CreateTagRequest is the request body for POST /tags
type CreateTagRequest struct {
	Name string `json:"name"`
}

// Validate implements Validator.
func (c CreateTagRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// TagController handles tag endpoints.
type TagController struct {
	Logger  *slog.Logger
	Service domain.TagService
}

// NewTagController creates a TagController with the given logger and service.
func NewTagController(logger *slog.Logger, svc domain.TagService) *TagController {
	return &TagController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *TagController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrDuplicateName):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "name already in use")
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "tag not found")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// Create godoc
// @Summary Create a tag
// @Description Create a tag with a unique name. Requires Bearer token.
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateTagRequest true "Tag data"
// @Success 201 {object} helpers.APIResponse "data contains the created tag"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tags [post]
func (c *TagController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTagRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	tag, err := c.Service.Create(r.Context(), req.Name)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, tag)
}

// Get godoc
// @Summary Get a tag
// @Description Returns a tag by id, or by name when the name query parameter is used on the collection route.
// @Tags tags
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} helpers.APIResponse "data contains the tag"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tags/{id} [get]
func (c *TagController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid tag id")
		return
	}
	tag, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tag)
}

// GetByName godoc
// @Summary Look up a tag by name
// @Tags tags
// @Produce json
// @Param name query string true "Tag name"
// @Success 200 {object} helpers.APIResponse "data contains the tag"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tags [get]
func (c *TagController) GetByName(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "name query parameter is required")
		return
	}
	tag, err := c.Service.GetByName(r.Context(), name)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tag)
}

// Delete godoc
// @Summary Delete a tag
// @Description Removes the tag and detaches it from every certificate. The certificates remain. Requires Bearer token.
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Success 204 "no content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tags/{id} [delete]
func (c *TagController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid tag id")
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
