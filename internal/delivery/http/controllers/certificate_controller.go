package controllers

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"giftcertificates/internal/delivery/http/helpers"
	"giftcertificates/internal/domain"
)

// CreateCertificateRequest is the request body for POST /certificates
type CreateCertificateRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
	TagIDs      []int64 `json:"tag_ids"`
}

// Validate implements Validator.
func (c CreateCertificateRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if math.IsNaN(c.Price) || math.IsInf(c.Price, 0) || c.Price < 0 {
		errs = append(errs, "price must be a non-negative number")
	}
	if c.Duration < 0 {
		errs = append(errs, "duration must be non-negative")
	}
	return errs
}

// UpdateCertificateRequest is the request body for PATCH /certificates/{id}.
// All fields are optional; absent fields keep their stored values. An absent
// tag_ids leaves the tag set untouched, an empty array clears it.
type UpdateCertificateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Duration    *int     `json:"duration"`
	TagIDs      []int64  `json:"tag_ids"`
}

// Validate implements Validator.
func (u UpdateCertificateRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	if u.Price != nil && (math.IsNaN(*u.Price) || math.IsInf(*u.Price, 0) || *u.Price < 0) {
		errs = append(errs, "price must be a non-negative number")
	}
	if u.Duration != nil && *u.Duration < 0 {
		errs = append(errs, "duration must be non-negative")
	}
	return errs
}

// CertificateListResponse is the data payload for paginated certificate listings.
type CertificateListResponse struct {
	Certificates []*domain.Certificate  `json:"certificates"`
	Pagination   helpers.PaginationMeta `json:"pagination"`
}

// CertificateController handles gift certificate endpoints.
type CertificateController struct {
	Logger  *slog.Logger
	Service domain.CertificateService
}

// NewCertificateController creates a CertificateController with the given logger and service.
func NewCertificateController(logger *slog.Logger, svc domain.CertificateService) *CertificateController {
	return &CertificateController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *CertificateController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrTagNotFound):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrDuplicateName):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "name already in use")
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "certificate not found")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// Create godoc
// @Summary Create a gift certificate
// @Description Create a certificate with optional tag associations. Both timestamps are set to the creation instant. Requires Bearer token.
// @Tags certificates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateCertificateRequest true "Certificate data"
// @Success 201 {object} helpers.APIResponse "data contains the created certificate with resolved tags"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /certificates [post]
func (c *CertificateController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCertificateRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	cert := &domain.Certificate{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
	}
	created, err := c.Service.Create(r.Context(), cert, req.TagIDs)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// Get godoc
// @Summary Get a certificate by id
// @Description Returns a single certificate with its tags.
// @Tags certificates
// @Produce json
// @Param id path int true "Certificate ID"
// @Success 200 {object} helpers.APIResponse "data contains the certificate"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /certificates/{id} [get]
func (c *CertificateController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid certificate id")
		return
	}
	cert, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, cert)
}

// List godoc
// @Summary List certificates
// @Description Returns certificates in id order with pagination metadata.
// @Tags certificates
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains certificates and pagination"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /certificates [get]
func (c *CertificateController) List(w http.ResponseWriter, r *http.Request) {
	certs, err := c.Service.List(r.Context())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	p := helpers.ParsePagination(r)
	lo, hi := p.Bounds(len(certs))
	helpers.WriteJSONSuccess(w, http.StatusOK, CertificateListResponse{
		Certificates: certs[lo:hi],
		Pagination:   helpers.NewPaginationMeta(p.Page, p.PageSize, len(certs)),
	})
}

// Search godoc
// @Summary Search certificates
// @Description Filter certificates by tag name and/or a keyword matched against name and description, with optional two-key sorting. With both filters set, only certificates matching both are returned. With neither, the result is empty.
// @Tags certificates
// @Produce json
// @Param tag query string false "Tag name; certificates joined to this tag"
// @Param keyword query string false "Substring matched against name and description"
// @Param name_sort query string false "ASC or DESC by name"
// @Param date_sort query string false "ASC or DESC by create date (tie-break after name)"
// @Success 200 {object} helpers.APIResponse "data contains the matching certificates"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /certificates/search [get]
func (c *CertificateController) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.CertificateFilter{
		TagName:   strings.TrimSpace(q.Get("tag")),
		Keyword:   strings.TrimSpace(q.Get("keyword")),
		NameOrder: domain.SortOrder(q.Get("name_sort")),
		DateOrder: domain.SortOrder(q.Get("date_sort")),
	}
	certs, err := c.Service.Filter(r.Context(), filter)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, certs)
}

// Update godoc
// @Summary Update a certificate
// @Description Patch any subset of name, description, price, and duration. Absent fields keep their stored values. tag_ids, when present, replaces the tag set; an empty array clears it. Requires Bearer token.
// @Tags certificates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Certificate ID"
// @Param body body UpdateCertificateRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated certificate"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /certificates/{id} [patch]
func (c *CertificateController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid certificate id")
		return
	}
	var req UpdateCertificateRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	patch := &domain.CertificatePatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
	}
	updated, err := c.Service.Update(r.Context(), id, patch, req.TagIDs)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a certificate
// @Description Removes the certificate and its tag associations. The tags themselves remain. Requires Bearer token.
// @Tags certificates
// @Produce json
// @Security BearerAuth
// @Param id path int true "Certificate ID"
// @Success 204 "no content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /certificates/{id} [delete]
func (c *CertificateController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid certificate id")
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
