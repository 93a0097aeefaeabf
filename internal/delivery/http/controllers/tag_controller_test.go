package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftcertificates/internal/delivery/http/helpers"
	"giftcertificates/internal/domain"
)

// fakeTagService implements domain.TagService for handler tests.
type fakeTagService struct {
	createTag *domain.Tag
	createErr error
	getTag    *domain.Tag
	getErr    error
	deleteErr error
}

func (f *fakeTagService) Create(ctx context.Context, name string) (*domain.Tag, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createTag, nil
}

func (f *fakeTagService) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getTag, nil
}

func (f *fakeTagService) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getTag, nil
}

func (f *fakeTagService) Delete(ctx context.Context, id int64) error {
	return f.deleteErr
}

func (f *fakeTagService) TagIDsForCertificate(ctx context.Context, certificateID int64) ([]int64, error) {
	return nil, nil
}

func TestTagController_Create(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		svc          *fakeTagService
		wantStatus   int
		wantBodyCode string
	}{
		{
			name:       "success",
			body:       `{"name":"red"}`,
			svc:        &fakeTagService{createTag: &domain.Tag{ID: 1, Name: "red"}},
			wantStatus: http.StatusCreated,
		},
		{
			name:         "empty name",
			body:         `{"name":"  "}`,
			svc:          &fakeTagService{},
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "duplicate name",
			body:         `{"name":"red"}`,
			svc:          &fakeTagService{createErr: domain.ErrDuplicateName},
			wantStatus:   http.StatusConflict,
			wantBodyCode: helpers.ErrCodeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := NewTagController(testLogger(), tt.svc)
			req := httptest.NewRequest(http.MethodPost, "http://test/tags", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			controller.Create(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBodyCode != "" {
				envelope := decodeEnvelope(t, rr.Body)
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			}
		})
	}
}

func TestTagController_GetByName(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeTagService{getTag: &domain.Tag{ID: 2, Name: "colour"}}
		controller := NewTagController(testLogger(), svc)
		req := httptest.NewRequest(http.MethodGet, "http://test/tags?name=colour", nil)
		rr := httptest.NewRecorder()

		controller.GetByName(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("missing name parameter", func(t *testing.T) {
		controller := NewTagController(testLogger(), &fakeTagService{})
		req := httptest.NewRequest(http.MethodGet, "http://test/tags", nil)
		rr := httptest.NewRecorder()

		controller.GetByName(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown name", func(t *testing.T) {
		controller := NewTagController(testLogger(), &fakeTagService{getErr: domain.ErrNotFound})
		req := httptest.NewRequest(http.MethodGet, "http://test/tags?name=nope", nil)
		rr := httptest.NewRecorder()

		controller.GetByName(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestTagController_Delete(t *testing.T) {
	t.Run("success returns 204", func(t *testing.T) {
		controller := NewTagController(testLogger(), &fakeTagService{})
		req := httptest.NewRequest(http.MethodDelete, "http://test/tags/1", nil)
		req.SetPathValue("id", "1")
		rr := httptest.NewRecorder()

		controller.Delete(rr, req)

		require.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		controller := NewTagController(testLogger(), &fakeTagService{deleteErr: domain.ErrNotFound})
		req := httptest.NewRequest(http.MethodDelete, "http://test/tags/9", nil)
		req.SetPathValue("id", "9")
		rr := httptest.NewRecorder()

		controller.Delete(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}
