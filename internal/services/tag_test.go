package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftcertificates/internal/domain"
)

func TestTagService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("trims whitespace and assigns an id", func(t *testing.T) {
		svc := NewTagService(newFakeTagRepo())
		tag, err := svc.Create(ctx, "  red  ")
		require.NoError(t, err)
		assert.Equal(t, "red", tag.Name)
		assert.NotZero(t, tag.ID)
	})

	t.Run("empty name is invalid", func(t *testing.T) {
		svc := NewTagService(newFakeTagRepo())
		_, err := svc.Create(ctx, "   ")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("duplicate name is refused", func(t *testing.T) {
		svc := NewTagService(newFakeTagRepo())
		_, err := svc.Create(ctx, "red")
		require.NoError(t, err)
		_, err = svc.Create(ctx, "red")
		require.ErrorIs(t, err, domain.ErrDuplicateName)
	})
}

func TestTagService_GetByName(t *testing.T) {
	ctx := context.Background()
	svc := NewTagService(newFakeTagRepo())
	created, err := svc.Create(ctx, "colour")
	require.NoError(t, err)

	got, err := svc.GetByName(ctx, "colour")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetByName(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTagService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := NewTagService(newFakeTagRepo())
	created, err := svc.Create(ctx, "red")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, created.ID), domain.ErrNotFound)
}

func TestTagService_TagIDsForCertificate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeTagRepo()
	svc := NewTagService(repo)
	red, err := svc.Create(ctx, "red")
	require.NoError(t, err)
	blue, err := svc.Create(ctx, "blue")
	require.NoError(t, err)
	require.NoError(t, repo.ReplaceCertificateTags(ctx, 7, []int64{blue.ID, red.ID, red.ID}))

	ids, err := svc.TagIDsForCertificate(ctx, 7)
	require.NoError(t, err)
	// duplicates collapse, ascending order
	assert.Equal(t, []int64{red.ID, blue.ID}, ids)

	ids, err = svc.TagIDsForCertificate(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
