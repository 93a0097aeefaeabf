package domain

import "context"

// Tag represents a named tag attached to gift certificates.
// swagger:model Tag
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TagRepository defines storage for tags and the certificate–tag join table.
type TagRepository interface {
	Create(ctx context.Context, tag *Tag) error
	GetByID(ctx context.Context, id int64) (*Tag, error)
	GetByName(ctx context.Context, name string) (*Tag, error)
	// Delete removes the tag's join rows first, then the tag row.
	// Certificates that held the tag keep existing without it.
	Delete(ctx context.Context, id int64) error

	// ReplaceCertificateTags replaces all tag links for the given certificate
	// with the given tag IDs as one atomic operation. Every tag ID is verified
	// to exist before any existing link is removed; a missing ID aborts the
	// whole replace with an error wrapping ErrTagNotFound.
	ReplaceCertificateTags(ctx context.Context, certificateID int64, tagIDs []int64) error
	// TagIDsByCertificateID returns the IDs joined to a certificate, tag id
	// ascending. Empty slice if none.
	TagIDsByCertificateID(ctx context.Context, certificateID int64) ([]int64, error)
	// ListTagsByCertificateID resolves the certificate's joined tags. IDs that
	// no longer resolve drop out silently.
	ListTagsByCertificateID(ctx context.Context, certificateID int64) ([]*Tag, error)
	// AllTagsExist reports whether every candidate tag ID resolves.
	AllTagsExist(ctx context.Context, tagIDs []int64) (bool, error)
}

// TagService exposes tag CRUD to the delivery layer.
type TagService interface {
	Create(ctx context.Context, name string) (*Tag, error)
	GetByID(ctx context.Context, id int64) (*Tag, error)
	GetByName(ctx context.Context, name string) (*Tag, error)
	Delete(ctx context.Context, id int64) error
	TagIDsForCertificate(ctx context.Context, certificateID int64) ([]int64, error)
}
