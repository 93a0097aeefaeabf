package domain

import (
	"context"
	"time"
)

// Certificate represents a gift certificate with its resolved tag list.
// swagger:model Certificate
type Certificate struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	Duration       int       `json:"duration"`
	CreateDate     time.Time `json:"create_date"`
	LastUpdateDate time.Time `json:"last_update_date"`
	Tags           []*Tag    `json:"tags"`
}

// NewCertificate returns a new Certificate with the given fields. ID is set by
// the repository on create; both timestamps are stamped identically at creation.
func NewCertificate(name, description string, price float64, duration int, createDate time.Time) *Certificate {
	return &Certificate{
		Name:           name,
		Description:    description,
		Price:          price,
		Duration:       duration,
		CreateDate:     createDate,
		LastUpdateDate: createDate,
	}
}

// Equal reports full value equality over all fields including the resolved tag
// list. Filter intersection relies on this rather than on IDs because the two
// source lists are rehydrated independently.
func (c *Certificate) Equal(other *Certificate) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.ID != other.ID ||
		c.Name != other.Name ||
		c.Description != other.Description ||
		c.Price != other.Price ||
		c.Duration != other.Duration ||
		!c.CreateDate.Equal(other.CreateDate) ||
		!c.LastUpdateDate.Equal(other.LastUpdateDate) {
		return false
	}
	if len(c.Tags) != len(other.Tags) {
		return false
	}
	for i, tag := range c.Tags {
		if tag.ID != other.Tags[i].ID || tag.Name != other.Tags[i].Name {
			return false
		}
	}
	return true
}

// CertificatePatch carries the updatable certificate fields. A nil field leaves
// the stored value unchanged (COALESCE semantics).
type CertificatePatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Duration    *int     `json:"duration"`
}

// SortOrder is a sort direction for certificate listings.
type SortOrder string

// Valid sort directions. Anything else is ignored by the sorter.
const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// Normalize maps the order to its canonical form, case-insensitively.
// Invalid values normalize to the empty order, which the sorter skips.
func (o SortOrder) Normalize() SortOrder {
	switch o {
	case SortAsc, SortDesc:
		return o
	case "asc", "Asc":
		return SortAsc
	case "desc", "Desc":
		return SortDesc
	default:
		return ""
	}
}

// CertificateFilter is the input to the filter pipeline. TagName and Keyword
// are independent filters; empty strings mean "not supplied".
type CertificateFilter struct {
	TagName   string
	Keyword   string
	NameOrder SortOrder
	DateOrder SortOrder
}

// CertificateRepository defines storage for certificates.
type CertificateRepository interface {
	Create(ctx context.Context, c *Certificate) error
	GetByID(ctx context.Context, id int64) (*Certificate, error)
	GetByName(ctx context.Context, name string) (*Certificate, error)
	List(ctx context.Context) ([]*Certificate, error)
	// ListByTagID returns the certificates joined to a tag, certificate id ascending.
	ListByTagID(ctx context.Context, tagID int64) ([]*Certificate, error)
	// Search returns certificates whose name or description contains the keyword,
	// case-insensitively.
	Search(ctx context.Context, keyword string) ([]*Certificate, error)
	// Update applies the non-nil patch fields, refreshes last_update_date, and,
	// when tagIDs is non-nil, replaces the tag links, all in one transaction.
	Update(ctx context.Context, id int64, patch *CertificatePatch, tagIDs []int64, updatedAt time.Time) (*Certificate, error)
	// Delete removes the certificate's join rows first, then the certificate row.
	Delete(ctx context.Context, id int64) error
}

// CertificateService exposes certificate CRUD and filtering to the delivery
// layer. Returned certificates always carry their resolved tag list.
type CertificateService interface {
	Create(ctx context.Context, c *Certificate, tagIDs []int64) (*Certificate, error)
	GetByID(ctx context.Context, id int64) (*Certificate, error)
	GetByName(ctx context.Context, name string) (*Certificate, error)
	List(ctx context.Context) ([]*Certificate, error)
	Filter(ctx context.Context, f CertificateFilter) ([]*Certificate, error)
	// Update applies the patch and, when tagIDs is non-nil, replaces the tag set.
	Update(ctx context.Context, id int64, patch *CertificatePatch, tagIDs []int64) (*Certificate, error)
	Delete(ctx context.Context, id int64) error
}
