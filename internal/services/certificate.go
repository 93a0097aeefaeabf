package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"giftcertificates/internal/domain"
)

type certificateService struct {
	certRepo domain.CertificateRepository
	tagRepo  domain.TagRepository
}

// NewCertificateService creates a CertificateService over the given repositories.
func NewCertificateService(certRepo domain.CertificateRepository, tagRepo domain.TagRepository) domain.CertificateService {
	return &certificateService{
		certRepo: certRepo,
		tagRepo:  tagRepo,
	}
}

func (s *certificateService) Create(ctx context.Context, c *domain.Certificate, tagIDs []int64) (*domain.Certificate, error) {
	c.Name = strings.TrimSpace(c.Name)
	if err := validateCertificateFields(c.Name, c.Price, c.Duration); err != nil {
		return nil, err
	}
	// Tags are checked before the insert so a bad id rejects the whole create
	// instead of leaving an untagged certificate behind.
	if len(tagIDs) > 0 {
		ok, err := s.tagRepo.AllTagsExist(ctx, tagIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to validate tags: %w", err)
		}
		if !ok {
			return nil, domain.ErrTagNotFound
		}
	}
	if _, err := s.certRepo.GetByName(ctx, c.Name); err == nil {
		return nil, domain.ErrDuplicateName
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check certificate name %q: %w", c.Name, err)
	}
	now := time.Now()
	c.CreateDate = now
	c.LastUpdateDate = now
	if err := s.certRepo.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicateName) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create certificate: %w", err)
	}
	if err := s.tagRepo.ReplaceCertificateTags(ctx, c.ID, tagIDs); err != nil {
		if errors.Is(err, domain.ErrTagNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to set tags for certificate %d: %w", c.ID, err)
	}
	return s.hydrate(ctx, c)
}

func (s *certificateService) GetByID(ctx context.Context, id int64) (*domain.Certificate, error) {
	c, err := s.certRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get certificate %d: %w", id, err)
	}
	return s.hydrate(ctx, c)
}

func (s *certificateService) GetByName(ctx context.Context, name string) (*domain.Certificate, error) {
	c, err := s.certRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get certificate %q: %w", name, err)
	}
	return s.hydrate(ctx, c)
}

func (s *certificateService) List(ctx context.Context) ([]*domain.Certificate, error) {
	certs, err := s.certRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	return s.hydrateAll(ctx, certs)
}

// Filter runs the tag-name / keyword filter pipeline and sorts the result.
//
// Precedence: a supplied tag name selects the certificates joined to that tag
// (an unknown tag name selects nothing, it is not an error). A supplied keyword
// selects certificates whose name or description contains it, case-insensitively.
// When both are supplied the result is their intersection, compared by full
// value equality because the two lists are hydrated independently. When neither
// is supplied the result is empty; the full listing is List, not Filter.
func (s *certificateService) Filter(ctx context.Context, f domain.CertificateFilter) ([]*domain.Certificate, error) {
	tagName := strings.TrimSpace(f.TagName)
	keyword := strings.TrimSpace(f.Keyword)

	result := make([]*domain.Certificate, 0)
	switch {
	case tagName != "":
		tag, err := s.tagRepo.GetByName(ctx, tagName)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("failed to resolve tag %q: %w", tagName, err)
		}
		if err == nil {
			byTag, err := s.certRepo.ListByTagID(ctx, tag.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to list certificates for tag %d: %w", tag.ID, err)
			}
			result, err = s.hydrateAll(ctx, byTag)
			if err != nil {
				return nil, err
			}
		}
		if keyword != "" {
			byKeyword, err := s.searchHydrated(ctx, keyword)
			if err != nil {
				return nil, err
			}
			result = intersectCertificates(result, byKeyword)
		}
	case keyword != "":
		var err error
		result, err = s.searchHydrated(ctx, keyword)
		if err != nil {
			return nil, err
		}
	}
	sortCertificates(result, f.NameOrder, f.DateOrder)
	return result, nil
}

func (s *certificateService) Update(ctx context.Context, id int64, patch *domain.CertificatePatch, tagIDs []int64) (*domain.Certificate, error) {
	if patch == nil {
		patch = &domain.CertificatePatch{}
	}
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	if tagIDs != nil {
		ok, err := s.tagRepo.AllTagsExist(ctx, tagIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to validate tags for certificate %d: %w", id, err)
		}
		if !ok {
			return nil, domain.ErrTagNotFound
		}
	}
	// The repository runs the patch and the tag replace in one transaction, so
	// a rejected patch (duplicate name, missing row) leaves the tag set as it was.
	updated, err := s.certRepo.Update(ctx, id, patch, tagIDs, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrDuplicateName) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update certificate %d: %w", id, err)
	}
	return s.hydrate(ctx, updated)
}

func (s *certificateService) Delete(ctx context.Context, id int64) error {
	if err := s.certRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete certificate %d: %w", id, err)
	}
	return nil
}

func (s *certificateService) hydrate(ctx context.Context, c *domain.Certificate) (*domain.Certificate, error) {
	tags, err := s.tagRepo.ListTagsByCertificateID(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags for certificate %d: %w", c.ID, err)
	}
	c.Tags = tags
	return c, nil
}

func (s *certificateService) hydrateAll(ctx context.Context, certs []*domain.Certificate) ([]*domain.Certificate, error) {
	for _, c := range certs {
		if _, err := s.hydrate(ctx, c); err != nil {
			return nil, err
		}
	}
	return certs, nil
}

func (s *certificateService) searchHydrated(ctx context.Context, keyword string) ([]*domain.Certificate, error) {
	certs, err := s.certRepo.Search(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("failed to search certificates for %q: %w", keyword, err)
	}
	return s.hydrateAll(ctx, certs)
}

// intersectCertificates keeps the elements of a that have a value-equal
// counterpart in b, preserving a's order.
func intersectCertificates(a, b []*domain.Certificate) []*domain.Certificate {
	out := make([]*domain.Certificate, 0, len(a))
	for _, c := range a {
		for _, other := range b {
			if c.Equal(other) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// sortCertificates sorts in place by name, with create date breaking ties among
// equal names. Each key is independently optional and carries its own direction;
// an invalid direction disables that key. With neither key the order is untouched.
func sortCertificates(certs []*domain.Certificate, nameOrder, dateOrder domain.SortOrder) {
	nameOrder = nameOrder.Normalize()
	dateOrder = dateOrder.Normalize()
	if nameOrder == "" && dateOrder == "" {
		return
	}
	sort.SliceStable(certs, func(i, j int) bool {
		a, b := certs[i], certs[j]
		if nameOrder != "" && a.Name != b.Name {
			if nameOrder == domain.SortDesc {
				return a.Name > b.Name
			}
			return a.Name < b.Name
		}
		if dateOrder != "" && !a.CreateDate.Equal(b.CreateDate) {
			if dateOrder == domain.SortDesc {
				return a.CreateDate.After(b.CreateDate)
			}
			return a.CreateDate.Before(b.CreateDate)
		}
		return false
	})
}

func validateCertificateFields(name string, price float64, duration int) error {
	if name == "" {
		return fmt.Errorf("certificate name is required: %w", domain.ErrInvalidInput)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return fmt.Errorf("price must be a finite non-negative number: %w", domain.ErrInvalidInput)
	}
	if duration < 0 {
		return fmt.Errorf("duration must be non-negative: %w", domain.ErrInvalidInput)
	}
	return nil
}

func validatePatch(patch *domain.CertificatePatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return fmt.Errorf("certificate name cannot be empty: %w", domain.ErrInvalidInput)
	}
	if patch.Price != nil && (math.IsNaN(*patch.Price) || math.IsInf(*patch.Price, 0) || *patch.Price < 0) {
		return fmt.Errorf("price must be a finite non-negative number: %w", domain.ErrInvalidInput)
	}
	if patch.Duration != nil && *patch.Duration < 0 {
		return fmt.Errorf("duration must be non-negative: %w", domain.ErrInvalidInput)
	}
	return nil
}
