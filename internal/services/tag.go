package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"giftcertificates/internal/domain"
)

type tagService struct {
	tagRepo domain.TagRepository
}

// NewTagService creates a TagService over the given repository.
func NewTagService(tagRepo domain.TagRepository) domain.TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) Create(ctx context.Context, name string) (*domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("tag name is required: %w", domain.ErrInvalidInput)
	}
	if _, err := s.tagRepo.GetByName(ctx, name); err == nil {
		return nil, domain.ErrDuplicateName
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check tag name %q: %w", name, err)
	}
	tag := &domain.Tag{Name: name}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		if errors.Is(err, domain.ErrDuplicateName) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create tag %q: %w", name, err)
	}
	return tag, nil
}

func (s *tagService) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get tag %d: %w", id, err)
	}
	return tag, nil
}

func (s *tagService) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	tag, err := s.tagRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get tag %q: %w", name, err)
	}
	return tag, nil
}

func (s *tagService) Delete(ctx context.Context, id int64) error {
	if err := s.tagRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete tag %d: %w", id, err)
	}
	return nil
}

func (s *tagService) TagIDsForCertificate(ctx context.Context, certificateID int64) ([]int64, error) {
	ids, err := s.tagRepo.TagIDsByCertificateID(ctx, certificateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tag ids for certificate %d: %w", certificateID, err)
	}
	return ids, nil
}
