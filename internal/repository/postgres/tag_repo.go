package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"giftcertificates/internal/domain"

	"github.com/lib/pq"
)

type tagRepository struct {
	DB *sql.DB
}

// NewTagRepository returns a domain.TagRepository implemented with Postgres.
func NewTagRepository(db *sql.DB) domain.TagRepository {
	return &tagRepository{DB: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	err := r.DB.QueryRowContext(ctx, queryInsertTag, tag.Name).Scan(&tag.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return domain.ErrDuplicateName
		}
		return err
	}
	return nil
}

func (r *tagRepository) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.DB.QueryRowContext(ctx, queryTagByID, id).Scan(&tag.ID, &tag.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.DB.QueryRowContext(ctx, queryTagByName, name).Scan(&tag.ID, &tag.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.DB.ExecContext(ctx, queryDeleteLinksByTag, id); err != nil {
		return err
	}
	result, err := r.DB.ExecContext(ctx, queryDeleteTag, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *tagRepository) ReplaceCertificateTags(ctx context.Context, certificateID int64, tagIDs []int64) error {
	// Validate before touching existing links so a bad id never leaves the
	// certificate with a partially replaced tag set.
	missing, ok, err := r.missingTagID(ctx, tagIDs)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("tag id %d: %w", missing, domain.ErrTagNotFound)
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, queryDeleteLinksByCertificate, certificateID); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx, queryInsertCertificateTag, certificateID, tagID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *tagRepository) TagIDsByCertificateID(ctx context.Context, certificateID int64) ([]int64, error) {
	rows, err := r.DB.QueryContext(ctx, queryTagIDsByCertificate, certificateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *tagRepository) ListTagsByCertificateID(ctx context.Context, certificateID int64) ([]*domain.Tag, error) {
	rows, err := r.DB.QueryContext(ctx, queryTagsByCertificate, certificateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]*domain.Tag, 0)
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}
	return tags, rows.Err()
}

func (r *tagRepository) AllTagsExist(ctx context.Context, tagIDs []int64) (bool, error) {
	_, missing, err := r.missingTagID(ctx, tagIDs)
	if err != nil {
		return false, err
	}
	return !missing, nil
}

// missingTagID returns the first id in tagIDs (input order) that does not
// resolve to a tag row.
func (r *tagRepository) missingTagID(ctx context.Context, tagIDs []int64) (int64, bool, error) {
	if len(tagIDs) == 0 {
		return 0, false, nil
	}
	rows, err := r.DB.QueryContext(ctx, queryTagIDsIn, pq.Array(tagIDs))
	if err != nil {
		return 0, false, err
	}
	defer rows.Close()

	found := make(map[int64]struct{}, len(tagIDs))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, false, err
		}
		found[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return 0, false, err
	}
	for _, id := range tagIDs {
		if _, ok := found[id]; !ok {
			return id, true, nil
		}
	}
	return 0, false, nil
}
