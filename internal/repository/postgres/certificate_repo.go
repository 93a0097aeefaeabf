package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"giftcertificates/internal/domain"

	"github.com/lib/pq"
)

type certificateRepository struct {
	DB *sql.DB
}

// NewCertificateRepository returns a domain.CertificateRepository implemented with Postgres.
func NewCertificateRepository(db *sql.DB) domain.CertificateRepository {
	return &certificateRepository{DB: db}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCertificate decodes one row in certificateColumns order.
func scanCertificate(s rowScanner) (*domain.Certificate, error) {
	c := &domain.Certificate{}
	err := s.Scan(&c.ID, &c.Name, &c.Description, &c.Price, &c.Duration, &c.CreateDate, &c.LastUpdateDate)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *certificateRepository) Create(ctx context.Context, c *domain.Certificate) error {
	err := r.DB.QueryRowContext(ctx, queryInsertCertificate,
		c.Name, c.Description, c.Price, c.Duration, c.CreateDate, c.LastUpdateDate,
	).Scan(&c.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return domain.ErrDuplicateName
		}
		return err
	}
	return nil
}

func (r *certificateRepository) GetByID(ctx context.Context, id int64) (*domain.Certificate, error) {
	c, err := scanCertificate(r.DB.QueryRowContext(ctx, queryCertificateByID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *certificateRepository) GetByName(ctx context.Context, name string) (*domain.Certificate, error) {
	c, err := scanCertificate(r.DB.QueryRowContext(ctx, queryCertificateByName, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *certificateRepository) List(ctx context.Context) ([]*domain.Certificate, error) {
	return r.queryCertificates(ctx, queryListCertificates)
}

func (r *certificateRepository) ListByTagID(ctx context.Context, tagID int64) ([]*domain.Certificate, error) {
	return r.queryCertificates(ctx, queryCertificatesByTagID, tagID)
}

func (r *certificateRepository) Search(ctx context.Context, keyword string) ([]*domain.Certificate, error) {
	return r.queryCertificates(ctx, querySearchCertificates, keyword)
}

func (r *certificateRepository) queryCertificates(ctx context.Context, query string, args ...any) ([]*domain.Certificate, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	certs := make([]*domain.Certificate, 0)
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, err
		}
		certs = append(certs, c)
	}
	return certs, rows.Err()
}

// Update patches the row and, when tagIDs is non-nil, replaces the join rows,
// all inside one transaction. A failure anywhere rolls back everything, so a
// rejected patch never leaves a half-replaced tag set behind.
func (r *certificateRepository) Update(ctx context.Context, id int64, patch *domain.CertificatePatch, tagIDs []int64, updatedAt time.Time) (*domain.Certificate, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	c, err := scanCertificate(tx.QueryRowContext(ctx, queryUpdateCertificate,
		id, patch.Name, patch.Description, patch.Price, patch.Duration, updatedAt,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return nil, domain.ErrDuplicateName
		}
		return nil, err
	}
	if tagIDs != nil {
		if _, err := tx.ExecContext(ctx, queryDeleteLinksByCertificate, id); err != nil {
			return nil, err
		}
		for _, tagID := range tagIDs {
			if _, err := tx.ExecContext(ctx, queryInsertCertificateTag, id, tagID); err != nil {
				return nil, err
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *certificateRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.DB.ExecContext(ctx, queryDeleteLinksByCertificate, id); err != nil {
		return err
	}
	result, err := r.DB.ExecContext(ctx, queryDeleteCertificate, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
