package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"tdstrack/internal/domain"
	"tdstrack/internal/port"
)

type registrantRepo struct {
	db *sqlx.DB
}

// NewTdsRegistrantRepo creates a new PostgreSQL-backed TdsRegistrantRepository.
func NewTdsRegistrantRepo(db *sqlx.DB) port.TdsRegistrantRepository {
	return &registrantRepo{db: db}
}

func (r *registrantRepo) Upsert(ctx context.Context, registrant *domain.TdsRegistrant) error {
	now := time.Now().UTC()
	registrant.CreatedAt = now
	registrant.UpdatedAt = now

	query := `INSERT INTO tds_registrants (tds_gstin, legal_name, linked_pan, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tds_gstin) DO UPDATE SET
			legal_name = EXCLUDED.legal_name,
			linked_pan = EXCLUDED.linked_pan,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		registrant.TdsGSTIN, registrant.LegalName, registrant.LinkedPan,
		registrant.CreatedAt, registrant.UpdatedAt)
	if err != nil {
		return fmt.Errorf("registrantRepo.Upsert: %w", err)
	}
	return nil
}

func (r *registrantRepo) GetByGSTIN(ctx context.Context, tdsGstin string) (*domain.TdsRegistrant, error) {
	var registrant domain.TdsRegistrant
	err := r.db.GetContext(ctx, &registrant,
		"SELECT * FROM tds_registrants WHERE tds_gstin = $1", tdsGstin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("registrantRepo.GetByGSTIN: %w", err)
	}
	return &registrant, nil
}

func (r *registrantRepo) ListAll(ctx context.Context) ([]domain.TdsRegistrant, error) {
	var registrants []domain.TdsRegistrant
	err := r.db.SelectContext(ctx, &registrants, "SELECT * FROM tds_registrants ORDER BY tds_gstin")
	if err != nil {
		return nil, fmt.Errorf("registrantRepo.ListAll: %w", err)
	}
	return registrants, nil
}

func (r *registrantRepo) ListByPAN(ctx context.Context, linkedPan string) ([]domain.TdsRegistrant, error) {
	var registrants []domain.TdsRegistrant
	err := r.db.SelectContext(ctx, &registrants,
		"SELECT * FROM tds_registrants WHERE linked_pan = $1 ORDER BY tds_gstin", linkedPan)
	if err != nil {
		return nil, fmt.Errorf("registrantRepo.ListByPAN: %w", err)
	}
	return registrants, nil
}
