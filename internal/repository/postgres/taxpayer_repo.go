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

type taxpayerRepo struct {
	db *sqlx.DB
}

// NewTaxpayerRepo creates a new PostgreSQL-backed TaxpayerRepository.
func NewTaxpayerRepo(db *sqlx.DB) port.TaxpayerRepository {
	return &taxpayerRepo{db: db}
}

func (r *taxpayerRepo) Upsert(ctx context.Context, taxpayer *domain.Taxpayer) error {
	now := time.Now().UTC()
	taxpayer.CreatedAt = now
	taxpayer.UpdatedAt = now

	query := `INSERT INTO taxpayers (gstin, legal_name, pan_number, state_code, entity_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (gstin) DO UPDATE SET
			legal_name = EXCLUDED.legal_name,
			pan_number = EXCLUDED.pan_number,
			state_code = EXCLUDED.state_code,
			entity_type = EXCLUDED.entity_type,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		taxpayer.GSTIN, taxpayer.LegalName, taxpayer.PANNumber,
		taxpayer.StateCode, taxpayer.EntityType, taxpayer.CreatedAt, taxpayer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("taxpayerRepo.Upsert: %w", err)
	}
	return nil
}

func (r *taxpayerRepo) GetByGSTIN(ctx context.Context, gstin string) (*domain.Taxpayer, error) {
	var taxpayer domain.Taxpayer
	err := r.db.GetContext(ctx, &taxpayer, "SELECT * FROM taxpayers WHERE gstin = $1", gstin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("taxpayerRepo.GetByGSTIN: %w", err)
	}
	return &taxpayer, nil
}

func (r *taxpayerRepo) ListAll(ctx context.Context) ([]domain.Taxpayer, error) {
	var taxpayers []domain.Taxpayer
	err := r.db.SelectContext(ctx, &taxpayers, "SELECT * FROM taxpayers ORDER BY gstin")
	if err != nil {
		return nil, fmt.Errorf("taxpayerRepo.ListAll: %w", err)
	}
	return taxpayers, nil
}

func (r *taxpayerRepo) ListByPAN(ctx context.Context, pan string) ([]domain.Taxpayer, error) {
	var taxpayers []domain.Taxpayer
	err := r.db.SelectContext(ctx, &taxpayers,
		"SELECT * FROM taxpayers WHERE pan_number = $1 ORDER BY gstin", pan)
	if err != nil {
		return nil, fmt.Errorf("taxpayerRepo.ListByPAN: %w", err)
	}
	return taxpayers, nil
}
