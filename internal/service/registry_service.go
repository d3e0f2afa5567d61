package service

import (
	"context"
	"fmt"

	"tdstrack/internal/domain"
	"tdstrack/internal/port"
	"tdstrack/internal/validator"
)

// TaxpayerInput is the DTO for registering or updating a taxpayer.
type TaxpayerInput struct {
	GSTIN     string `json:"gstin" binding:"required"`
	LegalName string `json:"legal_name" binding:"required"`
}

// RegistrantInput is the DTO for registering or updating a TDS GSTIN.
type RegistrantInput struct {
	TdsGSTIN  string `json:"tds_gstin" binding:"required"`
	LegalName string `json:"legal_name" binding:"required"`
	LinkedPan string `json:"linked_pan" binding:"required"`
}

// RegistryService manages the GSTIN master and the TDS registration list.
type RegistryService interface {
	UpsertTaxpayer(ctx context.Context, input TaxpayerInput) (*domain.Taxpayer, error)
	GetTaxpayer(ctx context.Context, gstin string) (*domain.Taxpayer, error)
	ListTaxpayers(ctx context.Context) ([]domain.Taxpayer, error)
	ListTaxpayersByPAN(ctx context.Context, pan string) ([]domain.Taxpayer, error)

	UpsertRegistrant(ctx context.Context, input RegistrantInput) (*domain.TdsRegistrant, error)
	GetRegistrant(ctx context.Context, tdsGstin string) (*domain.TdsRegistrant, error)
	ListRegistrants(ctx context.Context) ([]domain.TdsRegistrant, error)
	ListRegistrantsByPAN(ctx context.Context, pan string) ([]domain.TdsRegistrant, error)
}

type registryService struct {
	taxpayers   port.TaxpayerRepository
	registrants port.TdsRegistrantRepository
}

// NewRegistryService creates a new RegistryService implementation.
func NewRegistryService(
	taxpayers port.TaxpayerRepository,
	registrants port.TdsRegistrantRepository,
) RegistryService {
	return &registryService{taxpayers: taxpayers, registrants: registrants}
}

// UpsertTaxpayer validates the GSTIN, derives the PAN, state code, and
// entity type, and writes the row keyed on the GSTIN.
func (s *registryService) UpsertTaxpayer(ctx context.Context, input TaxpayerInput) (*domain.Taxpayer, error) {
	if res := validator.GSTIN(input.GSTIN); !res.Valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidGSTIN, res.Reason)
	}
	stateCode := input.GSTIN[:2]
	if res := validator.StateCode(stateCode); !res.Valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidGSTIN, res.Reason)
	}

	taxpayer := &domain.Taxpayer{
		GSTIN:      input.GSTIN,
		LegalName:  input.LegalName,
		PANNumber:  domain.PANFromGSTIN(input.GSTIN),
		StateCode:  stateCode,
		EntityType: domain.EntityTypeFromLegalName(input.LegalName),
	}
	if err := s.taxpayers.Upsert(ctx, taxpayer); err != nil {
		return nil, fmt.Errorf("registry.UpsertTaxpayer: %w", err)
	}
	return taxpayer, nil
}

func (s *registryService) GetTaxpayer(ctx context.Context, gstin string) (*domain.Taxpayer, error) {
	taxpayer, err := s.taxpayers.GetByGSTIN(ctx, gstin)
	if err != nil {
		return nil, fmt.Errorf("registry.GetTaxpayer: %w", err)
	}
	return taxpayer, nil
}

func (s *registryService) ListTaxpayers(ctx context.Context) ([]domain.Taxpayer, error) {
	taxpayers, err := s.taxpayers.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("registry.ListTaxpayers: %w", err)
	}
	return taxpayers, nil
}

func (s *registryService) ListTaxpayersByPAN(ctx context.Context, pan string) ([]domain.Taxpayer, error) {
	if res := validator.PAN(pan); !res.Valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidPAN, res.Reason)
	}
	taxpayers, err := s.taxpayers.ListByPAN(ctx, pan)
	if err != nil {
		return nil, fmt.Errorf("registry.ListTaxpayersByPAN: %w", err)
	}
	return taxpayers, nil
}

// UpsertRegistrant validates the TDS GSTIN and its linked PAN and writes
// the row keyed on the TDS GSTIN. The PAN is not required to exist in the
// taxpayer master; the link stays soft.
func (s *registryService) UpsertRegistrant(ctx context.Context, input RegistrantInput) (*domain.TdsRegistrant, error) {
	if res := validator.TdsGSTIN(input.TdsGSTIN); !res.Valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidGSTIN, res.Reason)
	}
	if res := validator.PAN(input.LinkedPan); !res.Valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidPAN, res.Reason)
	}

	registrant := &domain.TdsRegistrant{
		TdsGSTIN:  input.TdsGSTIN,
		LegalName: input.LegalName,
		LinkedPan: input.LinkedPan,
	}
	if err := s.registrants.Upsert(ctx, registrant); err != nil {
		return nil, fmt.Errorf("registry.UpsertRegistrant: %w", err)
	}
	return registrant, nil
}

func (s *registryService) GetRegistrant(ctx context.Context, tdsGstin string) (*domain.TdsRegistrant, error) {
	registrant, err := s.registrants.GetByGSTIN(ctx, tdsGstin)
	if err != nil {
		return nil, fmt.Errorf("registry.GetRegistrant: %w", err)
	}
	return registrant, nil
}

func (s *registryService) ListRegistrants(ctx context.Context) ([]domain.TdsRegistrant, error) {
	registrants, err := s.registrants.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("registry.ListRegistrants: %w", err)
	}
	return registrants, nil
}

func (s *registryService) ListRegistrantsByPAN(ctx context.Context, pan string) ([]domain.TdsRegistrant, error) {
	if res := validator.PAN(pan); !res.Valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidPAN, res.Reason)
	}
	registrants, err := s.registrants.ListByPAN(ctx, pan)
	if err != nil {
		return nil, fmt.Errorf("registry.ListRegistrantsByPAN: %w", err)
	}
	return registrants, nil
}
