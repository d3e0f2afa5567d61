package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tdstrack/internal/domain"
	"tdstrack/internal/service"
	"tdstrack/mocks"
)

func TestRegistryService_UpsertTaxpayer_DerivesFields(t *testing.T) {
	taxpayers := new(mocks.MockTaxpayerRepo)
	registrants := new(mocks.MockRegistrantRepo)
	svc := service.NewRegistryService(taxpayers, registrants)

	taxpayers.On("Upsert", mock.Anything, mock.MatchedBy(func(tp *domain.Taxpayer) bool {
		return tp.PANNumber == "ABCDE1234F" &&
			tp.StateCode == "33" &&
			tp.EntityType == domain.EntityLtd
	})).Return(nil)

	taxpayer, err := svc.UpsertTaxpayer(context.Background(), service.TaxpayerInput{
		GSTIN:     "33ABCDE1234F1Z5",
		LegalName: "Acme Traders Ltd",
	})
	assert.NoError(t, err)
	assert.Equal(t, "ABCDE1234F", taxpayer.PANNumber)
	taxpayers.AssertExpectations(t)
}

func TestRegistryService_UpsertTaxpayer_RejectsInvalidGSTIN(t *testing.T) {
	taxpayers := new(mocks.MockTaxpayerRepo)
	svc := service.NewRegistryService(taxpayers, new(mocks.MockRegistrantRepo))

	_, err := svc.UpsertTaxpayer(context.Background(), service.TaxpayerInput{
		GSTIN:     "garbage",
		LegalName: "Acme",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidGSTIN)
	taxpayers.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestRegistryService_UpsertTaxpayer_RejectsOtherStates(t *testing.T) {
	taxpayers := new(mocks.MockTaxpayerRepo)
	svc := service.NewRegistryService(taxpayers, new(mocks.MockRegistrantRepo))

	// Valid format, but a Karnataka registration.
	_, err := svc.UpsertTaxpayer(context.Background(), service.TaxpayerInput{
		GSTIN:     "29ABCDE1234F1Z5",
		LegalName: "Acme",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidGSTIN)
}

func TestRegistryService_UpsertRegistrant_RequiresTdsGSTIN(t *testing.T) {
	registrants := new(mocks.MockRegistrantRepo)
	svc := service.NewRegistryService(new(mocks.MockTaxpayerRepo), registrants)

	// 13th character "1" marks a regular registration, not a deductor.
	_, err := svc.UpsertRegistrant(context.Background(), service.RegistrantInput{
		TdsGSTIN:  "33ABCDE1234F1Z5",
		LegalName: "Acme",
		LinkedPan: "ABCDE1234F",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidGSTIN)
	registrants.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestRegistryService_UpsertRegistrant_ValidatesPAN(t *testing.T) {
	registrants := new(mocks.MockRegistrantRepo)
	svc := service.NewRegistryService(new(mocks.MockTaxpayerRepo), registrants)

	_, err := svc.UpsertRegistrant(context.Background(), service.RegistrantInput{
		TdsGSTIN:  "33ABCDE1234F2Z5",
		LegalName: "Acme",
		LinkedPan: "bad-pan",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPAN)
}

func TestRegistryService_UpsertRegistrant_Succeeds(t *testing.T) {
	registrants := new(mocks.MockRegistrantRepo)
	svc := service.NewRegistryService(new(mocks.MockTaxpayerRepo), registrants)

	registrants.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	registrant, err := svc.UpsertRegistrant(context.Background(), service.RegistrantInput{
		TdsGSTIN:  "33ABCDE1234F2Z5",
		LegalName: "Acme",
		LinkedPan: "ABCDE1234F",
	})
	assert.NoError(t, err)
	assert.Equal(t, "33ABCDE1234F2Z5", registrant.TdsGSTIN)
	registrants.AssertExpectations(t)
}

func TestRegistryService_ListRegistrantsByPAN_ValidatesPAN(t *testing.T) {
	registrants := new(mocks.MockRegistrantRepo)
	svc := service.NewRegistryService(new(mocks.MockTaxpayerRepo), registrants)

	_, err := svc.ListRegistrantsByPAN(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidPAN)
}

func TestRegistryService_ListTaxpayersByPAN(t *testing.T) {
	taxpayers := new(mocks.MockTaxpayerRepo)
	svc := service.NewRegistryService(taxpayers, new(mocks.MockRegistrantRepo))

	expected := []domain.Taxpayer{{GSTIN: "33ABCDE1234F1Z5", PANNumber: "ABCDE1234F"}}
	taxpayers.On("ListByPAN", mock.Anything, "ABCDE1234F").Return(expected, nil)

	result, err := svc.ListTaxpayersByPAN(context.Background(), "ABCDE1234F")
	assert.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestRegistryService_GetTaxpayer_NotFound(t *testing.T) {
	taxpayers := new(mocks.MockTaxpayerRepo)
	svc := service.NewRegistryService(taxpayers, new(mocks.MockRegistrantRepo))

	taxpayers.On("GetByGSTIN", mock.Anything, "33ABCDE1234F1Z5").Return(nil, domain.ErrNotFound)

	_, err := svc.GetTaxpayer(context.Background(), "33ABCDE1234F1Z5")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
