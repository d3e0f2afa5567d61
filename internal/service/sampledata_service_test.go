package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tdstrack/internal/domain"
	"tdstrack/internal/service"
	"tdstrack/mocks"
)

func TestSampleDataService_GenerateTdsData(t *testing.T) {
	taxpayers := new(mocks.MockTaxpayerRepo)
	registrants := new(mocks.MockRegistrantRepo)
	invoices := new(mocks.MockInvoiceBatchRepo)
	payments := new(mocks.MockPaymentRepo)
	svc := service.NewSampleDataService(taxpayers, registrants, invoices, payments)

	taxpayers.On("ListAll", mock.Anything).Return([]domain.Taxpayer{
		{GSTIN: "33AAAAA1111A1Z1", PANNumber: "AAAAA1111A", LegalName: "Acme Ltd"},
		{GSTIN: "33BBBBB2222B1Z2", PANNumber: "BBBBB2222B", LegalName: "Miller Group"},
	}, nil)

	registrants.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	// A has liability, B has none.
	invoices.On("ListByGSTIN", mock.Anything, "33AAAAA1111A1Z1").Return([]domain.InvoiceBatch{
		batchFor("33AAAAA1111A1Z1", "042023", 300000),
	}, nil)
	invoices.On("ListByGSTIN", mock.Anything, "33BBBBB2222B1Z2").Return([]domain.InvoiceBatch{
		batchFor("33BBBBB2222B1Z2", "042023", 100000),
	}, nil)

	payments.On("Upsert", mock.Anything, mock.MatchedBy(func(p *domain.TdsPayment) bool {
		// 80 to 100 percent of the 6000 liability, split into components.
		inRange := p.DeducteeAmount >= 4800 && p.DeducteeAmount <= 6000
		componentsMatch := p.TotalTaxAmount == p.IgstAmount+p.CgstAmount+p.SgstAmount
		return p.GSTIN == "33AAAAA1111A1Z1" && inRange && componentsMatch &&
			strings.HasPrefix(p.ChallanNumber, "CHL") && len(p.ChallanNumber) == 9 &&
			p.PaymentDate != nil
	})).Return(nil)

	result, err := svc.GenerateTdsData(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, result.RegistrantsCreated)
	assert.Equal(t, 1, result.PaymentsCreated)
	payments.AssertExpectations(t)
}

func TestSampleDataService_GenerateTdsData_EmptyMaster(t *testing.T) {
	taxpayers := new(mocks.MockTaxpayerRepo)
	svc := service.NewSampleDataService(taxpayers,
		new(mocks.MockRegistrantRepo), new(mocks.MockInvoiceBatchRepo), new(mocks.MockPaymentRepo))

	taxpayers.On("ListAll", mock.Anything).Return([]domain.Taxpayer{}, nil)

	result, err := svc.GenerateTdsData(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, result.RegistrantsCreated)
	assert.Equal(t, 0, result.PaymentsCreated)
}
