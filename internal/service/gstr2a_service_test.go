package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tdstrack/internal/config"
	"tdstrack/internal/domain"
	"tdstrack/internal/port"
	"tdstrack/internal/service"
	"tdstrack/mocks"
)

var testS3Config = config.S3Config{Region: "ap-south-1", Bucket: "tdstrack-test"}

// sampleWorkbook renders a minimal one-invoice GSTR2A export.
func sampleWorkbook(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{
		"Invoice Number", "Invoice Date", "Invoice Value (₹)", "Place Of Supply",
		"Rate (%)", "Taxable Value (₹)", "Central Tax (₹)", "State/UT Tax (₹)",
	}
	row := []interface{}{"INV-001", "15-04-2023", "354000", "33-Tamil Nadu", "18", "300000", "27000", "27000"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestGstr2aService_IngestFile_ParsesArchivesAndUpserts(t *testing.T) {
	repo := new(mocks.MockInvoiceBatchRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewGstr2aService(repo, storage, testS3Config)

	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "tdstrack-test" && in.Key == "gstr2a/33ABCDE1234F1Z5_GSTR2A.xlsx"
	})).Return(nil)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(b *domain.InvoiceBatch) bool {
		return b.GSTIN == "33ABCDE1234F1Z5" &&
			b.ReturnPeriod == "042023" &&
			len(b.PurchaseInvoices) == 1 &&
			b.Summary.TotalInvoices == 1 &&
			b.SourceFileKey == "gstr2a/33ABCDE1234F1Z5_GSTR2A.xlsx"
	})).Return(nil)

	result, err := svc.IngestFile(context.Background(),
		"33ABCDE1234F1Z5_GSTR2A.xlsx", bytes.NewReader(sampleWorkbook(t)))
	assert.NoError(t, err)
	assert.Equal(t, "33ABCDE1234F1Z5", result.GSTIN)
	assert.Equal(t, "042023", result.ReturnPeriod)
	assert.Equal(t, 1, result.InvoiceCount)
	repo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestGstr2aService_IngestFile_ArchiveFailureIsNotFatal(t *testing.T) {
	repo := new(mocks.MockInvoiceBatchRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewGstr2aService(repo, storage, testS3Config)

	storage.On("Upload", mock.Anything, mock.Anything).Return(errors.New("bucket gone"))
	storage.On("Delete", mock.Anything, "tdstrack-test", "gstr2a/33ABCDE1234F1Z5_GSTR2A.xlsx").
		Return(nil)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(b *domain.InvoiceBatch) bool {
		return b.SourceFileKey == ""
	})).Return(nil)

	result, err := svc.IngestFile(context.Background(),
		"33ABCDE1234F1Z5_GSTR2A.xlsx", bytes.NewReader(sampleWorkbook(t)))
	assert.NoError(t, err)
	assert.Empty(t, result.SourceFileKey)
	storage.AssertExpectations(t)
}

func TestGstr2aService_IngestFile_StaleArchiveCleanupFailureIsNotFatal(t *testing.T) {
	repo := new(mocks.MockInvoiceBatchRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewGstr2aService(repo, storage, testS3Config)

	storage.On("Upload", mock.Anything, mock.Anything).Return(errors.New("bucket gone"))
	storage.On("Delete", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("still gone"))
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(b *domain.InvoiceBatch) bool {
		return b.SourceFileKey == ""
	})).Return(nil)

	result, err := svc.IngestFile(context.Background(),
		"33ABCDE1234F1Z5_GSTR2A.xlsx", bytes.NewReader(sampleWorkbook(t)))
	assert.NoError(t, err)
	assert.Empty(t, result.SourceFileKey)
}

func TestGstr2aService_IngestFile_ReingestIsIdempotent(t *testing.T) {
	repo := new(mocks.MockInvoiceBatchRepo)
	svc := service.NewGstr2aService(repo, nil, testS3Config)

	var upserted []domain.InvoiceBatch
	repo.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		upserted = append(upserted, *args.Get(1).(*domain.InvoiceBatch))
	}).Return(nil)

	data := sampleWorkbook(t)
	_, err := svc.IngestFile(context.Background(), "33ABCDE1234F1Z5_GSTR2A.xlsx", bytes.NewReader(data))
	require.NoError(t, err)
	_, err = svc.IngestFile(context.Background(), "33ABCDE1234F1Z5_GSTR2A.xlsx", bytes.NewReader(data))
	require.NoError(t, err)

	require.Len(t, upserted, 2)
	assert.Equal(t, upserted[0].GSTIN, upserted[1].GSTIN)
	assert.Equal(t, upserted[0].ReturnPeriod, upserted[1].ReturnPeriod)
	assert.Equal(t, upserted[0].Summary, upserted[1].Summary)
	assert.Equal(t, upserted[0].PurchaseInvoices, upserted[1].PurchaseInvoices)
}

func TestGstr2aService_IngestFile_RejectsBadFilename(t *testing.T) {
	repo := new(mocks.MockInvoiceBatchRepo)
	svc := service.NewGstr2aService(repo, nil, testS3Config)

	_, err := svc.IngestFile(context.Background(), "notagstin_GSTR2A.xlsx",
		bytes.NewReader(sampleWorkbook(t)))
	assert.ErrorIs(t, err, domain.ErrInvalidGSTIN)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestGstr2aService_GetBatch_ValidatesPeriod(t *testing.T) {
	repo := new(mocks.MockInvoiceBatchRepo)
	svc := service.NewGstr2aService(repo, nil, testS3Config)

	_, err := svc.GetBatch(context.Background(), "33ABCDE1234F1Z5", "2023")
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestGstr2aService_DownloadOriginal_ReturnsArchivedBytes(t *testing.T) {
	repo := new(mocks.MockInvoiceBatchRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewGstr2aService(repo, storage, testS3Config)

	repo.On("ListByGSTIN", mock.Anything, "33ABCDE1234F1Z5").Return([]domain.InvoiceBatch{
		{GSTIN: "33ABCDE1234F1Z5", SourceFileKey: "gstr2a/33ABCDE1234F1Z5_GSTR2A.xlsx"},
	}, nil)
	storage.On("Download", mock.Anything, "tdstrack-test", "gstr2a/33ABCDE1234F1Z5_GSTR2A.xlsx").
		Return([]byte("xlsx-bytes"), nil)

	data, filename, err := svc.DownloadOriginal(context.Background(), "33ABCDE1234F1Z5")
	assert.NoError(t, err)
	assert.Equal(t, []byte("xlsx-bytes"), data)
	assert.Equal(t, "33ABCDE1234F1Z5_GSTR2A.xlsx", filename)
}

func TestGstr2aService_DownloadOriginal_UnknownGSTIN(t *testing.T) {
	repo := new(mocks.MockInvoiceBatchRepo)
	svc := service.NewGstr2aService(repo, new(mocks.MockObjectStorage), testS3Config)

	repo.On("ListByGSTIN", mock.Anything, "33ABCDE1234F1Z5").Return([]domain.InvoiceBatch{}, nil)

	_, _, err := svc.DownloadOriginal(context.Background(), "33ABCDE1234F1Z5")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGstr2aService_DownloadOriginal_NeverArchived(t *testing.T) {
	repo := new(mocks.MockInvoiceBatchRepo)
	svc := service.NewGstr2aService(repo, new(mocks.MockObjectStorage), testS3Config)

	repo.On("ListByGSTIN", mock.Anything, "33ABCDE1234F1Z5").Return([]domain.InvoiceBatch{
		{GSTIN: "33ABCDE1234F1Z5"},
	}, nil)

	_, _, err := svc.DownloadOriginal(context.Background(), "33ABCDE1234F1Z5")
	assert.ErrorIs(t, err, domain.ErrSourceFileMissing)
}
