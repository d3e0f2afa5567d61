package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"tdstrack/internal/config"
	"tdstrack/internal/domain"
	"tdstrack/internal/ingest"
	"tdstrack/internal/port"
	"tdstrack/internal/validator"
)

const gstr2aContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// IngestResult reports the outcome of one spreadsheet ingestion.
type IngestResult struct {
	GSTIN         string `json:"gstin"`
	ReturnPeriod  string `json:"return_period"`
	InvoiceCount  int    `json:"invoice_count"`
	SourceFileKey string `json:"source_file_key,omitempty"`
}

// Gstr2aService ingests GSTR2A spreadsheets and serves invoice batches.
type Gstr2aService interface {
	IngestFile(ctx context.Context, filename string, r io.Reader) (*IngestResult, error)
	GetBatch(ctx context.Context, gstin, period string) (*domain.InvoiceBatch, error)
	ListBatchesByGSTIN(ctx context.Context, gstin string) ([]domain.InvoiceBatch, error)
	OverallTotals(ctx context.Context) (*domain.Gstr2aTotals, error)
	TotalsByGSTIN(ctx context.Context, gstin string) (*domain.Gstr2aTotals, error)
	DownloadOriginal(ctx context.Context, gstin string) (data []byte, filename string, err error)
}

type gstr2aService struct {
	invoices port.InvoiceBatchRepository
	storage  port.ObjectStorage
	s3cfg    config.S3Config
}

// NewGstr2aService creates a new Gstr2aService implementation. Storage may
// be nil, in which case the original spreadsheets are not archived and
// DownloadOriginal reports the file as missing.
func NewGstr2aService(
	invoices port.InvoiceBatchRepository,
	storage port.ObjectStorage,
	s3cfg config.S3Config,
) Gstr2aService {
	return &gstr2aService{invoices: invoices, storage: storage, s3cfg: s3cfg}
}

// IngestFile parses a GSTR2A workbook, derives the batch summary, archives
// the original file, and upserts the batch keyed on (gstin, period). The
// GSTIN comes from the filename prefix, the way the portal exports name
// their downloads.
func (s *gstr2aService) IngestFile(ctx context.Context, filename string, r io.Reader) (*IngestResult, error) {
	gstin := ingest.GSTINFromFilename(filename)
	if res := validator.GSTIN(gstin); !res.Valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidGSTIN, res.Reason)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gstr2a.IngestFile: reading upload: %w", err)
	}

	invoices, period, err := ingest.ParseWorkbook(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gstr2a.IngestFile: %w", err)
	}

	sourceKey := ""
	if s.storage != nil {
		sourceKey = archiveKey(gstin)
		err := s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.s3cfg.Bucket,
			Key:         sourceKey,
			Body:        bytes.NewReader(data),
			ContentType: gstr2aContentType,
		})
		if err != nil {
			// The batch is still usable without its archive copy, but a
			// previous archive under the same key no longer matches the
			// stored batch and must not be served.
			log.Printf("WARN: archiving %s failed: %v", filename, err)
			if delErr := s.storage.Delete(ctx, s.s3cfg.Bucket, sourceKey); delErr != nil && !errors.Is(delErr, domain.ErrNotFound) {
				log.Printf("WARN: removing stale archive %s failed: %v", sourceKey, delErr)
			}
			sourceKey = ""
		}
	}

	batch := &domain.InvoiceBatch{
		GSTIN:            gstin,
		ReturnPeriod:     period,
		PurchaseInvoices: invoices,
		Summary:          domain.ComputeBatchSummary(invoices),
		SourceFileKey:    sourceKey,
	}
	if err := s.invoices.Upsert(ctx, batch); err != nil {
		return nil, fmt.Errorf("gstr2a.IngestFile: %w", err)
	}

	return &IngestResult{
		GSTIN:         gstin,
		ReturnPeriod:  period,
		InvoiceCount:  len(invoices),
		SourceFileKey: sourceKey,
	}, nil
}

func (s *gstr2aService) GetBatch(ctx context.Context, gstin, period string) (*domain.InvoiceBatch, error) {
	if res := validator.Period(period); !res.Valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidPeriod, res.Reason)
	}
	batch, err := s.invoices.GetByGSTINAndPeriod(ctx, gstin, period)
	if err != nil {
		return nil, fmt.Errorf("gstr2a.GetBatch: %w", err)
	}
	return batch, nil
}

func (s *gstr2aService) ListBatchesByGSTIN(ctx context.Context, gstin string) ([]domain.InvoiceBatch, error) {
	batches, err := s.invoices.ListByGSTIN(ctx, gstin)
	if err != nil {
		return nil, fmt.Errorf("gstr2a.ListBatchesByGSTIN: %w", err)
	}
	return batches, nil
}

func (s *gstr2aService) OverallTotals(ctx context.Context) (*domain.Gstr2aTotals, error) {
	totals, err := s.invoices.OverallTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("gstr2a.OverallTotals: %w", err)
	}
	return totals, nil
}

func (s *gstr2aService) TotalsByGSTIN(ctx context.Context, gstin string) (*domain.Gstr2aTotals, error) {
	totals, err := s.invoices.TotalsByGSTIN(ctx, gstin)
	if err != nil {
		return nil, fmt.Errorf("gstr2a.TotalsByGSTIN: %w", err)
	}
	return totals, nil
}

// DownloadOriginal fetches the archived spreadsheet for a GSTIN. The batch
// must exist and must have been archived at ingest time.
func (s *gstr2aService) DownloadOriginal(ctx context.Context, gstin string) ([]byte, string, error) {
	batches, err := s.invoices.ListByGSTIN(ctx, gstin)
	if err != nil {
		return nil, "", fmt.Errorf("gstr2a.DownloadOriginal: %w", err)
	}
	if len(batches) == 0 {
		return nil, "", domain.ErrNotFound
	}

	key := ""
	for i := range batches {
		if batches[i].SourceFileKey != "" {
			key = batches[i].SourceFileKey
			break
		}
	}
	if key == "" || s.storage == nil {
		return nil, "", domain.ErrSourceFileMissing
	}

	data, err := s.storage.Download(ctx, s.s3cfg.Bucket, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrSourceFileMissing
		}
		return nil, "", fmt.Errorf("gstr2a.DownloadOriginal: %w", err)
	}
	return data, fmt.Sprintf("%s_GSTR2A.xlsx", gstin), nil
}

func archiveKey(gstin string) string {
	return fmt.Sprintf("gstr2a/%s_GSTR2A.xlsx", gstin)
}
