// Command loadgstr2a bulk-ingests a directory of GSTR2A portal exports.
// Every file named <gstin>_GSTR2A.xlsx is parsed and upserted; files that
// fail to parse are logged and skipped.
// Usage: go run ./cmd/loadgstr2a -dir data/gstr2a
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"tdstrack/internal/config"
	"tdstrack/internal/repository/postgres"
	"tdstrack/internal/service"
	s3storage "tdstrack/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dir := flag.String("dir", "data/gstr2a", "directory containing <gstin>_GSTR2A.xlsx files")
	noArchive := flag.Bool("no-archive", false, "skip uploading originals to object storage")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	invoiceRepo := postgres.NewInvoiceBatchRepo(db)

	svc := service.NewGstr2aService(invoiceRepo, nil, cfg.S3)
	if !*noArchive {
		s3Client, err := s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		svc = service.NewGstr2aService(invoiceRepo, s3Client, cfg.S3)
	}

	entries, err := os.ReadDir(*dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", *dir, err)
	}

	loaded, failed := 0, 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "_GSTR2A.xlsx") {
			continue
		}

		path := filepath.Join(*dir, entry.Name())
		f, err := os.Open(path)
		if err != nil {
			log.Printf("skipping %s: %v", entry.Name(), err)
			failed++
			continue
		}

		result, err := svc.IngestFile(context.Background(), entry.Name(), f)
		f.Close()
		if err != nil {
			log.Printf("skipping %s: %v", entry.Name(), err)
			failed++
			continue
		}

		log.Printf("loaded %s: %d invoices for period %s",
			result.GSTIN, result.InvoiceCount, result.ReturnPeriod)
		loaded++
	}

	log.Printf("done: %d files loaded, %d failed", loaded, failed)
	return nil
}
