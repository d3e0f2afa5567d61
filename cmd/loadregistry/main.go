// Command loadregistry seeds the GSTIN master and the TDS registration
// list from CSV exports. Rows that fail validation are logged and skipped.
// Usage: go run ./cmd/loadregistry -taxpayers gstins.csv -registrants tds_gstins.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"tdstrack/internal/config"
	"tdstrack/internal/ingest"
	"tdstrack/internal/repository/postgres"
	"tdstrack/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	taxpayerPath := flag.String("taxpayers", "", "CSV of taxpayer GSTINs and legal names")
	registrantPath := flag.String("registrants", "", "CSV of TDS GSTINs, legal names, and linked PANs")
	flag.Parse()

	if *taxpayerPath == "" && *registrantPath == "" {
		return fmt.Errorf("at least one of -taxpayers or -registrants is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	svc := service.NewRegistryService(postgres.NewTaxpayerRepo(db), postgres.NewTdsRegistrantRepo(db))
	ctx := context.Background()

	if *taxpayerPath != "" {
		if err := loadTaxpayers(ctx, svc, *taxpayerPath); err != nil {
			return err
		}
	}
	if *registrantPath != "" {
		if err := loadRegistrants(ctx, svc, *registrantPath); err != nil {
			return err
		}
	}
	return nil
}

func loadTaxpayers(ctx context.Context, svc service.RegistryService, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ingest.ParseTaxpayerCSV(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	loaded, skipped := 0, 0
	for _, row := range rows {
		_, err := svc.UpsertTaxpayer(ctx, service.TaxpayerInput{
			GSTIN:     row.GSTIN,
			LegalName: row.LegalName,
		})
		if err != nil {
			log.Printf("skipping taxpayer %s: %v", row.GSTIN, err)
			skipped++
			continue
		}
		loaded++
	}
	log.Printf("taxpayers: %d loaded, %d skipped", loaded, skipped)
	return nil
}

func loadRegistrants(ctx context.Context, svc service.RegistryService, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ingest.ParseRegistrantCSV(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	loaded, skipped := 0, 0
	for _, row := range rows {
		_, err := svc.UpsertRegistrant(ctx, service.RegistrantInput{
			TdsGSTIN:  row.TdsGSTIN,
			LegalName: row.LegalName,
			LinkedPan: row.LinkedPan,
		})
		if err != nil {
			log.Printf("skipping registrant %s: %v", row.TdsGSTIN, err)
			skipped++
			continue
		}
		loaded++
	}
	log.Printf("registrants: %d loaded, %d skipped", loaded, skipped)
	return nil
}
