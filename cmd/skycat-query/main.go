// Package main implements the skycat-query binary: it submits a SQL query
// to SkyServer and prints or archives the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/skycat/skycat/internal/app"
	"github.com/skycat/skycat/internal/config"
	"github.com/skycat/skycat/internal/skyserver"
	"github.com/skycat/skycat/internal/store"
)

func main() {
	var (
		configFile string
		sqlText    string
		format     string
		save       bool
		listRuns   bool
		loadRun    string
	)

	flag.StringVar(&configFile, "config", "", "Path to configuration file (YAML or JSON)")
	flag.StringVar(&sqlText, "sql", "", "SQL query to submit")
	flag.StringVar(&format, "format", "csv", "Result format: csv, json, votable")
	flag.BoolVar(&save, "save", false, "Archive the decoded result locally")
	flag.BoolVar(&listRuns, "list", false, "List archived query runs")
	flag.StringVar(&loadRun, "load", "", "Print an archived run by ID instead of querying")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "skycat-query - submit SQL to SkyServer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: skycat-query [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  skycat-query -sql 'SELECT TOP 10 ra,dec FROM PhotoObj'\n")
		fmt.Fprintf(os.Stderr, "  skycat-query -sql @query.sql -save\n")
	}

	flag.Parse()

	cfg, err := loadConfig(configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	if listRuns || loadRun != "" {
		runArchiveMode(ctx, cfg, listRuns, loadRun)
		return
	}

	if sqlText == "" {
		flag.Usage()
		os.Exit(2)
	}
	if sqlText[0] == '@' {
		data, err := os.ReadFile(sqlText[1:])
		if err != nil {
			log.Fatalf("Failed to read query file: %v", err)
		}
		sqlText = string(data)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	if save {
		batch, err := a.SkyServer.QueryCatalog(ctx, sqlText)
		if err != nil {
			log.Fatalf("Query failed: %v", err)
		}
		arch, err := openArchive(cfg)
		if err != nil {
			log.Fatalf("Failed to open archive: %v", err)
		}
		defer arch.Close()

		runID, err := arch.SaveBatch(ctx, sqlText, batch)
		if err != nil {
			log.Fatalf("Failed to archive result: %v", err)
		}
		fmt.Printf("archived %d rows as run %s\n", batch.Len(), runID)
		return
	}

	body, err := a.SkyServer.Query(ctx, sqlText, skyserver.Format(format))
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}
	os.Stdout.Write(body)
}

func runArchiveMode(ctx context.Context, cfg *config.Config, listRuns bool, loadRun string) {
	arch, err := openArchive(cfg)
	if err != nil {
		log.Fatalf("Failed to open archive: %v", err)
	}
	defer arch.Close()

	if listRuns {
		runs, err := arch.ListRuns(ctx, 0)
		if err != nil {
			log.Fatalf("Failed to list runs: %v", err)
		}
		for _, r := range runs {
			fmt.Printf("%s\t%d rows\t%s\t%s\n", r.RunID, r.RowCount,
				r.CreatedAt.Format("2006-01-02 15:04:05"), firstWords(r.SQL, 8))
		}
		return
	}

	batch, err := arch.LoadBatch(ctx, loadRun)
	if err != nil {
		log.Fatalf("Failed to load run: %v", err)
	}
	fmt.Printf("run %s: %d rows\n", loadRun, batch.Len())
	for j := 0; j < batch.Len(); j++ {
		fmt.Printf("%.6f\t%.6f\n", batch.RA[j], batch.Dec[j])
	}
}

func loadConfig(configFile string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.LoadFromFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	config.LoadFromEnv(cfg)
	cfg.Resolve()
	return cfg, nil
}

func openArchive(cfg *config.Config) (*store.Archive, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	return store.Open(cfg.ArchiveDBPath())
}

func firstWords(s string, n int) string {
	count := 0
	for i, c := range s {
		if c == ' ' || c == '\n' || c == '\t' {
			count++
			if count >= n {
				return s[:i] + "..."
			}
		}
	}
	return s
}
