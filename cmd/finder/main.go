// Command finder runs a match from the terminal: it loads a BrickLink XML
// inventory export, checks it against the cached catalog and writes the
// resulting report as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ganorabricks/figfinder/internal/bricklink"
	"github.com/ganorabricks/figfinder/internal/catalog"
	"github.com/ganorabricks/figfinder/internal/config"
	"github.com/ganorabricks/figfinder/internal/database"
	"github.com/ganorabricks/figfinder/internal/database/postgres"
	"github.com/ganorabricks/figfinder/internal/finder"
	"github.com/ganorabricks/figfinder/internal/inventory"
	"github.com/ganorabricks/figfinder/internal/logger"
	"github.com/ganorabricks/figfinder/internal/report"
)

func main() {
	var (
		inventoryPath = flag.String("inventory", "", "path to the BrickLink XML inventory export (required)")
		outPath       = flag.String("out", config.DefaultReportPath, "where to write the JSON report")
		idList        = flag.String("ids", "", "comma-separated minifig IDs to check (default: everything cached)")
		refresh       = flag.Bool("refresh", false, "re-fetch the requested minifigs from BrickLink before matching")
		topN          = flag.Int("top", 10, "how many complete builds to print")
	)
	flag.Parse()

	if *inventoryPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, false))

	if err := run(cfg, *inventoryPath, *outPath, splitIDs(*idList), *refresh, *topN); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, inventoryPath, outPath string, ids []string, refresh bool, topN int) error {
	ctx := context.Background()

	store, err := inventory.ParseFile(inventoryPath)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded inventory: %d unique parts, %d pieces total\n", store.UniqueParts(), store.TotalPieces())

	pool, err := database.NewPool(cfg.GetDBConnString(), 4, time.Minute, 10*time.Minute)
	if err != nil {
		return err
	}
	defer pool.Close()

	var fetcher catalog.Fetcher
	if cfg.HasBrickLinkCredentials() {
		client, err := bricklink.NewClient(bricklink.Config{
			ConsumerKey:    cfg.BrickLinkConsumerKey,
			ConsumerSecret: cfg.BrickLinkConsumerSecret,
			Token:          cfg.BrickLinkToken,
			TokenSecret:    cfg.BrickLinkTokenSecret,
		})
		if err != nil {
			return err
		}
		fetcher = client
	} else {
		slog.Warn("BrickLink credentials not configured, running cache-only")
	}

	catalogService := catalog.NewService(postgres.NewCatalogRepository(pool), fetcher, catalog.Config{
		CacheSize: cfg.CatalogCacheSize,
		CacheTTL:  cfg.CatalogCacheTTL,
	})

	if refresh {
		res, err := catalogService.Refresh(ctx, ids)
		if err != nil {
			return err
		}
		fmt.Printf("Refreshed catalog: %d/%d fetched\n", res.Fetched, res.Requested)
	}

	result, err := finder.NewService(catalogService).Run(ctx, store, ids)
	if err != nil {
		return err
	}

	printResults(result, topN)

	if err := writeReport(result, outPath); err != nil {
		return err
	}
	fmt.Printf("\nReport written to %s\n", outPath)
	return nil
}

func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func printResults(r *report.Report, topN int) {
	fmt.Printf("\nChecked %d minifigures: %d buildable, %d partial\n",
		r.Summary.TotalChecked, r.Summary.CompleteMatches, r.Summary.IncompleteMatches)

	if len(r.Complete) > 0 {
		fmt.Println("\nBuildable:")
		for i, b := range r.Complete {
			if i >= topN {
				fmt.Printf("  ... and %d more\n", len(r.Complete)-topN)
				break
			}
			year := "????"
			if b.YearReleased != nil {
				year = fmt.Sprintf("%d", *b.YearReleased)
			}
			fmt.Printf("  %-10s %-40s %s  x%d  profit $%.2f\n",
				b.MinifigID, truncate(b.MinifigName, 40), year, b.BuildableCount, b.Profit)
		}
	}

	if len(r.Incomplete) > 0 {
		// Partials are already sorted by match percentage; show the closest few
		closest := make([]report.Build, len(r.Incomplete))
		copy(closest, r.Incomplete)
		sort.SliceStable(closest, func(i, j int) bool {
			return closest[i].MatchPercentage > closest[j].MatchPercentage
		})

		fmt.Println("\nClosest partial matches:")
		for i, b := range closest {
			if i >= 5 {
				break
			}
			fmt.Printf("  %-10s %-40s %.0f%% (%d/%d parts)\n",
				b.MinifigID, truncate(b.MinifigName, 40), b.MatchPercentage, b.MatchedParts, b.TotalParts)
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func writeReport(r *report.Report, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
