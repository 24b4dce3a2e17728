// Command rematch resolves fighter identities against a canonical roster.
//
// Usage:
//
//	rematch -canonical roster.json -name "Jose Aldo" -record 28-7-0 -division featherweight
//	rematch -canonical roster.json -batch scraped.csv -db matches.db -csv decisions.csv
//	rematch -canonical roster.json -serve -addr :8080
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/codeGROOVE-dev/rematch/pkg/cache"
	"github.com/codeGROOVE-dev/rematch/pkg/config"
	"github.com/codeGROOVE-dev/rematch/pkg/export"
	"github.com/codeGROOVE-dev/rematch/pkg/fighter"
	"github.com/codeGROOVE-dev/rematch/pkg/match"
	"github.com/codeGROOVE-dev/rematch/pkg/pipeline"
	"github.com/codeGROOVE-dev/rematch/pkg/server"
	"github.com/codeGROOVE-dev/rematch/pkg/source"
	"github.com/codeGROOVE-dev/rematch/pkg/store"
	"github.com/joho/godotenv"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	verbose := flag.Bool("v", false, "enable verbose logging (same as -debug)")
	configPath := flag.String("config", "", "YAML config file (or set REMATCH_CONFIG)")
	canonicalPath := flag.String("canonical", "", "canonical roster file, .json or .csv")

	name := flag.String("name", "", "fighter name for a one-shot match")
	division := flag.String("division", "", "weight division as reported by the source")
	record := flag.String("record", "", "win-loss-draw record, e.g. 28-7-0")
	age := flag.Int("age", 0, "age in years as reported by the source")
	weight := flag.String("weight", "", "weight with unit, e.g. '145 lbs' or '66 kg'")
	dob := flag.String("dob", "", "date of birth, e.g. 1986-09-09")
	sourceTag := flag.String("source", "", "source dataset label, e.g. sherdog")

	batchPath := flag.String("batch", "", "source records file for a batch run, .json or .csv")
	dbPath := flag.String("db", "", "SQLite file for persisting match decisions")
	reviewPath := flag.String("review-queue", "", "JSONL file to append manual review items to")
	csvPath := flag.String("csv", "", "write batch results as CSV to this file")

	serve := flag.Bool("serve", false, "run the matching API server")
	addr := flag.String("addr", "", "listen address for -serve (overrides config)")
	noCache := flag.Bool("no-cache", false, "disable the server result cache")
	cacheDir := flag.String("cache-dir", "", "directory for the server result cache (overrides config)")

	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not read .env file: %v\n", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if *debug || *verbose || cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// Flags beat config file and environment.
	if *canonicalPath != "" {
		cfg.Paths.Canonical = *canonicalPath
	}
	if *batchPath != "" {
		cfg.Paths.Sources = *batchPath
	}
	if *dbPath != "" {
		cfg.Paths.Database = *dbPath
	}
	if *reviewPath != "" {
		cfg.Paths.ReviewQueue = *reviewPath
	}
	if *cacheDir != "" {
		cfg.Paths.CacheDir = *cacheDir
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	if cfg.Paths.Canonical == "" {
		usage()
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := source.LoadCanonical(cfg.Paths.Canonical)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("loaded canonical roster", "path", cfg.Paths.Canonical, "fighters", len(pool))

	matcherOpts := []match.Option{
		match.WithLogger(logger),
		match.WithWeights(cfg.Weights),
		match.WithBonuses(cfg.Bonuses),
		match.WithThresholds(cfg.Thresholds),
		match.WithMinNameConfidence(cfg.MinNameConfidence),
	}
	matcher := match.New(matcherOpts...)

	switch {
	case *serve:
		err = runServe(cfg, logger, matcher, pool, *noCache)
	case *name != "":
		src := fighter.SourceRecord{
			Name:        *name,
			Division:    *division,
			Record:      *record,
			Age:         *age,
			Weight:      *weight,
			DateOfBirth: *dob,
			Source:      *sourceTag,
		}
		err = runMatch(matcher, src, pool)
	case cfg.Paths.Sources != "":
		err = runBatch(ctx, cfg, logger, matcher, pool, *csvPath)
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: rematch -canonical <roster> [mode flags]\n\n")
	fmt.Fprintf(os.Stderr, "Modes:\n")
	fmt.Fprintf(os.Stderr, "  -name <name>       match a single source record against the roster\n")
	fmt.Fprintf(os.Stderr, "  -batch <file>      match every record in a sources file\n")
	fmt.Fprintf(os.Stderr, "  -serve             expose matching over HTTP\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  rematch -canonical roster.json -name \"Jose Aldo\" -record 28-7-0\n")
	fmt.Fprintf(os.Stderr, "  rematch -canonical roster.json -batch scraped.csv -db matches.db\n")
	fmt.Fprintf(os.Stderr, "  rematch -canonical roster.json -serve -addr :8080\n")
}

func runMatch(matcher *match.Matcher, src fighter.SourceRecord, pool []fighter.CanonicalRecord) error {
	res, err := matcher.Rank(src, pool)
	if err != nil {
		return fmt.Errorf("match %q: %w", src.Name, err)
	}
	return outputJSON(res)
}

func runBatch(ctx context.Context, cfg *config.Config, logger *slog.Logger, matcher *match.Matcher, pool []fighter.CanonicalRecord, csvPath string) error {
	srcs, err := source.LoadSources(cfg.Paths.Sources)
	if err != nil {
		return fmt.Errorf("load sources: %w", err)
	}

	pipeOpts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithMatcher(matcher),
	}
	if cfg.Paths.Database != "" {
		st, err := store.New(ctx, cfg.Paths.Database, store.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close() //nolint:errcheck // intentional
		pipeOpts = append(pipeOpts, pipeline.WithStore(st))
	}
	if cfg.Paths.ReviewQueue != "" {
		pipeOpts = append(pipeOpts, pipeline.WithReviewQueue(cfg.Paths.ReviewQueue))
	}

	summary, err := pipeline.New(pipeOpts...).Run(ctx, srcs, pool)
	if err != nil {
		return fmt.Errorf("run batch: %w", err)
	}

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("create csv: %w", err)
		}
		defer f.Close() //nolint:errcheck // intentional
		if err := export.CSV(f, summary.Results); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		logger.Info("wrote csv report", "path", csvPath, "rows", len(summary.Results))
	}

	return outputJSON(summary)
}

func runServe(cfg *config.Config, logger *slog.Logger, matcher *match.Matcher, pool []fighter.CanonicalRecord, noCache bool) error {
	var c *cache.Cache
	if noCache {
		c = cache.NewNull()
		logger.Debug("result cache disabled")
	} else {
		var err error
		if cfg.Paths.CacheDir != "" {
			c, err = cache.NewWithPath(cfg.Server.CacheTTL, cfg.Paths.CacheDir)
		} else {
			c, err = cache.New(cfg.Server.CacheTTL)
		}
		if err != nil {
			logger.Warn("falling back to uncached serving", "error", err)
			c = cache.NewNull()
		}
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Warn("failed to close cache", "error", err)
		}
	}()

	srv := server.New(pool,
		server.WithLogger(logger),
		server.WithMatcher(matcher),
		server.WithCache(c),
	)
	logger.Info("starting server", "addr", cfg.Server.Addr, "fighters", len(pool), "cache_ttl", cfg.Server.CacheTTL)
	if err := srv.Run(cfg.Server.Addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
