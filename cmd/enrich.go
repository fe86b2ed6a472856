package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leadgrid/enricher/internal/cache"
	"github.com/leadgrid/enricher/internal/config"
	"github.com/leadgrid/enricher/internal/domain"
	"github.com/leadgrid/enricher/internal/email"
	"github.com/leadgrid/enricher/internal/enrich"
	"github.com/leadgrid/enricher/internal/logging"
	"github.com/leadgrid/enricher/internal/policy/pacing"
	"github.com/leadgrid/enricher/internal/scrape"
	"github.com/leadgrid/enricher/internal/search"
)

var (
	inputPath  string
	outputPath string
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich records from a file and emit lead profiles as JSON",
	RunE:  runEnrich,
}

func init() {
	enrichCmd.Flags().StringVar(&inputPath, "input", "", "file with one record per line")
	enrichCmd.Flags().StringVar(&outputPath, "output", "", "write profiles here instead of stdout")
	_ = enrichCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, err := newStore(cfg)
	if err != nil {
		return err
	}
	ttlCache := cache.New(store, cfg.CacheTTL(), logger)

	pacer := pacing.New(
		time.Duration(cfg.Pacing.MinDelayMs)*time.Millisecond,
		time.Duration(cfg.Pacing.MaxDelayMs)*time.Millisecond,
	)
	searcher := search.NewDuckDuckGo(cfg.Search.BaseURL, cfg.HTTP.UserAgent, cfg.HTTPTimeout(), logger)
	verifier := email.NewBatchVerifier(cfg.Verifier.URL, time.Duration(cfg.Verifier.TimeoutSeconds)*time.Second, logger)
	validator := email.NewValidator(ttlCache, email.NewNetMXResolver(), verifier, logger)
	resolver := domain.NewResolver(ttlCache, searcher, pacer, domain.NewTCPProber(0), logger)

	fetcher := scrape.NewCollyFetcher(cfg.HTTP.UserAgent, cfg.HTTPTimeout(), logger)
	scrapeCfg := scrape.DefaultConfig()
	scrapeCfg.MaxRetries = cfg.HTTP.MaxRetries
	scrapeCfg.MaxTeamPages = cfg.Scrape.MaxTeamPages
	scrapeCfg.MaxTeamMembers = cfg.Scrape.MaxTeamMembers
	scrapeCfg.SocialTimeout = time.Duration(cfg.Scrape.SocialTimeoutSecs) * time.Second
	crawler := scrape.NewCrawler(fetcher, pacer, scrapeCfg, logger)

	pipeline := enrich.New(resolver, crawler, validator, searcher, pacer, logger)
	crawler.SetEmailGenerator(pipeline.TeamEmailGenerator())

	records, err := readRecords(inputPath)
	if err != nil {
		return err
	}
	logger.Info("starting enrichment", zap.Int("records", len(records)))

	profiles := pipeline.EnrichMany(cmd.Context(), records)

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(profiles); err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}

	logger.Info("enrichment finished",
		zap.Int("records", len(records)),
		zap.Int("profiles", len(profiles)))
	return nil
}

func newStore(cfg config.Config) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case "fs":
		return cache.NewFSStore(cfg.Cache.Dir)
	case "redis":
		return cache.NewRedisStore(cfg.Cache.RedisURL, "enricher:")
	default:
		return cache.NewMemoryStore(), nil
	}
}

// readRecords parses one input record per line; blank lines and comments
// are skipped.
func readRecords(path string) ([]enrich.InputRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	var records []enrich.InputRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		records = append(records, enrich.InputRecord{RawText: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	return records, nil
}
