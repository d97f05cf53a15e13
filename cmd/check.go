package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jfmyers9/sequels/internal/config"
	"github.com/jfmyers9/sequels/internal/library"
	"github.com/jfmyers9/sequels/internal/releases"
	"github.com/jfmyers9/sequels/pkg/audible"
)

// libraryPageSize is the single-request cap on the library listing.
// Larger libraries are truncated by the API; there is no pagination.
const libraryPageSize = 1000

var (
	checkSortBy      string
	checkConcurrency int
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check owned series for new releases",
	Long: `Check every audiobook series in your library for installments newer
than the latest one you own, and print a report.

The report groups new books by series, soonest release first. Books not
yet released carry a countdown. Series listed under ignore_series in
the config file are skipped.

Exit code is 0 on a completed run whether or not anything new was
found; individual series whose pages cannot be fetched or parsed are
logged and simply report nothing.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkSortBy, "sort-by", "", "Library sort key (overrides config)")
	checkCmd.Flags().IntVar(&checkConcurrency, "concurrency", 0, "Concurrent series page fetches (overrides config)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := newLogger()

	cfg, status := loadConfig()
	if status != config.StatusOK {
		logger.Warn().Stringer("status", status).Msg("Config not loaded, using defaults and no ignore list")
	}
	if checkSortBy != "" {
		cfg.Library.SortBy = checkSortBy
	}
	if checkConcurrency > 0 {
		cfg.Check.Concurrency = checkConcurrency
	}

	client, err := audible.NewClient(audible.Config{
		Region:      cfg.Audible.Region,
		SessionFile: cfg.Audible.SessionFile,
	})
	if err != nil {
		return err
	}

	if err := ensureSession(ctx, client, logger); err != nil {
		return err
	}

	logger.Info().Msg("Retrieving library")
	items, err := client.Library().List(ctx, audible.ListOptions{
		NumResults:     libraryPageSize,
		ResponseGroups: []string{"series", "product_desc", "product_attrs"},
		SortBy:         cfg.Library.SortBy,
	})
	if err != nil {
		return fmt.Errorf("failed to list library: %w", err)
	}

	owned, err := library.BuildCollection(items)
	if err != nil {
		// A malformed date means the API contract changed; nothing
		// sensible to guess around.
		return err
	}
	owned = library.FilterIgnored(owned, cfg.IgnoreSeries)

	tracked := make([]library.Series, 0, len(owned))
	for _, series := range owned {
		tracked = append(tracked, series)
	}
	sort.Slice(tracked, func(i, j int) bool { return tracked[i].Title < tracked[j].Title })

	logger.Info().Int("series", len(tracked)).Msg("Checking series pages")
	checker := releases.NewChecker(cfg.Audible.Region, cfg.Check.Concurrency, logger)
	results := checker.CheckAll(ctx, tracked)

	releases.Report(os.Stdout, results, time.Now())
	return nil
}

// ensureSession loads the stored session and validates it with a
// one-item listing. A missing or rejected session falls back to the
// interactive sign-in flow.
func ensureSession(ctx context.Context, client *audible.Client, logger zerolog.Logger) error {
	session, err := client.Auth().LoadSession()
	if err == nil {
		client.SetSession(session.Token)
		err = client.Library().Ping(ctx)
		if err == nil {
			return nil
		}
	}

	if errors.Is(err, audible.ErrNoSession) || errors.Is(err, audible.ErrInvalidSession) {
		logger.Info().Msg("No valid session, signing in")
		return interactiveLogin(ctx, client)
	}
	return fmt.Errorf("failed to validate session: %w", err)
}
