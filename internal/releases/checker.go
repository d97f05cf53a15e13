package releases

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/jfmyers9/sequels/internal/library"
)

// fetchTimeout bounds a single series page request.
const fetchTimeout = 30 * time.Second

// datePattern matches the DD-MM-YYYY date embedded in a release date
// label ("Release date: 15-06-2023").
var datePattern = regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{4}`)

// NewInstallment is an unowned installment discovered on a series page.
type NewInstallment struct {
	Title       string
	ReleaseDate time.Time
}

// Result pairs a series with the new installments found for it. New is
// empty when the series is up to date or its page could not be read.
type Result struct {
	Series library.Series
	New    []NewInstallment
}

// Checker fetches series listing pages and diffs them against the
// owned collection.
type Checker struct {
	http        *resty.Client
	region      string
	concurrency int
	logger      zerolog.Logger
}

// NewChecker creates a Checker. concurrency bounds the number of series
// pages fetched at once.
func NewChecker(region string, concurrency int, logger zerolog.Logger) *Checker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Checker{
		http:        resty.New().SetTimeout(fetchTimeout),
		region:      region,
		concurrency: concurrency,
		logger:      logger.With().Str("component", "checker").Logger(),
	}
}

// Check fetches one series' listing page and returns the installments
// released strictly after the latest owned one, in page order.
//
// A malformed date on one node skips that node, not the page. Missing
// selectors simply yield nothing.
func (c *Checker) Check(ctx context.Context, series library.Series) ([]NewInstallment, error) {
	link, err := ListingURL(series.URL, c.region)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.R().SetContext(ctx).Get(link)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", link, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", link, resp.StatusCode())
	}

	c.logger.Info().Str("series", series.Title).Int("status", resp.StatusCode()).Msg("Checked series page")

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", link, err)
	}

	var found []NewInstallment
	doc.Find(".releaseDateLabel").Each(func(_ int, node *goquery.Selection) {
		text := node.Text()
		match := datePattern.FindString(text)
		if match == "" {
			c.logger.Warn().Str("series", series.Title).Str("text", strings.TrimSpace(text)).
				Msg("No release date in label node")
			return
		}

		released, err := time.Parse("2-1-2006", match)
		if err != nil {
			c.logger.Warn().Err(err).Str("series", series.Title).Str("date", match).
				Msg("Unparsable release date")
			return
		}

		// Strictly newer only: a same-day release is not new.
		if !released.After(series.LatestOwned.ReleaseDate) {
			return
		}

		title := strings.TrimSpace(node.Closest("ul").Find(".bc-heading a.bc-link").First().Text())
		if title == "" {
			c.logger.Warn().Str("series", series.Title).Msg("No heading link for release date node")
			return
		}

		found = append(found, NewInstallment{Title: title, ReleaseDate: released})
	})

	return found, nil
}

// CheckAll checks every series concurrently and gathers results in
// input order. Individual failures are logged and produce an empty
// result for that series; they never abort the batch.
func (c *Checker) CheckAll(ctx context.Context, all []library.Series) []Result {
	results := make([]Result, len(all))
	sem := make(chan struct{}, c.concurrency)

	var wg sync.WaitGroup
	for i, series := range all {
		wg.Add(1)
		go func(i int, series library.Series) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			found, err := c.Check(ctx, series)
			if err != nil {
				c.logger.Error().Err(err).Str("series", series.Title).Msg("Series check failed")
			}
			results[i] = Result{Series: series, New: found}
		}(i, series)
	}
	wg.Wait()

	return results
}
