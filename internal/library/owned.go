// Package library derives the set of owned series from an Audible
// library listing.
package library

import (
	"errors"
	"fmt"
	"time"

	"github.com/jfmyers9/sequels/pkg/audible"
)

// ErrMalformedDate is returned when a library item carries a release
// date that is not a YYYY-MM-DD literal. This indicates an API contract
// change and is treated as fatal by callers.
var ErrMalformedDate = errors.New("library: malformed release date")

// Installment is a single owned book within a series. Immutable once
// constructed from API data.
type Installment struct {
	ASIN        string
	Title       string
	Subtitle    string
	ReleaseDate time.Time
}

// Series is an owned series together with the most recently released
// installment the user owns in it.
type Series struct {
	Title       string
	URL         string
	LatestOwned Installment
}

// Collection maps series title to series. Title acts as the
// de-duplication key: two distinct series sharing a title would merge.
// That mirrors the vendor data we get, it is not resolved here.
type Collection map[string]Series

// ParseReleaseDate parses a YYYY-MM-DD release date literal.
func ParseReleaseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return t, nil
}

// BuildCollection folds the library listing into a Collection.
//
// Items without series metadata are skipped. The first item seen for a
// title creates the series entry; subsequent items replace LatestOwned
// only when their release date is strictly later, so ties keep the
// first item in API return order.
func BuildCollection(items []audible.Item) (Collection, error) {
	owned := make(Collection)

	for _, item := range items {
		if len(item.Series) == 0 {
			continue
		}

		released, err := ParseReleaseDate(item.ReleaseDate)
		if err != nil {
			return nil, fmt.Errorf("item %s (%q): %w", item.ASIN, item.Title, err)
		}

		installment := Installment{
			ASIN:        item.ASIN,
			Title:       item.Title,
			Subtitle:    item.Subtitle,
			ReleaseDate: released,
		}

		ref := item.Series[0]
		existing, ok := owned[ref.Title]
		if !ok {
			owned[ref.Title] = Series{
				Title:       ref.Title,
				URL:         ref.URL,
				LatestOwned: installment,
			}
			continue
		}

		if installment.ReleaseDate.After(existing.LatestOwned.ReleaseDate) {
			existing.LatestOwned = installment
			owned[ref.Title] = existing
		}
	}

	return owned, nil
}

// FilterIgnored returns a copy of the collection without the ignored
// titles. Matching is exact and case-sensitive.
func FilterIgnored(owned Collection, ignore []string) Collection {
	ignored := make(map[string]struct{}, len(ignore))
	for _, title := range ignore {
		ignored[title] = struct{}{}
	}

	filtered := make(Collection, len(owned))
	for title, series := range owned {
		if _, skip := ignored[title]; skip {
			continue
		}
		filtered[title] = series
	}
	return filtered
}
