package audible

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// LibraryService provides access to the user's library.
type LibraryService struct {
	client *Client
}

// List fetches the user's library in a single request.
//
// The API caps a single request; there is no pagination here, so a
// library larger than opts.NumResults is silently truncated by the
// vendor. Requires a session token.
//
// Example:
//
//	items, err := client.Library().List(ctx, audible.ListOptions{
//	    NumResults:     1000,
//	    ResponseGroups: []string{"series", "product_desc", "product_attrs"},
//	    SortBy:         "-PurchaseDate",
//	})
func (s *LibraryService) List(ctx context.Context, opts ListOptions) ([]Item, error) {
	query := url.Values{}
	if opts.NumResults > 0 {
		query.Set("num_results", strconv.Itoa(opts.NumResults))
	}
	if len(opts.ResponseGroups) > 0 {
		query.Set("response_groups", strings.Join(opts.ResponseGroups, ","))
	}
	if opts.SortBy != "" {
		query.Set("sort_by", opts.SortBy)
	}

	var resp libraryResponse
	if err := s.client.get(ctx, "/library", query, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Ping validates the current session with a minimal one-item listing.
//
// Returns ErrInvalidSession when the stored token has been rejected,
// which is the signal to fall back to interactive login.
func (s *LibraryService) Ping(ctx context.Context) error {
	_, err := s.List(ctx, ListOptions{NumResults: 1})
	return err
}
