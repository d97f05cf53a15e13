// Package releases checks Audible's public series pages for
// installments newer than the latest owned one.
package releases

import (
	"fmt"
	"strings"

	"github.com/jfmyers9/sequels/pkg/audible"
)

// ListingURL derives the public series listing page URL from the series
// URL the catalog API hands back.
//
// This is brittle string surgery tied to Audible's URL conventions and
// is kept in one place so a scheme change touches one unit:
//
//   - a relative path is absolutized against the regional storefront
//     (https://www.audible.com.au/... for region "au")
//   - a product-detail path ("/pd/") is rewritten to the series-listing
//     form ("/series/")
//   - a "-Audiobook" slug is pluralized to "-Audiobooks", which is how
//     the series listing spells it
func ListingURL(raw, region string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("releases: empty series url")
	}

	domain, err := audible.Domain(region)
	if err != nil {
		return "", err
	}

	u := raw
	u = strings.Replace(u, "/pd/", "/series/", 1)

	// Pluralization quirk: product slugs say "-Audiobook", series
	// listings say "-Audiobooks".
	if i := strings.Index(u, "-Audiobook/"); i >= 0 {
		u = u[:i] + "-Audiobooks/" + u[i+len("-Audiobook/"):]
	} else if strings.HasSuffix(u, "-Audiobook") {
		u += "s"
	}

	if strings.HasPrefix(u, "/") {
		u = "https://www." + domain + u
	}
	return u, nil
}
