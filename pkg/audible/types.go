package audible

import (
	"time"
)

// Session is a persisted, reusable authentication session.
type Session struct {
	Token     string    `json:"token"`      // Bearer token for authenticated requests
	Region    string    `json:"region"`     // Region the session was issued for
	CreatedAt time.Time `json:"created_at"` // When the session was obtained
}

// SeriesRef is the series metadata attached to a library item.
type SeriesRef struct {
	ASIN  string `json:"asin"`
	Title string `json:"title"`
	URL   string `json:"url"` // Storefront path, usually relative (e.g. "/pd/...")
}

// Item is a single item in the user's library.
//
// ReleaseDate is left as the wire string (YYYY-MM-DD); parsing is the
// caller's concern since a malformed value is a contract violation the
// caller decides how to treat.
type Item struct {
	ASIN        string      `json:"asin"`
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle,omitempty"`
	ReleaseDate string      `json:"release_date"`
	Series      []SeriesRef `json:"series,omitempty"`
}

// ListOptions control a library listing request.
type ListOptions struct {
	NumResults     int      // Maximum items to return (API caps a single request; no pagination)
	ResponseGroups []string // Metadata groups to include (e.g. "series", "product_desc", "product_attrs")
	SortBy         string   // Sort key (e.g. "-PurchaseDate", "Author")
}

// libraryResponse is the wire shape of a library listing.
type libraryResponse struct {
	Items []Item `json:"items"`
}

// loginRequest is the wire shape of a sign-in attempt.
type loginRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	ChallengeID   string `json:"challenge_id,omitempty"`
	CaptchaAnswer string `json:"captcha_answer,omitempty"`
}

// loginResponse is the wire shape of a sign-in result. A challenge
// response carries CaptchaURL and ChallengeID instead of Token.
type loginResponse struct {
	Token       string `json:"token,omitempty"`
	CaptchaURL  string `json:"captcha_url,omitempty"`
	ChallengeID string `json:"challenge_id,omitempty"`
	Message     string `json:"message,omitempty"`
}
