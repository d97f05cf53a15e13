package releases

import (
	"fmt"
	"time"
)

// releaseHour is the hour of day a book typically goes live. Countdown
// math treats a date-only release as happening at this hour.
const releaseHour = 17

// FormatCountdown renders the time until a release as a suffix for the
// report line.
//
// An already released book (release at releaseHour is now or past)
// yields the empty string. A gap of one or more whole days yields
// ": in N days"; a shorter gap yields the remainder as ": in H:MM:SS".
// Pure and deterministic for a fixed now.
func FormatCountdown(release, now time.Time) string {
	at := time.Date(release.Year(), release.Month(), release.Day(),
		releaseHour, 0, 0, 0, release.Location())
	now = now.Truncate(time.Second)

	if !at.After(now) {
		return ""
	}

	diff := at.Sub(now)
	if days := int(diff.Hours()) / 24; days > 0 {
		return fmt.Sprintf(": in %d days", days)
	}

	secs := int(diff.Seconds())
	return fmt.Sprintf(": in %d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}
