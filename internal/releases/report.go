package releases

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mattn/go-runewidth"
)

// Report writes the grouped release report. Series without new
// installments are omitted; the remaining series are ordered by their
// earliest new release date so the soonest books come first.
//
// Within a series, titles are padded to a common display width so the
// countdown annotations line up.
func Report(w io.Writer, results []Result, now time.Time) {
	var withNew []Result
	for _, r := range results {
		if len(r.New) > 0 {
			withNew = append(withNew, r)
		}
	}

	sort.SliceStable(withNew, func(i, j int) bool {
		return earliest(withNew[i].New).Before(earliest(withNew[j].New))
	})

	for _, r := range withNew {
		fmt.Fprintf(w, "# %s\n", r.Series.Title)

		width := 0
		for _, inst := range r.New {
			if FormatCountdown(inst.ReleaseDate, now) == "" {
				continue
			}
			if tw := runewidth.StringWidth(inst.Title); tw > width {
				width = tw
			}
		}

		for _, inst := range r.New {
			countdown := FormatCountdown(inst.ReleaseDate, now)
			title := inst.Title
			if countdown != "" {
				title = runewidth.FillRight(title, width)
			}
			fmt.Fprintf(w, "- %s%s\n", title, countdown)
		}
		fmt.Fprintln(w)
	}
}

func earliest(installments []NewInstallment) time.Time {
	min := installments[0].ReleaseDate
	for _, inst := range installments[1:] {
		if inst.ReleaseDate.Before(min) {
			min = inst.ReleaseDate
		}
	}
	return min
}
