package releases

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfmyers9/sequels/internal/library"
)

func TestReport(t *testing.T) {
	now := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

	results := []Result{
		{
			Series: library.Series{Title: "Later Saga"},
			New: []NewInstallment{
				{Title: "Later Saga Book 9", ReleaseDate: time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)},
			},
		},
		{
			Series: library.Series{Title: "Quiet Series"},
			New:    nil,
		},
		{
			Series: library.Series{Title: "Sooner Saga"},
			New: []NewInstallment{
				{Title: "Sooner Saga Book 2", ReleaseDate: time.Date(2023, 6, 10, 0, 0, 0, 0, time.UTC)},
				{Title: "Out Already", ReleaseDate: time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)},
			},
		},
	}

	var buf bytes.Buffer
	Report(&buf, results, now)
	out := buf.String()

	// Series with nothing new are omitted entirely.
	assert.NotContains(t, out, "Quiet Series")

	// Sooner releases come first.
	sooner := strings.Index(out, "# Sooner Saga")
	later := strings.Index(out, "# Later Saga")
	require.GreaterOrEqual(t, sooner, 0)
	require.GreaterOrEqual(t, later, 0)
	assert.Less(t, sooner, later)

	// Pending books carry a countdown, released ones do not.
	assert.Contains(t, out, "- Sooner Saga Book 2: in 9 days")
	assert.Contains(t, out, "- Out Already\n")
	assert.Contains(t, out, "- Later Saga Book 9: in 61 days")

	// Each series block ends with a blank separator line.
	assert.Contains(t, out, "days\n\n")
}

func TestReport_AllQuiet(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, []Result{
		{Series: library.Series{Title: "Quiet"}, New: nil},
	}, time.Now())
	assert.Empty(t, buf.String())
}

func TestReport_AlignsCountdowns(t *testing.T) {
	now := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

	results := []Result{
		{
			Series: library.Series{Title: "Saga"},
			New: []NewInstallment{
				{Title: "Short", ReleaseDate: time.Date(2023, 6, 10, 0, 0, 0, 0, time.UTC)},
				{Title: "A Much Longer Title", ReleaseDate: time.Date(2023, 6, 20, 0, 0, 0, 0, time.UTC)},
			},
		},
	}

	var buf bytes.Buffer
	Report(&buf, results, now)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	// Both countdown annotations start at the same column.
	shortCol := strings.Index(lines[1], ": in")
	longCol := strings.Index(lines[2], ": in")
	assert.Equal(t, shortCol, longCol)
}
