package library

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfmyers9/sequels/pkg/audible"
)

func seriesItem(asin, title, date, seriesTitle string) audible.Item {
	return audible.Item{
		ASIN:        asin,
		Title:       title,
		ReleaseDate: date,
		Series:      []audible.SeriesRef{{Title: seriesTitle, URL: "/pd/" + seriesTitle + "-Audiobook/S001"}},
	}
}

func TestParseReleaseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "valid", input: "2021-01-01", want: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "wrong order", input: "01-01-2021", wantErr: true},
		{name: "not a date", input: "soon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReleaseDate(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformedDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestBuildCollection_KeepsLatestOwned(t *testing.T) {
	// Latest must win regardless of input order.
	orders := map[string][]audible.Item{
		"oldest first": {
			seriesItem("B001", "Saga Book 1", "2019-01-01", "Saga"),
			seriesItem("B002", "Saga Book 2", "2021-01-01", "Saga"),
		},
		"newest first": {
			seriesItem("B002", "Saga Book 2", "2021-01-01", "Saga"),
			seriesItem("B001", "Saga Book 1", "2019-01-01", "Saga"),
		},
	}

	for name, items := range orders {
		t.Run(name, func(t *testing.T) {
			owned, err := BuildCollection(items)
			require.NoError(t, err)
			require.Len(t, owned, 1)
			assert.Equal(t, "Saga Book 2", owned["Saga"].LatestOwned.Title)
			assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), owned["Saga"].LatestOwned.ReleaseDate)
		})
	}
}

func TestBuildCollection_TieKeepsFirstSeen(t *testing.T) {
	owned, err := BuildCollection([]audible.Item{
		seriesItem("B001", "Twin A", "2020-05-05", "Saga"),
		seriesItem("B002", "Twin B", "2020-05-05", "Saga"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Twin A", owned["Saga"].LatestOwned.Title)
}

func TestBuildCollection_SkipsItemsWithoutSeries(t *testing.T) {
	owned, err := BuildCollection([]audible.Item{
		{ASIN: "B001", Title: "Standalone", ReleaseDate: "2020-01-01"},
		seriesItem("B002", "Foo Book 1", "2020-01-01", "Foo"),
	})
	require.NoError(t, err)
	assert.Len(t, owned, 1)
	assert.Contains(t, owned, "Foo")
}

func TestBuildCollection_MalformedDateIsFatal(t *testing.T) {
	_, err := BuildCollection([]audible.Item{
		seriesItem("B001", "Foo Book 1", "not-a-date", "Foo"),
	})
	require.ErrorIs(t, err, ErrMalformedDate)
	// The offending item is named so the failure is actionable.
	assert.Contains(t, err.Error(), "B001")
}

func TestBuildCollection_SeriesURLFromFirstItem(t *testing.T) {
	items := []audible.Item{
		{
			ASIN: "B001", Title: "Foo Book 1", ReleaseDate: "2019-01-01",
			Series: []audible.SeriesRef{{Title: "Foo", URL: "/pd/Foo-Audiobook/S001"}},
		},
		{
			ASIN: "B002", Title: "Foo Book 2", ReleaseDate: "2021-01-01",
			Series: []audible.SeriesRef{{Title: "Foo", URL: "/pd/Foo-Audiobook/S001-other"}},
		},
	}

	owned, err := BuildCollection(items)
	require.NoError(t, err)
	assert.Equal(t, "/pd/Foo-Audiobook/S001", owned["Foo"].URL)
	assert.Equal(t, "Foo Book 2", owned["Foo"].LatestOwned.Title)
}

func TestFilterIgnored(t *testing.T) {
	owned := Collection{
		"Bar": {Title: "Bar"},
		"Baz": {Title: "Baz"},
	}

	filtered := FilterIgnored(owned, []string{"Bar"})
	assert.Len(t, filtered, 1)
	assert.Contains(t, filtered, "Baz")
	assert.NotContains(t, filtered, "Bar")

	// Original collection is untouched.
	assert.Len(t, owned, 2)
}

func TestFilterIgnored_ExactMatchOnly(t *testing.T) {
	owned := Collection{
		"Bar":     {Title: "Bar"},
		"bar":     {Title: "bar"},
		"Bar Two": {Title: "Bar Two"},
	}

	filtered := FilterIgnored(owned, []string{"Bar"})
	assert.Len(t, filtered, 2)
	assert.Contains(t, filtered, "bar")
	assert.Contains(t, filtered, "Bar Two")
}

func TestFilterIgnored_EmptyIgnoreList(t *testing.T) {
	owned := Collection{"Foo": {Title: "Foo"}}
	filtered := FilterIgnored(owned, nil)
	assert.Equal(t, owned, filtered)
}
