package util

import (
	"testing"
	"time"
)

func TestNormalizePage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		page, perPage     int
		wantPage, wantPer int
	}{
		{name: "defaults", page: 0, perPage: 0, wantPage: 1, wantPer: DefaultPerPage},
		{name: "negative", page: -3, perPage: -1, wantPage: 1, wantPer: DefaultPerPage},
		{name: "kept", page: 4, perPage: 25, wantPage: 4, wantPer: 25},
		{name: "capped", page: 2, perPage: 1000, wantPage: 2, wantPer: MaxPerPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page, perPage := NormalizePage(tt.page, tt.perPage)
			if page != tt.wantPage || perPage != tt.wantPer {
				t.Fatalf("NormalizePage(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.perPage, page, perPage, tt.wantPage, tt.wantPer)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total   int64
		perPage int
		want    int
	}{
		{total: 0, perPage: 10, want: 0},
		{total: 1, perPage: 10, want: 1},
		{total: 10, perPage: 10, want: 1},
		{total: 11, perPage: 10, want: 2},
		{total: 5, perPage: 0, want: 0},
	}

	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.perPage); got != tt.want {
			t.Fatalf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.perPage, got, tt.want)
		}
	}
}

func TestCalendarBoundaries(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC-3", -3*60*60)
	ts := time.Date(2024, time.March, 15, 22, 30, 5, 99, loc)

	if got, want := StartOfDay(ts), time.Date(2024, time.March, 15, 0, 0, 0, 0, loc); !got.Equal(want) {
		t.Fatalf("StartOfDay = %v, want %v", got, want)
	}
	if got, want := StartOfMonth(ts), time.Date(2024, time.March, 1, 0, 0, 0, 0, loc); !got.Equal(want) {
		t.Fatalf("StartOfMonth = %v, want %v", got, want)
	}
	if got := StartOfDay(ts).Location(); got != loc {
		t.Fatalf("StartOfDay location = %v, want %v", got, loc)
	}
}

func TestMonthAbbreviation(t *testing.T) {
	t.Parallel()

	for m, want := range map[time.Month]string{time.January: "JAN", time.May: "MAY", time.December: "DEC"} {
		if got := MonthAbbreviation(m); got != want {
			t.Fatalf("MonthAbbreviation(%v) = %q, want %q", m, got, want)
		}
	}
}
