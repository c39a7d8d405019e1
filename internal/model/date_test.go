package model

import (
	"testing"
	"time"
)

func TestParseDate_ZonedKeepsOffset(t *testing.T) {
	t.Parallel()

	got, err := ParseDate("date", "2018-06-01T21:44:00+02:00")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	_, offset := got.Zone()
	if offset != 2*60*60 {
		t.Fatalf("offset = %d, want +02:00", offset)
	}
}

func TestParseDate_NaiveAssumesLocal(t *testing.T) {
	t.Parallel()

	got, err := ParseDate("date", "2018-06-01T21:44:00")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	if got.Location() != time.Local {
		t.Fatalf("location = %v, want local", got.Location())
	}
	want := time.Date(2018, 6, 1, 21, 44, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseDate_DateOnly(t *testing.T) {
	t.Parallel()

	if _, err := ParseDate("date", "2018-06-01"); err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
}

func TestParseDate_FieldNameInMessage(t *testing.T) {
	t.Parallel()

	_, err := ParseDate("until_date", "garbage")
	if err == nil {
		t.Fatal("expected error for bad until_date")
	}
	want := "Invalid 'until_date' provided, please use ISO-8601 standard"
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestRound2(t *testing.T) {
	t.Parallel()

	cases := map[float64]float64{
		85.607: 85.61,
		85.604: 85.60,
		85.605: 85.61,
		1000:   1000,
	}
	for in, want := range cases {
		if got := Round2(in); got != want {
			t.Fatalf("Round2(%v) = %v, want %v", in, got, want)
		}
	}
}
