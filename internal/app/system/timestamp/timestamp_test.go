package timestamp

import (
	"sort"
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	ts := time.Date(2024, 3, 5, 9, 7, 3, 120000000, time.UTC)
	if got, want := Format(ts), "2024-03-05T09:07:03.120000"; got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}

	loc := time.FixedZone("UTC+2", 2*60*60)
	local := time.Date(2024, 3, 5, 11, 7, 3, 0, loc)
	if got, want := Format(local), "2024-03-05T09:07:03.000000"; got != want {
		t.Errorf("Format(non-UTC) = %q, want %q", got, want)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in        string
		wantYear  int
		wantMonth time.Month
		wantDay   int
	}{
		{"2024-03-05T10:11:12.123456", 2024, time.March, 5},
		{"2024-03-05T10:11:12", 2024, time.March, 5},
		{"2024-03-05T10:11:12Z", 2024, time.March, 5},
		{"2024-03-05T10:11:12.5Z", 2024, time.March, 5},
		{"2024-03-05T10:11:12+05:30", 2024, time.March, 5},
		{"2024-03-31T23:59:59-08:00", 2024, time.March, 31},
		{"2024-03-05 10:11:12", 2024, time.March, 5},
		{"2024-03-05T10:11", 2024, time.March, 5},
		{"2024-03-05", 2024, time.March, 5},
		{"  2024-02-20T00:00:00  ", 2024, time.February, 20},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if got.Year() != tt.wantYear || got.Month() != tt.wantMonth || got.Day() != tt.wantDay {
				t.Errorf("Parse(%q) = %v", tt.in, got)
			}
		})
	}
}

func TestParse_Unparsable(t *testing.T) {
	for _, in := range []string{"", "   ", "yesterday", "2024-13-01", "03/05/2024", "2024-03"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) expected error", in)
		}
	}
}

func TestParse_OffsetKeepsLocalMonth(t *testing.T) {
	// 2024-03-31T23:30-08:00 is April in UTC but March where it was written.
	got, err := Parse("2024-03-31T23:30:00-08:00")
	if err != nil {
		t.Fatal(err)
	}
	ref := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !SameMonth(got, ref) {
		t.Errorf("expected March, got %v", got)
	}
}

func TestFormat_SortsChronologically(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var vals []string
	for _, d := range []time.Duration{72 * time.Hour, time.Second, 30 * 24 * time.Hour, time.Millisecond} {
		vals = append(vals, Format(base.Add(d)))
	}
	sorted := append([]string(nil), vals...)
	sort.Strings(sorted)
	want := []string{vals[3], vals[1], vals[0], vals[2]}
	for i := range want {
		if sorted[i] != want[i] {
			t.Fatalf("lexicographic order %v, want %v", sorted, want)
		}
	}
}

func TestFormat_CutoffAgainstFractionlessValues(t *testing.T) {
	cutoff := Format(time.Date(2024, 2, 14, 12, 0, 0, 0, time.UTC)) // "...T12:00:00.000000"

	tests := []struct {
		stored string
		after  bool
	}{
		{"2024-02-14T12:00:01", true},
		{"2024-02-15T00:00:00", true},
		{"2024-02-14T12:00:00", false}, // same instant is not after
		{"2024-02-14T11:59:59", false},
		{"2024-02-14T12:00:00.000001", true},
	}
	for _, tt := range tests {
		if got := tt.stored > cutoff; got != tt.after {
			t.Errorf("%q > %q = %v, want %v", tt.stored, cutoff, got, tt.after)
		}
	}
}
