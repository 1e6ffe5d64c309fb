package dateutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestParseDisplayFormat - Tokens, presets and literals against a fixed date
// ---------------------------------------------------------------------------

func TestParseDisplayFormat(t *testing.T) {
	t.Parallel()

	date := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		// Tokens
		{name: "YYYY is the full year", format: "YYYY", want: "2024"},
		{name: "YY is the two-digit year", format: "YY", want: "24"},
		{name: "MMMM is the month name", format: "MMMM", want: "March"},
		{name: "MMM is the short month name", format: "MMM", want: "Mar"},
		{name: "MM is the zero-padded month", format: "MM", want: "03"},
		{name: "M is the month number", format: "M", want: "3"},
		{name: "DD is the zero-padded day", format: "DD", want: "05"},
		{name: "D is the day number", format: "D", want: "5"},

		// Combined formats
		{name: "european order", format: "DD/MM/YYYY", want: "05/03/2024"},
		{name: "long with comma", format: "MMMM D, YYYY", want: "March 5, 2024"},
		{name: "bracketed literal", format: "[Posted] MMM D", want: "Posted Mar 5"},
		{name: "other characters are literals", format: "YYYY.MM", want: "2024.03"},
		{name: "digits in brackets stay literal", format: "[Day 1 of] YYYY", want: "Day 1 of 2024"},
		{name: "layout words outside brackets stay literal", format: "Jan YYYY", want: "Jan 2024"},

		// Presets
		{name: "iso preset", format: "iso", want: "2024-03-05"},
		{name: "presets ignore case", format: "LONG", want: "March 5, 2024"},
		{name: "short preset", format: "short", want: "Mar 5, 2024"},
		{name: "us preset", format: "us", want: "03/05/2024"},

		// Errors
		{name: "empty format", format: "", wantErr: ErrInvalidDateFormat},
		{name: "unclosed bracket", format: "[Posted YYYY", wantErr: ErrInvalidDateFormat},
		{name: "too long", format: strings.Repeat("Y", MaxDateFormatLength+1), wantErr: ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l, err := ParseDisplayFormat(tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseDisplayFormat(%q) error = %v, want %v", tt.format, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDisplayFormat(%q) unexpected error: %v", tt.format, err)
			}
			if got := l.Format(date); got != tt.want {
				t.Errorf("ParseDisplayFormat(%q).Format() = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestParseDisplayFormat_UnclosedBracketPosition(t *testing.T) {
	t.Parallel()

	_, err := ParseDisplayFormat("YYYY [at")
	if err == nil || !strings.Contains(err.Error(), "position 5") {
		t.Errorf("error = %v, want position 5", err)
	}
}

func TestParsePostDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		want   time.Time
		wantOK bool
	}{
		{"2024-03-10", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), true},
		{" 2024-03-10 ", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), true},
		{"2024-3-10", time.Time{}, false},
		{"March 10, 2024", time.Time{}, false},
		{"2024-02-30", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, ok := ParsePostDate(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParsePostDate(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParsePostDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatPostDate(t *testing.T) {
	t.Parallel()

	long, err := ParseDisplayFormat("long")
	if err != nil {
		t.Fatalf("ParseDisplayFormat: %v", err)
	}

	tests := []struct {
		name   string
		date   string
		layout Layout
		want   string
	}{
		{"formats valid date", "2024-03-10", long, "March 10, 2024"},
		{"zero layout passes through", "2024-03-10", Layout{}, "2024-03-10"},
		{"unparseable date passes through", "last spring", long, "last spring"},
		{"empty date passes through", "", long, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatPostDate(tt.date, tt.layout); got != tt.want {
				t.Errorf("FormatPostDate(%q) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}
