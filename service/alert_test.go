package service

import (
	"testing"
	"time"

	"github.com/TejasDeepLearning/tenant-dashboard-3/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassifyAlertBands(t *testing.T) {
	lockIn := "2024-06-15"

	tests := []struct {
		name  string
		today time.Time
		want  string
	}{
		{"well before window", date(2024, time.April, 10), model.AlertNone},
		{"exactly one month before", date(2024, time.May, 15), model.AlertNone},
		{"day after window opens", date(2024, time.May, 16), model.AlertApproaching},
		{"inside approaching band", date(2024, time.May, 20), model.AlertApproaching},
		{"on lock-in end date", date(2024, time.June, 15), model.AlertApproaching},
		{"day after lock-in end", date(2024, time.June, 16), model.AlertGracePeriod},
		{"inside grace period", date(2024, time.June, 20), model.AlertGracePeriod},
		{"exactly one month after", date(2024, time.July, 15), model.AlertGracePeriod},
		{"day after grace period", date(2024, time.July, 16), model.AlertOverdue},
		{"well past grace period", date(2024, time.August, 1), model.AlertOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyAlert(lockIn, tt.today)
			if got != tt.want {
				t.Errorf("ClassifyAlert(%q, %s) = %q, want %q", lockIn, tt.today.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestClassifyAlertTotality(t *testing.T) {
	today := date(2024, time.June, 1)

	inputs := []string{
		"",
		"   ",
		"not a date",
		"2024-13-45",
		"31/31/2024",
		"someday soon",
	}

	for _, input := range inputs {
		if got := ClassifyAlert(input, today); got != model.AlertNone {
			t.Errorf("ClassifyAlert(%q) = %q, want none", input, got)
		}
	}
}

func TestClassifyAlertFormatTolerance(t *testing.T) {
	// All spell 15 June 2024 and must classify identically
	today := date(2024, time.May, 20)

	inputs := []string{
		"2024-06-15",
		"15/06/2024",
		"15-06-2024",
		"2024/06/15",
		"15.06.2024",
		"2024.06.15",
		"June 15, 2024",
		"15 June 2024",
		"Jun 15, 2024",
		"15 Jun 2024",
	}

	for _, input := range inputs {
		if got := ClassifyAlert(input, today); got != model.AlertApproaching {
			t.Errorf("ClassifyAlert(%q) = %q, want approaching", input, got)
		}
	}
}

func TestParseAgreementDatePriority(t *testing.T) {
	// Ambiguous numeric dates resolve day-first
	parsed, ok := ParseAgreementDate("03/04/2024")
	if !ok {
		t.Fatal("Expected 03/04/2024 to parse")
	}
	if parsed.Day() != 3 || parsed.Month() != time.April {
		t.Errorf("Expected 3 April 2024, got %s", parsed.Format("2006-01-02"))
	}

	// Month-first only wins when day-first cannot apply
	parsed, ok = ParseAgreementDate("06/15/2024")
	if !ok {
		t.Fatal("Expected 06/15/2024 to parse")
	}
	if parsed.Day() != 15 || parsed.Month() != time.June {
		t.Errorf("Expected 15 June 2024, got %s", parsed.Format("2006-01-02"))
	}
}

func TestAddMonthsClamping(t *testing.T) {
	tests := []struct {
		start string
		n     int
		want  string
	}{
		{"2024-01-31", -1, "2023-12-31"},
		{"2024-03-31", -1, "2024-02-29"}, // leap year
		{"2023-03-31", -1, "2023-02-28"},
		{"2024-01-31", 1, "2024-02-29"},
		{"2024-05-31", 1, "2024-06-30"},
		{"2024-06-15", 1, "2024-07-15"},
		{"2024-06-15", -1, "2024-05-15"},
	}

	for _, tt := range tests {
		start, ok := ParseAgreementDate(tt.start)
		if !ok {
			t.Fatalf("Failed to parse %q", tt.start)
		}
		got := addMonths(start, tt.n).Format("2006-01-02")
		if got != tt.want {
			t.Errorf("addMonths(%s, %d) = %s, want %s", tt.start, tt.n, got, tt.want)
		}
	}
}

func TestClassifyAlertMonthEndWindow(t *testing.T) {
	// Lock-in 2024-03-31: window opens after 2024-02-29 (clamped)
	lockIn := "2024-03-31"

	if got := ClassifyAlert(lockIn, date(2024, time.February, 29)); got != model.AlertNone {
		t.Errorf("Expected none on clamped boundary, got %q", got)
	}
	if got := ClassifyAlert(lockIn, date(2024, time.March, 1)); got != model.AlertApproaching {
		t.Errorf("Expected approaching after clamped boundary, got %q", got)
	}
}
