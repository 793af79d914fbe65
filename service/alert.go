package service

import (
	"strings"
	"time"

	"github.com/TejasDeepLearning/tenant-dashboard-3/model"
)

// dateLayouts are tried in order; the first successful parse wins.
// Ambiguous numeric dates resolve by this priority (day-first before
// month-first), not by locale.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"2006/01/02",
	"01-02-2006",
	"02.01.2006",
	"2006.01.02",
	"January 2, 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseAgreementDate parses a free-text date in any of the supported
// layouts. Returns false if the text is empty or matches no layout.
func ParseAgreementDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// ClassifyAlert maps a lock-in end date against today. The function is
// total: unparseable or empty input is the no-alert state, never an error.
//
// Bands (boundaries inclusive, first match wins):
//
//	today <= lockIn-1m             -> none
//	lockIn-1m < today <= lockIn    -> approaching
//	lockIn < today <= lockIn+1m    -> grace_period
//	today > lockIn+1m              -> overdue
func ClassifyAlert(dateText string, today time.Time) string {
	lockIn, ok := ParseAgreementDate(dateText)
	if !ok {
		return model.AlertNone
	}

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	oneMonthBefore := addMonths(lockIn, -1)
	oneMonthAfter := addMonths(lockIn, 1)

	switch {
	case !day.After(oneMonthBefore):
		return model.AlertNone
	case !day.After(lockIn):
		return model.AlertApproaching
	case !day.After(oneMonthAfter):
		return model.AlertGracePeriod
	default:
		return model.AlertOverdue
	}
}

// addMonths shifts t by n calendar months, clamping the day of month to
// the last valid day of the target month (Jan 31 - 1m -> Dec 31,
// Mar 31 - 1m -> Feb 28/29).
func addMonths(t time.Time, n int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)
}
