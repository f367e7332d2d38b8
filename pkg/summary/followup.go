// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package summary

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

// defaultFollowUpDays is applied when a matched absolute date fragment
// cannot be parsed.
const defaultFollowUpDays = 7

// followUpPattern matches, anywhere in the raw notes, either an absolute
// D/D/Y date, a "next week/month/<weekday>" phrase, or an "in N
// days/weeks/months" phrase. Only the first match is used.
var followUpPattern = regexp.MustCompile(
	`(?i)(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})` +
		`|next\s+(week|month|monday|tuesday|wednesday|thursday|friday|saturday|sunday)` +
		`|in\s+(\d+)\s+(day|week|month)s?`)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var absoluteDateLayouts = []string{
	"1/2/2006",
	"1/2/06",
	"1-2-2006",
	"1-2-06",
}

// extractFollowUpDate resolves the first follow-up phrase in the raw
// notes against now and returns it as an ISO calendar date, or an empty
// string when no pattern matched.
func extractFollowUpDate(raw string, now time.Time) string {
	m := followUpPattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}

	switch {
	case m[1] != "": // absolute date
		for _, layout := range absoluteDateLayouts {
			if t, err := time.Parse(layout, m[1]); err == nil {
				return t.Format(isoDate)
			}
		}
		// Matched but unparsable, e.g. 31/31/2024.
		return now.AddDate(0, 0, defaultFollowUpDays).Format(isoDate)

	case m[2] != "": // next week/month/<weekday>
		unit := strings.ToLower(m[2])
		switch unit {
		case "week":
			return now.AddDate(0, 0, 7).Format(isoDate)
		case "month":
			return now.AddDate(0, 1, 0).Format(isoDate)
		default:
			return nextWeekday(now, weekdays[unit]).Format(isoDate)
		}

	default: // in N days/weeks/months
		n, err := strconv.Atoi(m[3])
		if err != nil {
			return now.AddDate(0, 0, defaultFollowUpDays).Format(isoDate)
		}
		switch strings.ToLower(m[4]) {
		case "day":
			return now.AddDate(0, 0, n).Format(isoDate)
		case "week":
			return now.AddDate(0, 0, n*7).Format(isoDate)
		default:
			return now.AddDate(0, n, 0).Format(isoDate)
		}
	}
}

// nextWeekday advances to the next occurrence of the target weekday,
// never resolving to the same day.
func nextWeekday(now time.Time, target time.Weekday) time.Time {
	days := (int(target) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return now.AddDate(0, 0, days)
}
