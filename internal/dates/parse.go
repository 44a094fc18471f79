// Package dates implements the calendar logic behind the bot's commands:
// turning free-form date tokens into calendar dates and resolving week
// selectors into concrete Monday-to-Sunday windows.
//
// All returned times are calendar dates normalized to UTC midnight; no
// time-of-day component ever survives parsing. This keeps equality and
// ordering comparisons exact across the repo and the store.
package dates

import (
	"fmt"
	"time"
)

// layouts is the fixed, ordered list of accepted date formats. The first
// exact match wins; a token with trailing characters matches nothing.
var layouts = []string{
	"2Jan06",      // 14Jan26
	"2Jan2006",    // 14Jan2026
	time.DateOnly, // 2026-01-14
	"2/1/2006",    // 14/01/2026
	"2/1/06",      // 14/01/26
}

// shortYear marks the layouts whose two-digit year needs explicit century
// resolution (see nearestCentury).
var shortYear = map[string]bool{
	"2Jan06": true,
	"2/1/06": true,
}

// ParseError reports a date token that matched none of the accepted formats.
// It carries the original token so callers can echo it back to the user.
type ParseError struct {
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse date %q (try 14Jan26 or 2026-01-14)", e.Token)
}

// ParseDate converts a trimmed text token into a calendar date, trying each
// accepted format in order. It returns a *ParseError when no format matches.
//
// Two-digit years are resolved to the occurrence nearest the current date
// rather than inheriting the standard library's fixed pivot; see
// nearestCentury for the exact rule.
func ParseDate(token string) (time.Time, error) {
	return parseDateAt(token, time.Now())
}

// parseDateAt is ParseDate with an injectable "now", used for century
// resolution and by tests.
func parseDateAt(token string, now time.Time) (time.Time, error) {
	for _, layout := range layouts {
		t, err := time.Parse(layout, token)
		if err != nil {
			continue
		}
		if shortYear[layout] {
			t = nearestCentury(t, now)
		}
		return t, nil
	}
	return time.Time{}, &ParseError{Token: token}
}

// nearestCentury re-anchors a two-digit year to the occurrence closest to
// now: the resolved year always lands within [now-50, now+49]. In 2026,
// "14Jan26" is 2026-01-14 and "14Jan99" is 1999-01-14.
func nearestCentury(t, now time.Time) time.Time {
	yy := t.Year() % 100
	y := now.Year() - now.Year()%100 + yy
	switch {
	case y < now.Year()-50:
		y += 100
	case y > now.Year()+49:
		y -= 100
	}
	return time.Date(y, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
