package dates

import (
	"regexp"
	"strings"
	"time"
)

// Window is a resolved Monday-to-Sunday span plus the label used when
// rendering replies ("this week", "next week", "week of 2026-01-12").
// Windows are transient: computed per request, never persisted.
type Window struct {
	Start time.Time
	End   time.Time
	Label string
}

// WeekSelectorError reports a week selector that is neither a recognized
// keyword nor a parseable date anchor.
type WeekSelectorError struct {
	Token string
}

func (e *WeekSelectorError) Error() string {
	return "week: must be one of this|next|YYYY-MM-DD|14Jan26"
}

// alphaRE decides whether a selector token is handed to the full date parser
// (anything containing a letter) or must be strict ISO (purely numeric).
var alphaRE = regexp.MustCompile(`[A-Za-z]`)

// WeekRange returns the Monday..Sunday range containing anchor. Monday is
// day offset 0 of the week regardless of locale; the range is inclusive on
// both ends.
func WeekRange(anchor time.Time) (start, end time.Time) {
	offset := (int(anchor.Weekday()) + 6) % 7 // Sunday is 0 in time.Weekday
	start = anchor.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// ResolveWeek turns an optional selector into a Window, anchored at today
// for the relative forms:
//
//   - "", "this", "current" (case-insensitive): the week containing today.
//   - "next": the week containing today+7d.
//   - anything else: a date anchor; its surrounding week is returned with a
//     "week of <monday>" label.
//
// Unresolvable selectors yield a *WeekSelectorError.
func ResolveWeek(sel string, today time.Time) (Window, error) {
	sel = strings.TrimSpace(sel)

	switch strings.ToLower(sel) {
	case "", "this", "current":
		ws, we := WeekRange(today)
		return Window{Start: ws, End: we, Label: "this week"}, nil
	case "next":
		ws, we := WeekRange(today.AddDate(0, 0, 7))
		return Window{Start: ws, End: we, Label: "next week"}, nil
	}

	var anchor time.Time
	var err error
	if alphaRE.MatchString(sel) {
		anchor, err = ParseDate(sel)
	} else {
		anchor, err = time.Parse(time.DateOnly, sel)
	}
	if err != nil {
		return Window{}, &WeekSelectorError{Token: sel}
	}

	ws, we := WeekRange(anchor)
	return Window{Start: ws, End: we, Label: "week of " + ws.Format(time.DateOnly)}, nil
}
