package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/tbourn/go-holiday-bot/internal/dates"
	"github.com/tbourn/go-holiday-bot/internal/domain"
)

// usageText is the help reply, sent for empty or unrecognized commands and
// appended to every input-error reply.
const usageText = "Commands:\n" +
	"• add leave from:14Jan26 to:16Jan26 reason:\"study leave\"\n" +
	"• show leave\n" +
	"• show leave week:this | week:next | week:2026-01-14\n"

// genericErrorReply deliberately carries no internal detail: store errors and
// panics must not leak SQL text or stack traces into a chat room.
const genericErrorReply = "❌ Something went wrong while handling your command. Please try again later."

// Usage returns the bot's help text.
func Usage() string { return usageText }

// formatAdded renders the confirmation for a freshly stored leave.
func formatAdded(l *domain.Leave) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Added leave #%d for %s: %s → %s",
		l.ID, l.UserName, isoDate(l.StartDate), isoDate(l.EndDate))
	if l.Reason != "" {
		fmt.Fprintf(&b, " (%q)", l.Reason)
	}
	return b.String()
}

// formatWeek renders a week query result: either the "nothing recorded"
// message or a header plus one line per leave, in store order.
func formatWeek(w dates.Window, rows []domain.Leave) string {
	bounds := fmt.Sprintf("%s (%s → %s)", w.Label, isoDate(w.Start), isoDate(w.End))
	if len(rows) == 0 {
		return fmt.Sprintf("No leave recorded for %s.", bounds)
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, fmt.Sprintf("Leave for %s:", bounds))
	for _, l := range rows {
		line := fmt.Sprintf("- %s: %s → %s", l.UserName, isoDate(l.StartDate), isoDate(l.EndDate))
		if l.Reason != "" {
			line += fmt.Sprintf(" — %q", l.Reason)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// formatUserError renders an expected input failure: the failure marker, the
// error's own message, then the usage text.
func formatUserError(err error) string {
	return "❌ " + err.Error() + "\n\n" + usageText
}

func isoDate(t time.Time) string { return t.Format(time.DateOnly) }
