// Package command recognizes and decomposes the two chat commands the bot
// understands. The grammar is intentionally small and fixed:
//
//	add leave from:<token> to:<token> [reason:<rest of line>]
//	show leave [week:<token>]
//
// Classification is the only way raw message text enters the system; callers
// never inspect text themselves, they switch on the returned Kind.
package command

import (
	"regexp"
	"strings"
)

// Kind tags the result of classifying a message.
type Kind int

const (
	// KindUnknown marks text that matched neither command shape.
	KindUnknown Kind = iota
	// KindAdd marks an "add leave" command.
	KindAdd
	// KindShow marks a "show leave" command.
	KindShow
)

// Command is the decomposed form of a recognized message. Only the fields
// belonging to the Kind are populated; all values are raw tokens, still to
// be parsed and validated downstream.
type Command struct {
	Kind Kind

	// Add fields: raw date tokens and the uncleaned reason capture.
	From   string
	To     string
	Reason string

	// Show field: raw week selector, empty when omitted.
	Week string
}

// Keywords are case-insensitive and the shapes are anchored start-to-end, so
// surrounding garbage disqualifies a message rather than being ignored.
var (
	addRE = regexp.MustCompile(`(?i)^\s*add\s+leave\s+from:(\S+)\s+to:(\S+)(?:\s+reason:(.+))?\s*$`)

	showRE = regexp.MustCompile(`(?i)^\s*show\s+leave(?:\s+week:(\S+))?\s*$`)

	// mentionRE matches the platform's leading bot mention, e.g. "@**Holiday Bot** ".
	mentionRE = regexp.MustCompile(`^@\*\*[^*]+\*\*\s*`)
)

// StripMention removes one leading bot-mention marker, if present, and trims
// the remainder. The mention is not required to be present.
func StripMention(text string) string {
	loc := mentionRE.FindStringIndex(text)
	if loc != nil {
		text = text[loc[1]:]
	}
	return strings.TrimSpace(text)
}

// Classify matches text (already mention-stripped) against the two command
// shapes and returns the decomposed command. Text matching neither shape
// comes back as KindUnknown.
func Classify(text string) Command {
	if m := addRE.FindStringSubmatch(text); m != nil {
		return Command{Kind: KindAdd, From: m[1], To: m[2], Reason: m[3]}
	}
	if m := showRE.FindStringSubmatch(text); m != nil {
		return Command{Kind: KindShow, Week: m[1]}
	}
	return Command{Kind: KindUnknown}
}

// CleanReason normalizes a raw reason capture: trim, strip a single matching
// pair of straight double or single quotes, trim again. Interior quotes are
// passed through verbatim; there is no un-escaping.
func CleanReason(raw string) string {
	r := strings.TrimSpace(raw)
	if len(r) >= 2 {
		if (r[0] == '"' && r[len(r)-1] == '"') || (r[0] == '\'' && r[len(r)-1] == '\'') {
			r = strings.TrimSpace(r[1 : len(r)-1])
		}
	}
	return r
}
