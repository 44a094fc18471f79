package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-holiday-bot/internal/command"
	"github.com/tbourn/go-holiday-bot/internal/dates"
)

// Responder turns one inbound command text into one plain-text reply. It is
// the single orchestration point: strip mention, classify, run the matching
// workflow, render. Every path returns text; the chat platform expects a
// content reply regardless of what failed, so no error ever escapes Reply.
type Responder struct {
	Leaves *LeaveService
}

// NewResponder constructs a Responder over the given leave service.
func NewResponder(leaves *LeaveService) *Responder {
	return &Responder{Leaves: leaves}
}

// Reply handles one command from the given sender and returns the reply
// text. Decision order: empty text gets usage, then the add shape, then the
// show shape, then usage as the fallback. Expected input failures render as
// the error message plus usage; anything unexpected renders generically.
func (r *Responder) Reply(ctx context.Context, content string, senderID int64, senderName string) (reply string) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("responder panic")
			reply = genericErrorReply
		}
	}()

	content = command.StripMention(content)
	if content == "" {
		return usageText
	}

	switch cmd := command.Classify(content); cmd.Kind {
	case command.KindAdd:
		l, err := r.Leaves.Add(ctx, senderID, senderName, cmd.From, cmd.To, cmd.Reason)
		if err != nil {
			return r.errorReply(err, "add leave")
		}
		return formatAdded(l)

	case command.KindShow:
		w, rows, err := r.Leaves.Week(ctx, cmd.Week)
		if err != nil {
			return r.errorReply(err, "show leave")
		}
		return formatWeek(w, rows)

	default:
		return usageText
	}
}

// errorReply maps a workflow error to reply text. Expected failures keep
// their message; store and other internal faults are logged server-side and
// replaced by the generic reply.
func (r *Responder) errorReply(err error, op string) string {
	if isExpected(err) {
		return formatUserError(err)
	}
	log.Error().Err(err).Str("op", op).Msg("command failed")
	return genericErrorReply
}

// isExpected reports whether err is a user-correctable input or
// configuration failure, safe to echo into the chat.
func isExpected(err error) bool {
	var pe *dates.ParseError
	var we *dates.WeekSelectorError
	return errors.As(err, &pe) ||
		errors.As(err, &we) ||
		errors.Is(err, ErrEndBeforeStart) ||
		errors.Is(err, ErrStoreNotConfigured)
}
