package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tbourn/go-holiday-bot/internal/domain"
)

func newTestResponder(t *testing.T, fr *fakeLeaveRepo) *Responder {
	t.Helper()
	return NewResponder(newTestService(t, fr))
}

func TestReply_EmptyAndUnknownGetUsage(t *testing.T) {
	r := newTestResponder(t, &fakeLeaveRepo{})

	for _, text := range []string{"", "   ", "@**Holiday Bot**", "what can you do?"} {
		got := r.Reply(context.Background(), text, 1, "A")
		if got != Usage() {
			t.Fatalf("Reply(%q) = %q, want usage text", text, got)
		}
	}
}

func TestReply_AddConfirmation(t *testing.T) {
	r := newTestResponder(t, &fakeLeaveRepo{})

	got := r.Reply(context.Background(), `add leave from:14Jan26 to:16Jan26 reason:"study leave"`, 42, "Alice")
	want := `✅ Added leave #7 for Alice: 2026-01-14 → 2026-01-16 ("study leave")`
	if got != want {
		t.Fatalf("reply = %q, want %q", got, want)
	}
}

func TestReply_AddWithoutReasonOmitsParens(t *testing.T) {
	r := newTestResponder(t, &fakeLeaveRepo{})

	got := r.Reply(context.Background(), "add leave from:14Jan26 to:16Jan26", 42, "Alice")
	if strings.Contains(got, "(") {
		t.Fatalf("reply %q should not contain a reason suffix", got)
	}
	if !strings.HasPrefix(got, "✅ Added leave #7 for Alice") {
		t.Fatalf("reply = %q", got)
	}
}

func TestReply_MentionPrefixStripped(t *testing.T) {
	r := newTestResponder(t, &fakeLeaveRepo{})

	bare := r.Reply(context.Background(), "show leave", 1, "A")
	mentioned := r.Reply(context.Background(), "@**Holiday Bot** show leave", 1, "A")
	if bare != mentioned {
		t.Fatalf("mention-stripped reply %q differs from bare %q", mentioned, bare)
	}
}

func TestReply_AddValidationErrorShowsMessageAndUsage(t *testing.T) {
	fr := &fakeLeaveRepo{}
	r := newTestResponder(t, fr)

	got := r.Reply(context.Background(), "add leave from:16Jan26 to:14Jan26", 1, "A")
	if !strings.HasPrefix(got, "❌ ") {
		t.Fatalf("reply %q missing failure marker", got)
	}
	if !strings.Contains(got, ErrEndBeforeStart.Error()) || !strings.Contains(got, "Commands:") {
		t.Fatalf("reply %q should carry the message and usage", got)
	}
	if fr.insertCalls != 0 {
		t.Fatal("no store write may happen for an invalid period")
	}
}

func TestReply_AddBadDateShowsToken(t *testing.T) {
	r := newTestResponder(t, &fakeLeaveRepo{})

	got := r.Reply(context.Background(), "add leave from:14Jab26 to:16Jan26", 1, "A")
	if !strings.Contains(got, `"14Jab26"`) {
		t.Fatalf("reply %q should echo the bad token", got)
	}
}

func TestReply_ShowEmptyWeek(t *testing.T) {
	r := newTestResponder(t, &fakeLeaveRepo{}) // clock fixed to Wed 2026-01-14

	got := r.Reply(context.Background(), "show leave week:next", 1, "A")
	want := "No leave recorded for next week (2026-01-19 → 2026-01-25)."
	if got != want {
		t.Fatalf("reply = %q, want %q", got, want)
	}
}

func TestReply_ShowListsRowsInStoreOrder(t *testing.T) {
	fr := &fakeLeaveRepo{listRows: []domain.Leave{
		{UserName: "Ann", StartDate: day(2026, 1, 12), EndDate: day(2026, 1, 13), Reason: "offsite"},
		{UserName: "Bob", StartDate: day(2026, 1, 14), EndDate: day(2026, 1, 16)},
	}}
	r := newTestResponder(t, fr)

	got := r.Reply(context.Background(), "show leave", 1, "A")
	want := "Leave for this week (2026-01-12 → 2026-01-18):\n" +
		`- Ann: 2026-01-12 → 2026-01-13 — "offsite"` + "\n" +
		"- Bob: 2026-01-14 → 2026-01-16"
	if got != want {
		t.Fatalf("reply = %q, want %q", got, want)
	}
}

func TestReply_ShowBadWeekSelector(t *testing.T) {
	r := newTestResponder(t, &fakeLeaveRepo{})

	got := r.Reply(context.Background(), "show leave week:whenever", 1, "A")
	if !strings.Contains(got, "this|next|YYYY-MM-DD|14Jan26") {
		t.Fatalf("reply %q should enumerate accepted selectors", got)
	}
}

func TestReply_StoreFailureIsGeneric(t *testing.T) {
	fr := &fakeLeaveRepo{insertErr: errors.New(`pq: connection refused host=db.internal`)}
	r := newTestResponder(t, fr)

	got := r.Reply(context.Background(), "add leave from:14Jan26 to:16Jan26", 1, "A")
	if got != genericErrorReply {
		t.Fatalf("reply = %q, want generic error", got)
	}
	if strings.Contains(got, "db.internal") {
		t.Fatalf("reply leaks store detail: %q", got)
	}
}

func TestReply_StoreNotConfigured(t *testing.T) {
	s := NewLeaveService(nil, time.UTC)
	s.Repo = &fakeLeaveRepo{}
	r := NewResponder(s)

	got := r.Reply(context.Background(), "show leave", 1, "A")
	if !strings.Contains(got, ErrStoreNotConfigured.Error()) {
		t.Fatalf("reply = %q, want configuration error text", got)
	}
}

func TestReply_PanicStillAnswers(t *testing.T) {
	r := newTestResponder(t, &fakeLeaveRepo{})
	r.Leaves = nil // forces a nil-pointer panic inside the add branch

	got := r.Reply(context.Background(), "add leave from:14Jan26 to:16Jan26", 1, "A")
	if got != genericErrorReply {
		t.Fatalf("reply = %q, want generic error", got)
	}
}
