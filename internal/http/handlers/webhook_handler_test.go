package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() { gin.SetMode(gin.TestMode) }

// fakeResponder records the call it receives and returns a canned reply.
type fakeResponder struct {
	calls       int
	content     string
	senderID    int64
	senderName  string
	hadDeadline bool

	replyText string
}

func (f *fakeResponder) Reply(ctx context.Context, content string, senderID int64, senderName string) string {
	f.calls++
	f.content, f.senderID, f.senderName = content, senderID, senderName
	_, f.hadDeadline = ctx.Deadline()
	if f.replyText == "" {
		return "ok"
	}
	return f.replyText
}

func newWebhookRouter(f *fakeResponder, token string) *gin.Engine {
	r := gin.New()
	h := New(f, token, 5*time.Second)
	r.GET("/", h.Health)
	r.POST("/", h.Webhook)
	return r
}

func post(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newWebhookRouter(&fakeResponder{}, "")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["ok"] != true {
		t.Fatalf("body = %v", body)
	}
}

func TestWebhook_RepliesWithContent(t *testing.T) {
	f := &fakeResponder{replyText: "✅ done"}
	r := newWebhookRouter(f, "")

	w := post(t, r, `{"data":"show leave","message":{"sender_full_name":"Alice","sender_id":42}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var body BotReply
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Content != "✅ done" {
		t.Fatalf("content = %q", body.Content)
	}
	if f.content != "show leave" || f.senderID != 42 || f.senderName != "Alice" {
		t.Fatalf("responder saw %q/%d/%q", f.content, f.senderID, f.senderName)
	}
}

func TestWebhook_FallsBackToMessageContent(t *testing.T) {
	f := &fakeResponder{}
	r := newWebhookRouter(f, "")

	post(t, r, `{"message":{"content":"show leave"}}`)
	if f.content != "show leave" {
		t.Fatalf("content = %q, want message.content fallback", f.content)
	}
}

func TestWebhook_SenderDefaults(t *testing.T) {
	f := &fakeResponder{}
	r := newWebhookRouter(f, "")

	post(t, r, `{"data":"show leave"}`)
	if f.senderName != "Unknown" || f.senderID != 0 {
		t.Fatalf("defaults = %q/%d, want Unknown/0", f.senderName, f.senderID)
	}
}

func TestWebhook_TokenMismatchSkipsProcessing(t *testing.T) {
	f := &fakeResponder{}
	r := newWebhookRouter(f, "sekrit")

	w := post(t, r, `{"token":"wrong","data":"show leave"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body NoResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.ResponseNotRequired {
		t.Fatalf("body = %s, want response_not_required", w.Body.String())
	}
	if f.calls != 0 {
		t.Fatal("responder must not run on token mismatch")
	}
}

func TestWebhook_TokenMatchProceeds(t *testing.T) {
	f := &fakeResponder{}
	r := newWebhookRouter(f, "sekrit")

	post(t, r, `{"token":"sekrit","data":"show leave"}`)
	if f.calls != 1 {
		t.Fatalf("responder calls = %d, want 1", f.calls)
	}
}

func TestWebhook_NoTokenConfiguredSkipsCheck(t *testing.T) {
	f := &fakeResponder{}
	r := newWebhookRouter(f, "")

	post(t, r, `{"token":"anything","data":"show leave"}`)
	if f.calls != 1 {
		t.Fatalf("responder calls = %d, want 1", f.calls)
	}
}

func TestWebhook_MalformedBodyIs400(t *testing.T) {
	f := &fakeResponder{}
	r := newWebhookRouter(f, "")

	w := post(t, r, `{"data": not-json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != ErrCodeBadRequest {
		t.Fatalf("code = %q", body.Code)
	}
	if f.calls != 0 {
		t.Fatal("responder must not run on malformed body")
	}
}

func TestWebhook_BoundsStoreTimeout(t *testing.T) {
	f := &fakeResponder{}
	r := newWebhookRouter(f, "")

	post(t, r, `{"data":"show leave"}`)
	if !f.hadDeadline {
		t.Fatal("responder context should carry a deadline")
	}
}
