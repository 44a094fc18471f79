// Webhook HTTP handlers.
//
// Endpoints:
//   - GET  /   (health acknowledgment, no side effects)
//   - POST /   (outgoing-webhook call carrying one chat command)
//
// Handlers are transport-thin: decode the payload once, apply documented
// defaults, gate on the shared secret, and hand the text to the responder.
// Whatever the responder returns goes back as the content reply.
package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-holiday-bot/internal/sysutil"
)

// Responder produces the reply text for one inbound command. It never
// returns an error: every failure is already rendered as text.
type Responder interface {
	Reply(ctx context.Context, content string, senderID int64, senderName string) string
}

// Handlers groups the bot's HTTP endpoints.
type Handlers struct {
	responder Responder
	// token is the shared webhook secret; empty disables verification.
	token string
	// storeTimeout bounds the store round-trips behind one webhook call.
	storeTimeout time.Duration
}

// New constructs a Handlers instance bound to the given responder.
func New(responder Responder, token string, storeTimeout time.Duration) *Handlers {
	return &Handlers{responder: responder, token: token, storeTimeout: storeTimeout}
}

//
// DTOs
//

// WebhookMessage is the nested message object of the webhook payload.
type WebhookMessage struct {
	// Content is the fallback location of the raw command text.
	Content string `json:"content"`
	// SenderFullName is the display name; defaults to "Unknown" when absent.
	SenderFullName string `json:"sender_full_name"`
	// SenderID is the numeric sender identifier; defaults to 0 when absent.
	SenderID int64 `json:"sender_id"`
}

// WebhookRequest is the JSON payload of an outgoing-webhook call.
type WebhookRequest struct {
	// Token is the shared secret supplied by the platform.
	Token string `json:"token"`
	// Data is the primary location of the raw command text.
	Data string `json:"data"`
	// Message carries the sender identity and the fallback text.
	Message *WebhookMessage `json:"message"`
}

// Health answers the readiness probe with a fixed acknowledgment.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "holidaybot up"})
}

// Webhook handles one outgoing-webhook call. Structurally invalid bodies get
// a transport-level 400; a token mismatch gets the no-response signal with
// no further processing; everything else gets a 200 content reply.
func (h *Handlers) Webhook(c *gin.Context) {
	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "request body is not a valid webhook payload")
		return
	}

	if h.token != "" {
		if subtle.ConstantTimeCompare([]byte(req.Token), []byte(h.token)) != 1 {
			c.JSON(http.StatusOK, NoResponse{ResponseNotRequired: true})
			return
		}
	}

	msg := req.Message
	if msg == nil {
		msg = &WebhookMessage{}
	}
	content := sysutil.FirstNonEmpty(req.Data, msg.Content)
	senderName := msg.SenderFullName
	if senderName == "" {
		senderName = "Unknown"
	}

	ctx := c.Request.Context()
	if h.storeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.storeTimeout)
		defer cancel()
	}

	reply(c, h.responder.Reply(ctx, content, msg.SenderID, senderName))
}
