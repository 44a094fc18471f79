// Package handlers implements the HTTP endpoints of the holiday bot: the
// webhook that receives chat commands and the health probe.
//
// This file defines the response utilities shared by the endpoints. Replies
// to well-formed webhook calls are always 200 with a content body, because
// the chat platform renders whatever comes back; the structured error
// envelope is reserved for transport-level failures (malformed JSON, no such
// route) where no reply-shaped content can be assumed.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-holiday-bot/internal/http/middleware"
)

// ErrorResponse is the error envelope for transport-level failures.
//
// Fields:
//   - RequestID: correlation ID echoed from X-Request-ID, to match server
//     logs with client-side errors.
//   - Code: stable machine-readable string (see errors.go).
//   - Message: human-readable description, safe for display.
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// BotReply is the body the chat platform displays: a single plain-text
// content field. Emoji and arrow characters pass through as literals.
type BotReply struct {
	Content string `json:"content"`
}

// NoResponse tells the platform not to expect or display a reply. Sent when
// webhook token verification fails.
type NoResponse struct {
	ResponseNotRequired bool `json:"response_not_required"`
}

// fail aborts the request with a structured error envelope and logs
// server-side (5xx) failures with request context.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail(), used by router fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// reply writes the 200 content body the chat platform expects.
func reply(c *gin.Context, text string) {
	c.JSON(http.StatusOK, BotReply{Content: text})
}
