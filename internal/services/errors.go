// Package services implements the business logic of the holiday bot: adding
// leave periods, querying a week's leave, and orchestrating raw command text
// into a plain-text chat reply.
//
// This file centralizes service-level error values. Expected failures (bad
// input, missing configuration) are typed so the responder can render them
// as user-facing text; anything else is treated as an internal fault and
// rendered generically, never with store or stack detail.
package services

import "errors"

var (
	// ErrEndBeforeStart is returned when an add command's end date precedes
	// its start date. Rejected before any store write happens.
	ErrEndBeforeStart = errors.New("end date is before start date")

	// ErrStoreNotConfigured is returned when no store connection was
	// configured at startup. The bot keeps answering webhooks in this state;
	// it just cannot record or list anything.
	ErrStoreNotConfigured = errors.New("the leave store is not configured")
)
