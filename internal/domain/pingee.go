package domain

import (
	"strings"
	"time"
)

// Pingee is a recipient account that publishes a contact link.
// Pingers reach the intake page through LinkSlug, never through PingeeID.
type Pingee struct {
	PingeeID     string        `json:"id" dynamodbav:"pingee_id"`
	LinkSlug     string        `json:"link_slug" dynamodbav:"link_slug"`
	DisplayName  string        `json:"display_name" dynamodbav:"display_name"`
	Timezone     string        `json:"timezone" dynamodbav:"timezone"`
	Trust        TrustSettings `json:"trust" dynamodbav:"trust"`
	ReplyWindows []ReplyWindow `json:"reply_windows" dynamodbav:"reply_windows"`
	CreatedAt    time.Time     `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time     `json:"updated" dynamodbav:"updated_at"`
}

// ReplyWindow is an availability window during which the pingee commits to replying.
type ReplyWindow struct {
	Day   string `json:"day" dynamodbav:"day"`
	Start string `json:"start" dynamodbav:"start"` // "HH:MM"
	End   string `json:"end" dynamodbav:"end"`
}

// TrustSettings gates whether inbound submissions need a verified contact.
// RateLimit is an opaque policy blob carried for the frontend; nothing in
// the intake path enforces it.
type TrustSettings struct {
	VerifiedOnly bool   `json:"verified_only" dynamodbav:"verified_only"`
	VerifyMethod string `json:"verify_method" dynamodbav:"verify_method"`
	RateLimit    string `json:"rate_limit" dynamodbav:"rate_limit"`
}

// RequiresVerification reports whether a submission to this recipient must
// carry a validated one-time code.
func (t TrustSettings) RequiresVerification() bool {
	return t.VerifiedOnly
}

// AnonymousFrom is the sender recorded when a non-verifying recipient
// receives a submission without a contact.
const AnonymousFrom = "anonymous"

// EffectiveFrom computes the sender identity stored on a new request.
// Verifying recipients demand a non-empty contact; for everyone else an
// empty contact falls back to AnonymousFrom.
func (t TrustSettings) EffectiveFrom(contact string) (string, bool) {
	c := strings.TrimSpace(contact)
	if t.VerifiedOnly {
		return c, c != ""
	}
	if c == "" {
		return AnonymousFrom, true
	}
	return c, true
}
