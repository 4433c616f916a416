package domain

import "time"

// Request is a single intake request from a pinger to a pingee.
// From holds the pinger's contact string (email, phone, or "anonymous").
// IsVerified is fixed at creation and never changes afterwards.
type Request struct {
	RequestID   string        `json:"id" dynamodbav:"request_id"`
	From        string        `json:"from" dynamodbav:"from"`
	To          string        `json:"to" dynamodbav:"to"`
	Type        string        `json:"type" dynamodbav:"type"`
	IsVerified  bool          `json:"is_verified" dynamodbav:"is_verified"`
	Message     string        `json:"message" dynamodbav:"message"`
	Attachments []Attachment  `json:"attachments,omitempty" dynamodbav:"attachments"`
	Reply       []string      `json:"reply" dynamodbav:"reply"`
	Status      RequestStatus `json:"status" dynamodbav:"status"`
	Received    time.Time     `json:"received" dynamodbav:"received"`
}

// RequestStatus is the request lifecycle state. The four flags form a
// monotonic lattice: each is only ever set to true, never cleared.
//
//   - Received: set at creation, always true.
//   - InReply:  set when the owner first fetches the full detail view.
//   - Replied:  set when a reply is appended.
//   - Closed:   set by the archive action. Advisory only; a closed request
//     stays readable and repliable.
type RequestStatus struct {
	Received bool `json:"received" dynamodbav:"received"`
	InReply  bool `json:"inreply" dynamodbav:"inreply"`
	Replied  bool `json:"replied" dynamodbav:"replied"`
	Closed   bool `json:"closed" dynamodbav:"closed"`
}

// Attachment references an uploaded object attached to a request.
type Attachment struct {
	Name string `json:"name" dynamodbav:"name"`
	Key  string `json:"key" dynamodbav:"key"`
}

// RequestSummary is the list-view projection. Summary reads never touch
// lifecycle flags.
type RequestSummary struct {
	RequestID string    `json:"id"`
	From      string    `json:"from"`
	FromName  string    `json:"from_name,omitempty"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Received  time.Time `json:"received"`
}

// PublicRequestStatus is the unauthenticated status projection a pinger can
// poll by request id.
type PublicRequestStatus struct {
	RequestID string        `json:"id"`
	Type      string        `json:"type"`
	Received  time.Time     `json:"received"`
	Status    RequestStatus `json:"status"`
}

// QueueSummaryEntry is a per-purpose counter for the inbox overview.
// Color is presentation-only, derived from the type label.
type QueueSummaryEntry struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
	Color string `json:"color"`
}
