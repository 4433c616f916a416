package domain

import "time"

// Contact is an address-book entry owned by a pingee. The intake service
// only reads contacts, to resolve an inbound sender to a display name.
type Contact struct {
	ContactID string    `json:"id" dynamodbav:"contact_id"`
	OwnerID   string    `json:"owner_id" dynamodbav:"owner_id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Email     *string   `json:"email,omitempty" dynamodbav:"email"`
	Phone     *string   `json:"phone,omitempty" dynamodbav:"phone"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}
