// Package inbox implements the recipient's view of the request lifecycle:
// overview, detail (which marks inreply), reply, and archive.
package inbox

import (
	"context"
	"fmt"
	"strings"

	"github.com/frontdoor-labs/frontdoor-api/internal/domain"
)

// Overview is the inbox landing payload: per-purpose counters, the pingee's
// reply windows, and the request list, newest first.
type Overview struct {
	QueueSummary []domain.QueueSummaryEntry `json:"queueSummary"`
	Windows      []domain.ReplyWindow       `json:"windows"`
	Requests     []domain.RequestSummary    `json:"requests"`
}

// Detail is the full request view.
type Detail struct {
	domain.Request
	FromName string `json:"from_name,omitempty"`
	Color    string `json:"color"`
}

type Service interface {
	Overview(ctx context.Context, pingeeID string) (*Overview, error)
	// Get returns the full request detail. As a side effect it marks
	// status.inreply; list reads never do.
	Get(ctx context.Context, pingeeID, requestID string) (*Detail, error)
	Reply(ctx context.Context, pingeeID, requestID, text string) error
	Archive(ctx context.Context, pingeeID, requestID string) error
	// PublicStatus is the unauthenticated, id-keyed status projection.
	PublicStatus(ctx context.Context, requestID string) (*domain.PublicRequestStatus, error)
}

type requestStore interface {
	Get(ctx context.Context, requestID, ownerID string) (*domain.Request, error)
	MarkInReply(ctx context.Context, requestID, ownerID string) error
	AppendReply(ctx context.Context, requestID, ownerID, text string) (bool, error)
	SetClosed(ctx context.Context, requestID, ownerID string) (bool, error)
	GetPublicStatus(ctx context.Context, requestID string) (*domain.PublicRequestStatus, error)
	ListForOwner(ctx context.Context, ownerID string) ([]domain.Request, error)
	QueueSummary(ctx context.Context, ownerID string) ([]domain.QueueSummaryEntry, error)
}

type pingeeStore interface {
	Get(ctx context.Context, pingeeID string) (*domain.Pingee, error)
}

type contactStore interface {
	DisplayNames(ctx context.Context, ownerID string) (map[string]string, error)
}

type service struct {
	requests requestStore
	pingees  pingeeStore
	contacts contactStore
}

type ServiceDeps struct {
	RequestRepo requestStore
	PingeeRepo  pingeeStore
	ContactRepo contactStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		requests: deps.RequestRepo,
		pingees:  deps.PingeeRepo,
		contacts: deps.ContactRepo,
	}
}

func (s *service) Overview(ctx context.Context, pingeeID string) (*Overview, error) {
	pingee, err := s.pingees.Get(ctx, pingeeID)
	if err != nil {
		return nil, err
	}
	summary, err := s.requests.QueueSummary(ctx, pingeeID)
	if err != nil {
		return nil, err
	}
	reqs, err := s.requests.ListForOwner(ctx, pingeeID)
	if err != nil {
		return nil, err
	}
	names := s.displayNames(ctx, pingeeID)

	out := &Overview{
		QueueSummary: summary,
		Windows:      pingee.ReplyWindows,
		Requests:     make([]domain.RequestSummary, 0, len(reqs)),
	}
	for _, r := range reqs {
		out.Requests = append(out.Requests, domain.RequestSummary{
			RequestID: r.RequestID,
			From:      r.From,
			FromName:  names[normalizeContact(r.From)],
			Type:      r.Type,
			Message:   r.Message,
			Received:  r.Received,
		})
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, pingeeID, requestID string) (*Detail, error) {
	req, err := s.requests.Get(ctx, requestID, pingeeID)
	if err != nil {
		return nil, err
	}
	if err := s.requests.MarkInReply(ctx, requestID, pingeeID); err != nil {
		return nil, err
	}
	req.Status.InReply = true

	names := s.displayNames(ctx, pingeeID)
	return &Detail{
		Request:  *req,
		FromName: names[normalizeContact(req.From)],
		Color:    domain.ColorFor(req.Type),
	}, nil
}

func (s *service) Reply(ctx context.Context, pingeeID, requestID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("reply text is required: %w", domain.ErrBadRequest)
	}
	ok, err := s.requests.AppendReply(ctx, requestID, pingeeID, text)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("request not found: %w", domain.ErrNotFound)
	}
	return nil
}

// Archive sets the closed flag. Closed is advisory: the request stays
// readable and further replies are still accepted.
func (s *service) Archive(ctx context.Context, pingeeID, requestID string) error {
	ok, err := s.requests.SetClosed(ctx, requestID, pingeeID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("request not found: %w", domain.ErrNotFound)
	}
	return nil
}

func (s *service) PublicStatus(ctx context.Context, requestID string) (*domain.PublicRequestStatus, error) {
	return s.requests.GetPublicStatus(ctx, requestID)
}

// displayNames is best-effort; a broken address book must not take the
// inbox down with it.
func (s *service) displayNames(ctx context.Context, pingeeID string) map[string]string {
	names, err := s.contacts.DisplayNames(ctx, pingeeID)
	if err != nil {
		return nil
	}
	return names
}

func normalizeContact(contact string) string {
	return strings.ToLower(strings.TrimSpace(contact))
}
