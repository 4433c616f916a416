// Package intake orchestrates a pinger's submission: recipient resolution,
// trust-policy enforcement, one-time contact verification and request creation.
package intake

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/frontdoor-labs/frontdoor-api/internal/domain"
	"github.com/frontdoor-labs/frontdoor-api/internal/pkg/id"
	"github.com/frontdoor-labs/frontdoor-api/internal/verify"
)

// SubmitInput is a pinger's request submission.
type SubmitInput struct {
	Purpose     string              `json:"purpose" validate:"required"`
	Message     string              `json:"message" validate:"required"`
	Contact     string              `json:"contact"`
	Code        string              `json:"code"`
	Attachments []domain.Attachment `json:"attachments"`
}

// PingeePage is the public intake-page projection of a recipient.
type PingeePage struct {
	LinkSlug     string                     `json:"link_slug"`
	DisplayName  string                     `json:"display_name"`
	VerifiedOnly bool                       `json:"verified_only"`
	VerifyMethod string                     `json:"verify_method,omitempty"`
	Types        []domain.QueueSummaryEntry `json:"types"`
}

type Service interface {
	// PingeePage resolves a public link slug for the intake page.
	PingeePage(ctx context.Context, linkID string) (*PingeePage, error)
	// RequireVerification issues a one-time code for (linkID, contact) and
	// attempts delivery. Returns the normalized contact; never the code.
	RequireVerification(ctx context.Context, linkID, contact string) (string, error)
	// Submit validates and creates a request, consuming the verification
	// code when the recipient demands one. Returns the new request id.
	Submit(ctx context.Context, linkID string, in SubmitInput) (string, error)
}

type pingeeStore interface {
	GetByLinkSlug(ctx context.Context, slug string) (*domain.Pingee, error)
}

type requestStore interface {
	Put(ctx context.Context, req *domain.Request) error
}

type typeStore interface {
	Exists(ctx context.Context, typeLabel string) (bool, error)
	List(ctx context.Context) ([]domain.RequestType, error)
}

type mailer interface {
	SendVerificationCode(to, code string) error
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type service struct {
	pingees       pingeeStore
	requests      requestStore
	types         typeStore
	codes         verify.Store
	mailer        mailer
	sms           smsSender
	notifyTimeout time.Duration
}

type ServiceDeps struct {
	PingeeRepo    pingeeStore
	RequestRepo   requestStore
	TypeRepo      typeStore
	Codes         verify.Store
	Mailer        mailer
	SMSSender     smsSender // nil when SNS is not configured
	NotifyTimeout time.Duration
}

func NewService(deps ServiceDeps) Service {
	if deps.NotifyTimeout <= 0 {
		deps.NotifyTimeout = 10 * time.Second
	}
	return &service{
		pingees:       deps.PingeeRepo,
		requests:      deps.RequestRepo,
		types:         deps.TypeRepo,
		codes:         deps.Codes,
		mailer:        deps.Mailer,
		sms:           deps.SMSSender,
		notifyTimeout: deps.NotifyTimeout,
	}
}

func (s *service) PingeePage(ctx context.Context, linkID string) (*PingeePage, error) {
	pingee, err := s.pingees.GetByLinkSlug(ctx, linkID)
	if err != nil {
		return nil, err
	}
	rts, err := s.types.List(ctx)
	if err != nil {
		return nil, err
	}
	page := &PingeePage{
		LinkSlug:     pingee.LinkSlug,
		DisplayName:  pingee.DisplayName,
		VerifiedOnly: pingee.Trust.VerifiedOnly,
		VerifyMethod: pingee.Trust.VerifyMethod,
	}
	for _, rt := range rts {
		page.Types = append(page.Types, domain.QueueSummaryEntry{
			Type:  rt.Type,
			Color: domain.ColorFor(rt.Type),
		})
	}
	return page, nil
}

func (s *service) RequireVerification(ctx context.Context, linkID, contact string) (string, error) {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return "", fmt.Errorf("contact is required: %w", domain.ErrBadRequest)
	}
	pingee, err := s.pingees.GetByLinkSlug(ctx, linkID)
	if err != nil {
		return "", err
	}
	// Codes are only issued for recipients that actually demand them;
	// anything else would let strangers probe arbitrary contacts.
	if !pingee.Trust.RequiresVerification() {
		return "", fmt.Errorf("verification not required for this recipient: %w", domain.ErrBadRequest)
	}

	code := s.codes.Issue(linkID, contact)
	s.deliverCode(ctx, contact, code)
	return contact, nil
}

// deliverCode attempts delivery over the contact's channel. Email goes
// through SMTP, phone numbers through SNS when configured. Any failure is
// downgraded to a log entry carrying the code for manual recovery; issuance
// itself never fails because of the notifier.
func (s *service) deliverCode(ctx context.Context, contact, code string) {
	ctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()

	if strings.Contains(contact, "@") {
		done := make(chan error, 1)
		go func() { done <- s.mailer.SendVerificationCode(contact, code) }()
		select {
		case err := <-done:
			if err == nil {
				return
			}
			slog.Warn("verification email failed", "contact", contact, "err", err)
		case <-ctx.Done():
			slog.Warn("verification email timed out", "contact", contact)
		}
	} else if s.sms != nil {
		err := s.sms.SendSMS(ctx, contact, "Your verification code: "+code)
		if err == nil {
			return
		}
		slog.Warn("verification SMS failed", "contact", contact, "err", err)
	}
	slog.Info("verification code for manual delivery", "contact", contact, "code", code)
}

func (s *service) Submit(ctx context.Context, linkID string, in SubmitInput) (string, error) {
	pingee, err := s.pingees.GetByLinkSlug(ctx, linkID)
	if err != nil {
		return "", err
	}

	purpose := strings.TrimSpace(in.Purpose)
	message := strings.TrimSpace(in.Message)
	if purpose == "" || message == "" {
		return "", fmt.Errorf("purpose and message are required: %w", domain.ErrBadRequest)
	}
	known, err := s.types.Exists(ctx, purpose)
	if err != nil {
		return "", err
	}
	if !known {
		return "", fmt.Errorf("unknown request type %q: %w", purpose, domain.ErrBadRequest)
	}

	from, ok := pingee.Trust.EffectiveFrom(in.Contact)
	if !ok {
		return "", fmt.Errorf("contact is required when verification is required: %w", domain.ErrBadRequest)
	}

	verified := pingee.Trust.RequiresVerification()
	if verified {
		if strings.TrimSpace(in.Code) == "" {
			return "", fmt.Errorf("verification code is required: %w", domain.ErrBadRequest)
		}
		if !s.codes.Consume(linkID, in.Contact, in.Code) {
			return "", fmt.Errorf("invalid or expired code: %w", domain.ErrBadRequest)
		}
	}

	req := &domain.Request{
		RequestID:   id.New(),
		From:        from,
		To:          pingee.PingeeID,
		Type:        purpose,
		IsVerified:  verified,
		Message:     message,
		Attachments: in.Attachments,
		Reply:       []string{},
		Status:      domain.RequestStatus{Received: true},
		Received:    time.Now().UTC(),
	}
	if err := s.requests.Put(ctx, req); err != nil {
		return "", err
	}
	return req.RequestID, nil
}
