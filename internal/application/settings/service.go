// Package settings lets a pingee manage the configuration that drives the
// intake and inbox flows: trust settings and reply windows.
package settings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/frontdoor-labs/frontdoor-api/internal/domain"
)

// View is the settings payload a pingee reads and edits.
type View struct {
	LinkSlug     string               `json:"link_slug"`
	Trust        domain.TrustSettings `json:"trust"`
	ReplyWindows []domain.ReplyWindow `json:"reply_windows"`
}

type Service interface {
	Get(ctx context.Context, pingeeID string) (*View, error)
	UpdateTrust(ctx context.Context, pingeeID string, trust domain.TrustSettings) error
	UpdateReplyWindows(ctx context.Context, pingeeID string, windows []domain.ReplyWindow) error
}

type pingeeStore interface {
	Get(ctx context.Context, pingeeID string) (*domain.Pingee, error)
	Update(ctx context.Context, pingeeID string, updates map[string]interface{}) error
}

type service struct {
	pingees pingeeStore
}

type ServiceDeps struct {
	PingeeRepo pingeeStore
}

func NewService(deps ServiceDeps) Service {
	return &service{pingees: deps.PingeeRepo}
}

func (s *service) Get(ctx context.Context, pingeeID string) (*View, error) {
	p, err := s.pingees.Get(ctx, pingeeID)
	if err != nil {
		return nil, err
	}
	return &View{
		LinkSlug:     p.LinkSlug,
		Trust:        p.Trust,
		ReplyWindows: p.ReplyWindows,
	}, nil
}

func (s *service) UpdateTrust(ctx context.Context, pingeeID string, trust domain.TrustSettings) error {
	trust.VerifyMethod = strings.TrimSpace(trust.VerifyMethod)
	return s.pingees.Update(ctx, pingeeID, map[string]interface{}{
		"trust": trust,
	})
}

func (s *service) UpdateReplyWindows(ctx context.Context, pingeeID string, windows []domain.ReplyWindow) error {
	if windows == nil {
		return fmt.Errorf("windows must be a list: %w", domain.ErrBadRequest)
	}
	for i, w := range windows {
		if strings.TrimSpace(w.Day) == "" {
			return fmt.Errorf("window %d is missing a day: %w", i, domain.ErrBadRequest)
		}
		if !validClock(w.Start) || !validClock(w.End) {
			return fmt.Errorf("window %d has a malformed time: %w", i, domain.ErrBadRequest)
		}
	}
	return s.pingees.Update(ctx, pingeeID, map[string]interface{}{
		"reply_windows": windows,
	})
}

// validClock accepts zero-padded 24-hour "HH:MM" only; time.Parse alone
// would also let "9:00" through.
func validClock(v string) bool {
	if len(v) != 5 {
		return false
	}
	_, err := time.Parse("15:04", v)
	return err == nil
}
