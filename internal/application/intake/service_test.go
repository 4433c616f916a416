package intake

import (
	"context"
	"errors"
	"testing"

	"github.com/frontdoor-labs/frontdoor-api/internal/domain"
	"github.com/frontdoor-labs/frontdoor-api/internal/verify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockPingeeStore struct{ mock.Mock }

func (m *mockPingeeStore) GetByLinkSlug(ctx context.Context, slug string) (*domain.Pingee, error) {
	args := m.Called(ctx, slug)
	if p, _ := args.Get(0).(*domain.Pingee); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockRequestStore struct{ mock.Mock }

func (m *mockRequestStore) Put(ctx context.Context, req *domain.Request) error {
	return m.Called(ctx, req).Error(0)
}

type mockTypeStore struct{ mock.Mock }

func (m *mockTypeStore) Exists(ctx context.Context, typeLabel string) (bool, error) {
	args := m.Called(ctx, typeLabel)
	return args.Bool(0), args.Error(1)
}
func (m *mockTypeStore) List(ctx context.Context) ([]domain.RequestType, error) {
	args := m.Called(ctx)
	if rts, _ := args.Get(0).([]domain.RequestType); rts != nil {
		return rts, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendVerificationCode(to, code string) error {
	return m.Called(to, code).Error(0)
}

type mockSMSSender struct{ mock.Mock }

func (m *mockSMSSender) SendSMS(ctx context.Context, to, message string) error {
	return m.Called(ctx, to, message).Error(0)
}

// --- builders ---

func verifyingPingee() *domain.Pingee {
	return &domain.Pingee{
		PingeeID: "p1",
		LinkSlug: "alice-link",
		Trust:    domain.TrustSettings{VerifiedOnly: true, VerifyMethod: "email"},
	}
}

func openPingee() *domain.Pingee {
	return &domain.Pingee{
		PingeeID: "p2",
		LinkSlug: "bob-link",
		Trust:    domain.TrustSettings{VerifiedOnly: false},
	}
}

func newTestService(ps *mockPingeeStore, rs *mockRequestStore, ts *mockTypeStore, codes verify.Store, ml *mockMailer, sms *mockSMSSender) Service {
	deps := ServiceDeps{
		PingeeRepo:  ps,
		RequestRepo: rs,
		TypeRepo:    ts,
		Codes:       codes,
		Mailer:      ml,
	}
	if sms != nil {
		deps.SMSSender = sms
	}
	return NewService(deps)
}

// --- RequireVerification ---

func TestRequireVerification_EmptyContact(t *testing.T) {
	svc := newTestService(nil, nil, nil, verify.NewMemoryStore(), nil, nil)
	_, err := svc.RequireVerification(context.Background(), "alice-link", "   ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestRequireVerification_PingeeNotFound(t *testing.T) {
	ps := &mockPingeeStore{}
	ps.On("GetByLinkSlug", mock.Anything, "nobody").Return(nil, domain.ErrNotFound)

	svc := newTestService(ps, nil, nil, verify.NewMemoryStore(), nil, nil)
	_, err := svc.RequireVerification(context.Background(), "nobody", "bob@example.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRequireVerification_NotRequiredForRecipient(t *testing.T) {
	ps := &mockPingeeStore{}
	ps.On("GetByLinkSlug", mock.Anything, "bob-link").Return(openPingee(), nil)

	svc := newTestService(ps, nil, nil, verify.NewMemoryStore(), nil, nil)
	_, err := svc.RequireVerification(context.Background(), "bob-link", "bob@example.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestRequireVerification_EmailDelivered(t *testing.T) {
	ps := &mockPingeeStore{}
	ml := &mockMailer{}
	ps.On("GetByLinkSlug", mock.Anything, "alice-link").Return(verifyingPingee(), nil)
	ml.On("SendVerificationCode", "bob@example.com", mock.MatchedBy(func(code string) bool {
		return len(code) == 6
	})).Return(nil)

	svc := newTestService(ps, nil, nil, verify.NewMemoryStore(), ml, nil)
	contact, err := svc.RequireVerification(context.Background(), "alice-link", "  bob@example.com ")

	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", contact)
	ml.AssertExpectations(t)
}

func TestRequireVerification_MailerFailure_StillSucceeds(t *testing.T) {
	ps := &mockPingeeStore{}
	ml := &mockMailer{}
	ps.On("GetByLinkSlug", mock.Anything, "alice-link").Return(verifyingPingee(), nil)
	ml.On("SendVerificationCode", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	codes := verify.NewMemoryStore()
	svc := newTestService(ps, nil, nil, codes, ml, nil)
	contact, err := svc.RequireVerification(context.Background(), "alice-link", "bob@example.com")

	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", contact)
}

func TestRequireVerification_PhoneWithoutSNS_StillSucceeds(t *testing.T) {
	ps := &mockPingeeStore{}
	ps.On("GetByLinkSlug", mock.Anything, "alice-link").Return(verifyingPingee(), nil)

	svc := newTestService(ps, nil, nil, verify.NewMemoryStore(), &mockMailer{}, nil)
	contact, err := svc.RequireVerification(context.Background(), "alice-link", "+15550001111")

	require.NoError(t, err)
	assert.Equal(t, "+15550001111", contact)
}

func TestRequireVerification_PhoneViaSNS(t *testing.T) {
	ps := &mockPingeeStore{}
	sms := &mockSMSSender{}
	ps.On("GetByLinkSlug", mock.Anything, "alice-link").Return(verifyingPingee(), nil)
	sms.On("SendSMS", mock.Anything, "+15550001111", mock.Anything).Return(nil)

	svc := newTestService(ps, nil, nil, verify.NewMemoryStore(), &mockMailer{}, sms)
	_, err := svc.RequireVerification(context.Background(), "alice-link", "+15550001111")

	require.NoError(t, err)
	sms.AssertExpectations(t)
}

// --- Submit ---

func TestSubmit_PingeeNotFound(t *testing.T) {
	ps := &mockPingeeStore{}
	ps.On("GetByLinkSlug", mock.Anything, "nobody").Return(nil, domain.ErrNotFound)

	svc := newTestService(ps, nil, nil, verify.NewMemoryStore(), nil, nil)
	_, err := svc.Submit(context.Background(), "nobody", SubmitInput{Purpose: "Quick question", Message: "hi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSubmit_MissingPurposeOrMessage(t *testing.T) {
	ps := &mockPingeeStore{}
	ps.On("GetByLinkSlug", mock.Anything, "bob-link").Return(openPingee(), nil)

	svc := newTestService(ps, nil, nil, verify.NewMemoryStore(), nil, nil)

	_, err := svc.Submit(context.Background(), "bob-link", SubmitInput{Purpose: "", Message: "hi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))

	_, err = svc.Submit(context.Background(), "bob-link", SubmitInput{Purpose: "Quick question", Message: "  "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestSubmit_UnknownType(t *testing.T) {
	ps := &mockPingeeStore{}
	ts := &mockTypeStore{}
	ps.On("GetByLinkSlug", mock.Anything, "bob-link").Return(openPingee(), nil)
	ts.On("Exists", mock.Anything, "Carrier pigeon").Return(false, nil)

	svc := newTestService(ps, nil, ts, verify.NewMemoryStore(), nil, nil)
	_, err := svc.Submit(context.Background(), "bob-link", SubmitInput{Purpose: "Carrier pigeon", Message: "hi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestSubmit_VerifiedOnly_MissingContact(t *testing.T) {
	ps := &mockPingeeStore{}
	ts := &mockTypeStore{}
	ps.On("GetByLinkSlug", mock.Anything, "alice-link").Return(verifyingPingee(), nil)
	ts.On("Exists", mock.Anything, "Quick question").Return(true, nil)

	rs := &mockRequestStore{}
	svc := newTestService(ps, rs, ts, verify.NewMemoryStore(), nil, nil)
	_, err := svc.Submit(context.Background(), "alice-link", SubmitInput{Purpose: "Quick question", Message: "hi"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	rs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestSubmit_VerifiedOnly_MissingCode(t *testing.T) {
	ps := &mockPingeeStore{}
	ts := &mockTypeStore{}
	rs := &mockRequestStore{}
	ps.On("GetByLinkSlug", mock.Anything, "alice-link").Return(verifyingPingee(), nil)
	ts.On("Exists", mock.Anything, "Quick question").Return(true, nil)

	svc := newTestService(ps, rs, ts, verify.NewMemoryStore(), nil, nil)
	_, err := svc.Submit(context.Background(), "alice-link", SubmitInput{
		Purpose: "Quick question",
		Message: "hi",
		Contact: "bob@example.com",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	rs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestSubmit_VerifiedOnly_WrongCode_NoRecordCreated(t *testing.T) {
	ps := &mockPingeeStore{}
	ts := &mockTypeStore{}
	rs := &mockRequestStore{}
	ps.On("GetByLinkSlug", mock.Anything, "alice-link").Return(verifyingPingee(), nil)
	ts.On("Exists", mock.Anything, "Quick question").Return(true, nil)

	codes := verify.NewMemoryStore()
	issued := codes.Issue("alice-link", "bob@example.com")
	wrong := "000000"
	if wrong == issued {
		wrong = "000001"
	}

	svc := newTestService(ps, rs, ts, codes, nil, nil)
	_, err := svc.Submit(context.Background(), "alice-link", SubmitInput{
		Purpose: "Quick question",
		Message: "hi",
		Contact: "bob@example.com",
		Code:    wrong,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	assert.ErrorContains(t, err, "invalid or expired code")
	rs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestSubmit_VerifiedOnly_HappyPath(t *testing.T) {
	ps := &mockPingeeStore{}
	ts := &mockTypeStore{}
	rs := &mockRequestStore{}
	ps.On("GetByLinkSlug", mock.Anything, "alice-link").Return(verifyingPingee(), nil)
	ts.On("Exists", mock.Anything, "Quick question").Return(true, nil)
	rs.On("Put", mock.Anything, mock.MatchedBy(func(req *domain.Request) bool {
		return req.To == "p1" &&
			req.From == "bob@example.com" &&
			req.IsVerified &&
			req.Status.Received &&
			!req.Status.InReply && !req.Status.Replied && !req.Status.Closed
	})).Return(nil)

	codes := verify.NewMemoryStore()
	code := codes.Issue("alice-link", "Bob@Example.com")

	svc := newTestService(ps, rs, ts, codes, nil, nil)
	requestID, err := svc.Submit(context.Background(), "alice-link", SubmitInput{
		Purpose: "Quick question",
		Message: "hi there",
		Contact: "bob@example.com",
		Code:    code,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, requestID)
	rs.AssertExpectations(t)

	// Code is single-use: a second submission with the same code fails.
	_, err = svc.Submit(context.Background(), "alice-link", SubmitInput{
		Purpose: "Quick question",
		Message: "again",
		Contact: "bob@example.com",
		Code:    code,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestSubmit_OpenRecipient_EmptyContact_Anonymous(t *testing.T) {
	ps := &mockPingeeStore{}
	ts := &mockTypeStore{}
	rs := &mockRequestStore{}
	ps.On("GetByLinkSlug", mock.Anything, "bob-link").Return(openPingee(), nil)
	ts.On("Exists", mock.Anything, "FYI / info").Return(true, nil)
	rs.On("Put", mock.Anything, mock.MatchedBy(func(req *domain.Request) bool {
		return req.From == domain.AnonymousFrom && !req.IsVerified
	})).Return(nil)

	svc := newTestService(ps, rs, ts, verify.NewMemoryStore(), nil, nil)
	requestID, err := svc.Submit(context.Background(), "bob-link", SubmitInput{
		Purpose: "FYI / info",
		Message: "heads up",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, requestID)
	rs.AssertExpectations(t)
}

func TestSubmit_OpenRecipient_ContactPreserved(t *testing.T) {
	ps := &mockPingeeStore{}
	ts := &mockTypeStore{}
	rs := &mockRequestStore{}
	ps.On("GetByLinkSlug", mock.Anything, "bob-link").Return(openPingee(), nil)
	ts.On("Exists", mock.Anything, "Schedule time").Return(true, nil)
	rs.On("Put", mock.Anything, mock.MatchedBy(func(req *domain.Request) bool {
		return req.From == "carol@example.com" && !req.IsVerified
	})).Return(nil)

	svc := newTestService(ps, rs, ts, verify.NewMemoryStore(), nil, nil)
	_, err := svc.Submit(context.Background(), "bob-link", SubmitInput{
		Purpose: "Schedule time",
		Message: "coffee?",
		Contact: "  carol@example.com ",
	})

	require.NoError(t, err)
	rs.AssertExpectations(t)
}
