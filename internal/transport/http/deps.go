package http

import (
	"github.com/frontdoor-labs/frontdoor-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/frontdoor-labs/frontdoor-api/internal/infrastructure/jwt"
	s3infra "github.com/frontdoor-labs/frontdoor-api/internal/infrastructure/s3"
	"github.com/frontdoor-labs/frontdoor-api/internal/infrastructure/smtp"
	"github.com/frontdoor-labs/frontdoor-api/internal/infrastructure/sns"
	"github.com/frontdoor-labs/frontdoor-api/internal/verify"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	PingeeRepo      *dynamo.PingeeRepo
	RequestRepo     *dynamo.RequestRepo
	RequestTypeRepo *dynamo.RequestTypeRepo
	ContactRepo     *dynamo.ContactRepo
	AttachmentStore *s3infra.Store
	Codes           verify.Store
	Mailer          smtp.Mailer
	SMSSender       sns.SMSSender // nil when SNS is unavailable
	JWTProvider     *jwtinfra.Provider
}
