package ports

import (
	"context"
	"time"

	"github.com/qamar62/st-booking/internal/domain/models"
)

// TokenSource exchanges the fixed credential pair for a short-lived bearer
// token. One attempt per call, no retry.
type TokenSource interface {
	GetToken(ctx context.Context) (models.Token, error)
}

// TourSource returns the full upstream tour list. A failed token exchange or
// upstream fetch degrades to an empty list; callers never receive an error
// from it and never see a partial payload.
type TourSource interface {
	ListTours(ctx context.Context) []models.Tour
}

// TokenCache optionally keeps an issued bearer token until shortly before its
// expiry. Tour data is never cached; only the credential is.
type TokenCache interface {
	Get(ctx context.Context, username string) (models.Token, error)
	Set(ctx context.Context, username string, token models.Token, ttl time.Duration) error
}
