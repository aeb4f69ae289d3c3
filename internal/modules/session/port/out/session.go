package out

import (
	"context"

	"studyhub/internal/modules/session/domain"
)

// CredentialStore persists the session. Load returns ErrNoActiveSession when
// nothing is stored and ErrLocalStorageCorrupt when the record is unusable.
type CredentialStore interface {
	Save(ctx context.Context, session domain.Session) error
	Load(ctx context.Context) (domain.Session, error)
	Clear(ctx context.Context) error
}

type AuthGateway interface {
	SignIn(ctx context.Context, email, password string) (domain.AuthResponse, error)
	SignUp(ctx context.Context, firstName, email, password string) (domain.AuthResponse, error)
	SignInAnonymous(ctx context.Context) (domain.AuthResponse, error)
	SignInGoogle(ctx context.Context, idToken, displayName, photoURL string) (domain.AuthResponse, error)
	VerifyEmail(ctx context.Context, token string) (domain.AuthResponse, error)
	ResendVerification(ctx context.Context, email string) (bool, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}
