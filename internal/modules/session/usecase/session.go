package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"studyhub/internal/modules/session/domain"
	sessiondto "studyhub/internal/modules/session/dto"
	sessionin "studyhub/internal/modules/session/port/in"
	sessionout "studyhub/internal/modules/session/port/out"
	"studyhub/internal/modules/session/service"
	apperrors "studyhub/internal/platform/errors"
	"studyhub/internal/platform/events"
)

// Interactor owns the authenticated identity and the route derived from it.
type Interactor struct {
	svc       *service.SessionService
	store     sessionout.CredentialStore
	gateway   sessionout.AuthGateway
	publisher events.Publisher
	logger    hclog.Logger

	mu      sync.RWMutex
	current *domain.Session
	route   domain.Route
}

var _ sessionin.Usecase = (*Interactor)(nil)

func NewInteractor(svc *service.SessionService, store sessionout.CredentialStore, gateway sessionout.AuthGateway, publisher events.Publisher, logger hclog.Logger) *Interactor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Interactor{
		svc:       svc,
		store:     store,
		gateway:   gateway,
		publisher: publisher,
		logger:    logger.Named("session"),
		route:     domain.RouteSignIn,
	}
}

func (i *Interactor) Restore(ctx context.Context) sessiondto.RestoreOutput {
	session, err := i.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNoActiveSession) {
			i.logger.Warn("discarding stored session", "error", err)
			if clearErr := i.store.Clear(ctx); clearErr != nil {
				i.logger.Warn("clear stored session", "error", clearErr)
			}
		}
		i.set(nil, domain.RouteSignIn)
		return sessiondto.RestoreOutput{Route: string(domain.RouteSignIn)}
	}
	i.set(&session, domain.RouteDashboard)
	return sessiondto.RestoreOutput{Restored: true, Route: string(domain.RouteDashboard), Session: toOutput(session)}
}

func (i *Interactor) SignIn(ctx context.Context, input sessiondto.SignInInput) (sessiondto.SessionOutput, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return sessiondto.SessionOutput{}, fmt.Errorf("%w: email and password are required", apperrors.ErrInvalidInput)
	}
	resp, err := i.gateway.SignIn(ctx, email, input.Password)
	return i.establish(ctx, service.OpSignIn, resp, err)
}

func (i *Interactor) SignUp(ctx context.Context, input sessiondto.SignUpInput) (sessiondto.SessionOutput, error) {
	email := strings.TrimSpace(input.Email)
	firstName := strings.TrimSpace(input.FirstName)
	if firstName == "" || email == "" || input.Password == "" {
		return sessiondto.SessionOutput{}, fmt.Errorf("%w: first name, email and password are required", apperrors.ErrInvalidInput)
	}
	resp, err := i.gateway.SignUp(ctx, firstName, email, input.Password)
	return i.establish(ctx, service.OpSignUp, resp, err)
}

func (i *Interactor) SignInAnonymous(ctx context.Context) (sessiondto.SessionOutput, error) {
	resp, err := i.gateway.SignInAnonymous(ctx)
	return i.establish(ctx, service.OpSignInAnonymous, resp, err)
}

func (i *Interactor) SignInGoogle(ctx context.Context, input sessiondto.GoogleSignInInput) (sessiondto.SessionOutput, error) {
	if strings.TrimSpace(input.IDToken) == "" {
		return sessiondto.SessionOutput{}, fmt.Errorf("%w: id token is required", apperrors.ErrInvalidInput)
	}
	resp, err := i.gateway.SignInGoogle(ctx, input.IDToken, input.DisplayName, input.PhotoURL)
	return i.establish(ctx, service.OpSignInGoogle, resp, err)
}

func (i *Interactor) VerifyEmail(ctx context.Context, token string) (sessiondto.SessionOutput, error) {
	if strings.TrimSpace(token) == "" {
		return sessiondto.SessionOutput{}, fmt.Errorf("%w: verification token is required", apperrors.ErrInvalidInput)
	}
	resp, err := i.gateway.VerifyEmail(ctx, strings.TrimSpace(token))
	return i.establish(ctx, service.OpVerifyEmail, resp, err)
}

func (i *Interactor) ResendVerification(ctx context.Context, email string) (sessiondto.ResendVerificationOutput, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return sessiondto.ResendVerificationOutput{}, fmt.Errorf("%w: email is required", apperrors.ErrInvalidInput)
	}
	dev, err := i.gateway.ResendVerification(ctx, email)
	if err != nil {
		return sessiondto.ResendVerificationOutput{}, i.svc.Failure(service.OpResendVerification, err)
	}
	return sessiondto.ResendVerificationOutput{Dev: dev}, nil
}

func (i *Interactor) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", apperrors.ErrInvalidInput)
	}
	if err := i.gateway.ForgotPassword(ctx, email); err != nil {
		return i.svc.Failure(service.OpForgotPassword, err)
	}
	return nil
}

func (i *Interactor) ResetPassword(ctx context.Context, input sessiondto.ResetPasswordInput) error {
	if strings.TrimSpace(input.Token) == "" || input.Password == "" {
		return fmt.Errorf("%w: token and password are required", apperrors.ErrInvalidInput)
	}
	if err := i.gateway.ResetPassword(ctx, strings.TrimSpace(input.Token), input.Password); err != nil {
		return i.svc.Failure(service.OpResetPassword, err)
	}
	return nil
}

func (i *Interactor) SignOut(ctx context.Context) error {
	err := i.store.Clear(ctx)
	i.set(nil, domain.RouteSignIn)
	i.publish()
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// Expire is installed as the HTTP client's unauthorized hook.
func (i *Interactor) Expire(ctx context.Context) {
	if err := i.store.Clear(ctx); err != nil {
		i.logger.Warn("clear expired session", "error", err)
	}
	i.mu.Lock()
	hadSession := i.current != nil
	i.current = nil
	i.route = domain.RouteSignIn
	i.mu.Unlock()
	if hadSession {
		i.logger.Info("session expired")
	}
	i.publish()
}

func (i *Interactor) Current(_ context.Context) (sessiondto.SessionOutput, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.current == nil {
		return sessiondto.SessionOutput{}, apperrors.ErrNoActiveSession
	}
	return toOutput(*i.current), nil
}

func (i *Interactor) Route() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return string(i.route)
}

func (i *Interactor) Token() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.current == nil {
		return ""
	}
	return i.current.Token
}

func (i *Interactor) establish(ctx context.Context, op string, resp domain.AuthResponse, err error) (sessiondto.SessionOutput, error) {
	if err != nil {
		return sessiondto.SessionOutput{}, i.svc.Failure(op, err)
	}
	session, err := i.svc.Normalize(resp)
	if err != nil {
		return sessiondto.SessionOutput{}, i.svc.Failure(op, err)
	}
	if err := i.store.Save(ctx, session); err != nil {
		return sessiondto.SessionOutput{}, fmt.Errorf("persist session: %w", err)
	}
	i.set(&session, domain.RouteDashboard)
	i.logger.Info("signed in", "user_id", int64(session.ID), "op", op)
	i.publish()
	return toOutput(session), nil
}

func (i *Interactor) set(session *domain.Session, route domain.Route) {
	i.mu.Lock()
	i.current = session
	i.route = route
	i.mu.Unlock()
}

func (i *Interactor) publish() {
	if i.publisher != nil {
		i.publisher.Publish(events.SessionChanged)
	}
}

func toOutput(s domain.Session) sessiondto.SessionOutput {
	return sessiondto.SessionOutput{
		UserID:        int64(s.ID),
		UID:           s.UID,
		Email:         s.Email,
		FirstName:     s.FirstName,
		UserImage:     s.UserImage,
		IsPremium:     s.IsPremium,
		EmailVerified: s.EmailVerified,
	}
}
