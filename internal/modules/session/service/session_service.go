package service

import (
	"errors"
	"fmt"
	"strings"

	"studyhub/internal/modules/session/domain"
	sessiondto "studyhub/internal/modules/session/dto"
	apperrors "studyhub/internal/platform/errors"
)

const (
	OpSignIn             = "Login"
	OpSignUp             = "Registration"
	OpSignInAnonymous    = "Guest sign in"
	OpSignInGoogle       = "Google sign in"
	OpVerifyEmail        = "Email verification"
	OpResendVerification = "Resend verification"
	OpForgotPassword     = "Password reset request"
	OpResetPassword      = "Password reset"
)

const networkMessage = "Network error. Please check your connection and ensure the backend is running."

type SessionService struct{}

func NewSessionService() *SessionService {
	return &SessionService{}
}

// Normalize turns an auth response into a session, enforcing the token and
// id invariant. Missing optional flags default to false.
func (s *SessionService) Normalize(resp domain.AuthResponse) (domain.Session, error) {
	session := domain.Session{
		Token:     strings.TrimSpace(resp.Token),
		ID:        resp.ID,
		UID:       resp.UID,
		Email:     resp.Email,
		FirstName: resp.FirstName,
	}
	if resp.UserImage != nil {
		session.UserImage = *resp.UserImage
	}
	if resp.IsPremium != nil {
		session.IsPremium = *resp.IsPremium
	}
	if resp.EmailVerified != nil {
		session.EmailVerified = *resp.EmailVerified
	}
	if !session.Valid() {
		return domain.Session{}, fmt.Errorf("%w: auth response is missing token or id", apperrors.ErrServer)
	}
	return session, nil
}

// Failure maps a boundary error to the message shown next to the form.
func (s *SessionService) Failure(op string, err error) *sessiondto.AuthFailure {
	return &sessiondto.AuthFailure{Op: op, Message: s.message(op, err), Err: err}
}

func (s *SessionService) message(op string, err error) string {
	apiErr, ok := apperrors.AsAPIError(err)
	if !ok {
		if errors.Is(err, apperrors.ErrNetworkUnavailable) {
			return networkMessage
		}
		return fmt.Sprintf("%s failed. Please try again.", op)
	}
	switch apiErr.Kind {
	case apperrors.KindNetwork:
		return networkMessage
	case apperrors.KindUnauthorized:
		if op == OpSignIn {
			return "Invalid email or password"
		}
	case apperrors.KindValidation:
		if msg := strings.TrimSpace(apiErr.Message); msg != "" {
			return msg
		}
		if len(apiErr.Fields) > 0 {
			return strings.Join(apiErr.Fields, ", ")
		}
		if op == OpSignUp {
			return "Registration failed. Email may already be in use."
		}
		return "Invalid request. Please check your input."
	}
	if msg := strings.TrimSpace(apiErr.Message); msg != "" {
		return msg
	}
	return fmt.Sprintf("%s failed. Please try again.", op)
}
