package in

import (
	"context"

	"studyhub/internal/modules/session/dto"
)

type Usecase interface {
	Restore(ctx context.Context) dto.RestoreOutput
	SignIn(ctx context.Context, input dto.SignInInput) (dto.SessionOutput, error)
	SignUp(ctx context.Context, input dto.SignUpInput) (dto.SessionOutput, error)
	SignInAnonymous(ctx context.Context) (dto.SessionOutput, error)
	SignInGoogle(ctx context.Context, input dto.GoogleSignInInput) (dto.SessionOutput, error)
	VerifyEmail(ctx context.Context, token string) (dto.SessionOutput, error)
	ResendVerification(ctx context.Context, email string) (dto.ResendVerificationOutput, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, input dto.ResetPasswordInput) error
	SignOut(ctx context.Context) error
	Expire(ctx context.Context)
	Current(ctx context.Context) (dto.SessionOutput, error)
	Route() string
	Token() string
}
