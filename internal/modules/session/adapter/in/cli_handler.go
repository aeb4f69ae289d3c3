package in

import (
	"context"

	sessiondto "studyhub/internal/modules/session/dto"
	sessionin "studyhub/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Restore(ctx context.Context) sessiondto.RestoreOutput {
	return h.usecase.Restore(ctx)
}

func (h CLIHandler) SignIn(ctx context.Context, email, password string) (sessiondto.SessionOutput, error) {
	return h.usecase.SignIn(ctx, sessiondto.SignInInput{Email: email, Password: password})
}

func (h CLIHandler) SignUp(ctx context.Context, firstName, email, password string) (sessiondto.SessionOutput, error) {
	return h.usecase.SignUp(ctx, sessiondto.SignUpInput{FirstName: firstName, Email: email, Password: password})
}

func (h CLIHandler) SignInAnonymous(ctx context.Context) (sessiondto.SessionOutput, error) {
	return h.usecase.SignInAnonymous(ctx)
}

func (h CLIHandler) SignInGoogle(ctx context.Context, idToken, displayName, photoURL string) (sessiondto.SessionOutput, error) {
	return h.usecase.SignInGoogle(ctx, sessiondto.GoogleSignInInput{IDToken: idToken, DisplayName: displayName, PhotoURL: photoURL})
}

func (h CLIHandler) VerifyEmail(ctx context.Context, token string) (sessiondto.SessionOutput, error) {
	return h.usecase.VerifyEmail(ctx, token)
}

func (h CLIHandler) ResendVerification(ctx context.Context, email string) (sessiondto.ResendVerificationOutput, error) {
	return h.usecase.ResendVerification(ctx, email)
}

func (h CLIHandler) ForgotPassword(ctx context.Context, email string) error {
	return h.usecase.ForgotPassword(ctx, email)
}

func (h CLIHandler) ResetPassword(ctx context.Context, token, password string) error {
	return h.usecase.ResetPassword(ctx, sessiondto.ResetPasswordInput{Token: token, Password: password})
}

func (h CLIHandler) SignOut(ctx context.Context) error {
	return h.usecase.SignOut(ctx)
}

func (h CLIHandler) Current(ctx context.Context) (sessiondto.SessionOutput, error) {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) Route() string {
	return h.usecase.Route()
}
