package dto

type SignInInput struct {
	Email    string
	Password string
}

type SignUpInput struct {
	FirstName string
	Email     string
	Password  string
}

type GoogleSignInInput struct {
	IDToken     string
	DisplayName string
	PhotoURL    string
}

type ResetPasswordInput struct {
	Token    string
	Password string
}

type SessionOutput struct {
	UserID        int64
	UID           string
	Email         string
	FirstName     string
	UserImage     string
	IsPremium     bool
	EmailVerified bool
}

type RestoreOutput struct {
	Restored bool
	Route    string
	Session  SessionOutput
}

type ResendVerificationOutput struct {
	Dev bool
}

// AuthFailure is the user-facing outcome of a failed auth operation. Message
// is safe to render inline; Err keeps the boundary error for errors.Is.
type AuthFailure struct {
	Op      string
	Message string
	Err     error
}

func (f *AuthFailure) Error() string { return f.Message }

func (f *AuthFailure) Unwrap() error { return f.Err }
