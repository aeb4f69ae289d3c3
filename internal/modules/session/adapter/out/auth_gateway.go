package out

import (
	"context"
	"net/url"

	"studyhub/internal/modules/session/domain"
	"studyhub/internal/platform/httpapi"
)

type HTTPAuthGateway struct {
	client *httpapi.Client
}

func NewHTTPAuthGateway(client *httpapi.Client) *HTTPAuthGateway {
	return &HTTPAuthGateway{client: client}
}

func (g *HTTPAuthGateway) SignIn(ctx context.Context, email, password string) (domain.AuthResponse, error) {
	var resp domain.AuthResponse
	err := g.client.Post(ctx, "/auth/signin", map[string]string{"email": email, "password": password}, &resp)
	return resp, err
}

func (g *HTTPAuthGateway) SignUp(ctx context.Context, firstName, email, password string) (domain.AuthResponse, error) {
	var resp domain.AuthResponse
	body := map[string]string{"firstName": firstName, "email": email, "password": password}
	err := g.client.Post(ctx, "/auth/signup", body, &resp)
	return resp, err
}

func (g *HTTPAuthGateway) SignInAnonymous(ctx context.Context) (domain.AuthResponse, error) {
	var resp domain.AuthResponse
	err := g.client.Post(ctx, "/auth/anonymous", struct{}{}, &resp)
	return resp, err
}

func (g *HTTPAuthGateway) SignInGoogle(ctx context.Context, idToken, displayName, photoURL string) (domain.AuthResponse, error) {
	var resp domain.AuthResponse
	body := map[string]string{"idToken": idToken, "displayName": displayName, "photoUrl": photoURL}
	err := g.client.Post(ctx, "/auth/google", body, &resp)
	return resp, err
}

func (g *HTTPAuthGateway) VerifyEmail(ctx context.Context, token string) (domain.AuthResponse, error) {
	var resp domain.AuthResponse
	err := g.client.Get(ctx, "/auth/verify-email?token="+url.QueryEscape(token), &resp)
	return resp, err
}

func (g *HTTPAuthGateway) ResendVerification(ctx context.Context, email string) (bool, error) {
	var resp struct {
		Message string `json:"message"`
		Dev     bool   `json:"dev"`
	}
	if err := g.client.Post(ctx, "/auth/resend-verification", map[string]string{"email": email}, &resp); err != nil {
		return false, err
	}
	return resp.Dev, nil
}

func (g *HTTPAuthGateway) ForgotPassword(ctx context.Context, email string) error {
	return g.client.Post(ctx, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

func (g *HTTPAuthGateway) ResetPassword(ctx context.Context, token, password string) error {
	return g.client.Post(ctx, "/auth/reset-password", map[string]string{"token": token, "password": password}, nil)
}
