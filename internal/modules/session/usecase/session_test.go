package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sessionout "studyhub/internal/modules/session/adapter/out"
	"studyhub/internal/modules/session/domain"
	sessiondto "studyhub/internal/modules/session/dto"
	"studyhub/internal/modules/session/service"
	"studyhub/internal/modules/session/usecase"
	apperrors "studyhub/internal/platform/errors"
	"studyhub/internal/platform/events"
	"studyhub/internal/platform/httpapi"
	"studyhub/internal/platform/kv"
)

type fakeGateway struct {
	resp  domain.AuthResponse
	err   error
	calls int
}

func (f *fakeGateway) SignIn(context.Context, string, string) (domain.AuthResponse, error) {
	f.calls++
	return f.resp, f.err
}
func (f *fakeGateway) SignUp(context.Context, string, string, string) (domain.AuthResponse, error) {
	f.calls++
	return f.resp, f.err
}
func (f *fakeGateway) SignInAnonymous(context.Context) (domain.AuthResponse, error) {
	f.calls++
	return f.resp, f.err
}
func (f *fakeGateway) SignInGoogle(context.Context, string, string, string) (domain.AuthResponse, error) {
	f.calls++
	return f.resp, f.err
}
func (f *fakeGateway) VerifyEmail(context.Context, string) (domain.AuthResponse, error) {
	f.calls++
	return f.resp, f.err
}
func (f *fakeGateway) ResendVerification(context.Context, string) (bool, error) {
	f.calls++
	return true, f.err
}
func (f *fakeGateway) ForgotPassword(context.Context, string) error {
	f.calls++
	return f.err
}
func (f *fakeGateway) ResetPassword(context.Context, string, string) error {
	f.calls++
	return f.err
}

func newInteractor(store kv.Store, gateway *fakeGateway, bus *events.Bus) *usecase.Interactor {
	return usecase.NewInteractor(service.NewSessionService(), sessionout.NewKVCredentialStore(store), gateway, bus, nil)
}

func TestSignInPersistsAndRoutesToDashboard(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	bus := events.NewBus()
	var signals int
	bus.Subscribe(events.SessionChanged, func() { signals++ })
	gateway := &fakeGateway{resp: domain.AuthResponse{Token: "jwt-1", ID: 7, Email: "a@b.c", FirstName: "Ana"}}
	uc := newInteractor(store, gateway, bus)

	out, err := uc.SignIn(context.Background(), sessiondto.SignInInput{Email: " a@b.c ", Password: "pw"})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if out.UserID != 7 || out.FirstName != "Ana" {
		t.Fatalf("unexpected output %+v", out)
	}
	if uc.Route() != string(domain.RouteDashboard) || uc.Token() != "jwt-1" {
		t.Fatalf("expected dashboard route with token, got %q %q", uc.Route(), uc.Token())
	}
	if signals != 1 {
		t.Fatalf("expected one session signal, got %d", signals)
	}
	token, err := store.Get(context.Background(), domain.TokenKey)
	if err != nil || string(token) != "jwt-1" {
		t.Fatalf("token not persisted: %q %v", token, err)
	}
	if _, err := store.Get(context.Background(), domain.UserKey); err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
}

func TestSignInRejectsResponseWithoutID(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	uc := newInteractor(store, &fakeGateway{resp: domain.AuthResponse{Token: "jwt"}}, events.NewBus())
	_, err := uc.SignInAnonymous(context.Background())
	var failure *sessiondto.AuthFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected AuthFailure, got %v", err)
	}
	if uc.Route() != string(domain.RouteSignIn) {
		t.Fatalf("route must stay on sign in")
	}
	if _, err := store.Get(context.Background(), domain.TokenKey); !errors.Is(err, kv.ErrKeyNotFound) {
		t.Fatalf("nothing should be persisted, got %v", err)
	}
}

func TestSignInFailureMessage(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{err: &apperrors.APIError{Kind: apperrors.KindUnauthorized, Status: 401}}
	uc := newInteractor(kv.NewMemoryStore(), gateway, events.NewBus())
	_, err := uc.SignIn(context.Background(), sessiondto.SignInInput{Email: "a@b.c", Password: "bad"})
	if err == nil || err.Error() != "Invalid email or password" {
		t.Fatalf("unexpected error %v", err)
	}
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("failure must keep the unauthorized kind")
	}
}

func TestSignInValidatesLocally(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{}
	uc := newInteractor(kv.NewMemoryStore(), gateway, events.NewBus())
	if _, err := uc.SignIn(context.Background(), sessiondto.SignInInput{Email: "", Password: "pw"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if gateway.calls != 0 {
		t.Fatalf("gateway must not be called")
	}
}

func TestRestoreIsIdempotent(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	creds := sessionout.NewKVCredentialStore(store)
	if err := creds.Save(context.Background(), domain.Session{Token: "jwt", ID: 3, Email: "x@y.z"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	uc := newInteractor(store, &fakeGateway{}, events.NewBus())
	first := uc.Restore(context.Background())
	second := uc.Restore(context.Background())
	if !first.Restored || first != second {
		t.Fatalf("restore must be idempotent: %+v vs %+v", first, second)
	}
	if first.Route != string(domain.RouteDashboard) {
		t.Fatalf("expected dashboard, got %q", first.Route)
	}
}

func TestRestoreTreatsMalformedDataAsAbsent(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"not json":   `{"token":`,
		"missing id": `{"email":"a@b.c"}`,
		"bad id":     `{"id":"abc"}`,
	}
	for name, user := range cases {
		user := user
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			store := kv.NewMemoryStore()
			_ = store.Set(context.Background(), domain.TokenKey, []byte("jwt"))
			_ = store.Set(context.Background(), domain.UserKey, []byte(user))
			uc := newInteractor(store, &fakeGateway{}, events.NewBus())
			out := uc.Restore(context.Background())
			if out.Restored || out.Route != string(domain.RouteSignIn) {
				t.Fatalf("expected sign in route, got %+v", out)
			}
			if _, err := uc.Current(context.Background()); !errors.Is(err, apperrors.ErrNoActiveSession) {
				t.Fatalf("expected no active session, got %v", err)
			}
		})
	}
}

func TestSignOutIsIdempotent(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	uc := newInteractor(store, &fakeGateway{resp: domain.AuthResponse{Token: "jwt", ID: 1}}, events.NewBus())
	if _, err := uc.SignInAnonymous(context.Background()); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	for n := 0; n < 2; n++ {
		if err := uc.SignOut(context.Background()); err != nil {
			t.Fatalf("sign out %d: %v", n, err)
		}
	}
	if uc.Token() != "" || uc.Route() != string(domain.RouteSignIn) {
		t.Fatalf("expected cleared session")
	}
}

func TestUnauthorizedFromAnyEndpointExpiresSession(t *testing.T) {
	t.Parallel()
	var sawBearer atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/signin":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"token":"jwt-9","id":"9","email":"a@b.c","firstName":"Ana","isPremium":false}`))
		case "/progress/summary":
			if r.Header.Get("Authorization") == "Bearer jwt-9" {
				sawBearer.Store(true)
			}
			w.WriteHeader(http.StatusUnauthorized)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	store := kv.NewMemoryStore()
	bus := events.NewBus()
	client := httpapi.New(srv.URL, 2*time.Second, nil)
	uc := usecase.NewInteractor(service.NewSessionService(), sessionout.NewKVCredentialStore(store), sessionout.NewHTTPAuthGateway(client), bus, nil)
	client.SetTokenSource(uc.Token)
	client.OnUnauthorized(uc.Expire)

	if _, err := uc.SignIn(context.Background(), sessiondto.SignInInput{Email: "a@b.c", Password: "pw"}); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	var changed int
	bus.Subscribe(events.SessionChanged, func() { changed++ })

	err := client.Get(context.Background(), "/progress/summary", nil)
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if !sawBearer.Load() {
		t.Fatalf("request should carry the session token")
	}
	if uc.Route() != string(domain.RouteSignIn) || uc.Token() != "" {
		t.Fatalf("session must be cleared after 401")
	}
	if changed != 1 {
		t.Fatalf("expected one session signal, got %d", changed)
	}
	if _, err := store.Get(context.Background(), domain.TokenKey); !errors.Is(err, kv.ErrKeyNotFound) {
		t.Fatalf("token must be removed, got %v", err)
	}
	if out := uc.Restore(context.Background()); out.Restored {
		t.Fatalf("restore after expiry must not find a session")
	}
}
