package httpapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "studyhub/internal/platform/errors"
	"studyhub/internal/platform/httpapi"
)

func TestBearerHeaderOnlyWhenTokenPresent(t *testing.T) {
	t.Parallel()
	seen := make(chan string, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Get("Authorization")
		if r.Header.Get("X-Request-Id") == "" {
			t.Errorf("missing request id header")
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := httpapi.New(srv.URL, time.Second, nil)
	token := ""
	client.SetTokenSource(func() string { return token })

	var out struct{ OK bool }
	if err := client.Get(context.Background(), "/public", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	token = "abc"
	if err := client.Get(context.Background(), "/private", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if !out.OK {
		t.Fatalf("expected decoded body")
	}
	if first, second := <-seen, <-seen; first != "" || second != "Bearer abc" {
		t.Fatalf("unexpected authorization headers %q, %q", first, second)
	}
}

func TestValidationErrorCarriesFieldMessages(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"defaultMessage":"email must be valid"},{"message":"password too short"}]}`))
	}))
	defer srv.Close()

	err := httpapi.New(srv.URL, time.Second, nil).Post(context.Background(), "/auth/signup", map[string]string{}, nil)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected validation failure, got %v", err)
	}
	apiErr, ok := apperrors.AsAPIError(err)
	if !ok || len(apiErr.Fields) != 2 || apiErr.Fields[0] != "email must be valid" {
		t.Fatalf("unexpected fields %+v", apiErr)
	}
}

func TestPlainTextErrorBodyBecomesMessage(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("Invalid contentType"))
	}))
	defer srv.Close()

	err := httpapi.New(srv.URL, time.Second, nil).Post(context.Background(), "/progress/complete", map[string]string{}, nil)
	apiErr, ok := apperrors.AsAPIError(err)
	if !ok || apiErr.Message != "Invalid contentType" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestUnauthorizedInvokesHookForAnyPath(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := httpapi.New(srv.URL, time.Second, nil)
	hooks := 0
	client.OnUnauthorized(func(context.Context) { hooks++ })
	for _, path := range []string{"/notes", "/goals/today"} {
		err := client.Get(context.Background(), path, nil)
		if !errors.Is(err, apperrors.ErrUnauthorized) {
			t.Fatalf("expected unauthorized for %s, got %v", path, err)
		}
	}
	if hooks != 2 {
		t.Fatalf("expected hook per 401, got %d", hooks)
	}
}

func TestStatusKinds(t *testing.T) {
	t.Parallel()
	cases := map[int]error{
		http.StatusNotFound:            apperrors.ErrNotFound,
		http.StatusInternalServerError: apperrors.ErrServer,
		http.StatusBadGateway:          apperrors.ErrServer,
	}
	for status, want := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))
		err := httpapi.New(srv.URL, time.Second, nil).Get(context.Background(), "/x", nil)
		srv.Close()
		if !errors.Is(err, want) {
			t.Fatalf("status %d: expected %v, got %v", status, want, err)
		}
	}
}

func TestNetworkFailureIsTyped(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := httpapi.New(url, time.Second, nil).Get(context.Background(), "/progress/summary", nil)
	if !errors.Is(err, apperrors.ErrNetworkUnavailable) {
		t.Fatalf("expected network error, got %v", err)
	}
}
