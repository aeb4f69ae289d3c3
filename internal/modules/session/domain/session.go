package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Persisted storage keys.
const (
	TokenKey = "jwtToken"
	UserKey  = "user"
)

type Route string

const (
	RouteSignIn    Route = "signin"
	RouteDashboard Route = "dashboard"
)

// UserID accepts both JSON numbers and numeric strings; older user records
// stored the id as a string.
type UserID int64

func (u *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*u = 0
		return nil
	}
	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("user id: %w", err)
		}
		raw = strings.TrimSpace(unquoted)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("user id %q is not numeric", raw)
	}
	*u = UserID(v)
	return nil
}

func (u UserID) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(u))
}

// Session is the authenticated identity plus its credential.
type Session struct {
	Token         string `json:"token"`
	ID            UserID `json:"id"`
	UID           string `json:"uid,omitempty"`
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	UserImage     string `json:"userImage,omitempty"`
	IsPremium     bool   `json:"isPremium"`
	EmailVerified bool   `json:"emailVerified"`
}

// Valid reports the session invariant: a token and a positive id.
func (s Session) Valid() bool {
	return strings.TrimSpace(s.Token) != "" && s.ID > 0
}

// AuthResponse is the payload shared by every successful auth endpoint.
type AuthResponse struct {
	Token         string  `json:"token"`
	Type          string  `json:"type,omitempty"`
	ID            UserID  `json:"id"`
	UID           string  `json:"uid,omitempty"`
	Email         string  `json:"email"`
	FirstName     string  `json:"firstName"`
	UserImage     *string `json:"userImage,omitempty"`
	IsPremium     *bool   `json:"isPremium,omitempty"`
	EmailVerified *bool   `json:"emailVerified,omitempty"`
}
