package types

import "encoding/json"

// Durable storage keys. Nothing else is persisted by the session layer.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// AuthState is the coarse authentication state of a session.
type AuthState int

const (
	// StateUnknown holds until the startup reconciliation has run.
	StateUnknown AuthState = iota
	StateUnauthenticated
	StateAuthenticated
)

// String returns a lowercase label for logs and CLI output.
func (s AuthState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Credentials are submitted to login and never persisted.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// NewUser is the registration payload.
type NewUser struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	NativeLanguage   string `json:"nativeLanguage,omitempty"`
	LearningLanguage string `json:"learningLanguage,omitempty"`
}

// User is the identity snapshot returned by login and register and kept
// under KeyUser. Raw holds the exact response body so the snapshot can be
// persisted without loss.
type User struct {
	ID               ID     `json:"id,omitempty"`
	Username         string `json:"username"`
	Email            string `json:"email,omitempty"`
	NativeLanguage   string `json:"nativeLanguage,omitempty"`
	LearningLanguage string `json:"learningLanguage,omitempty"`
	Token            string `json:"token,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the known fields and retains the raw payload.
func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*u = User(p)
	u.Raw = append(json.RawMessage(nil), b...)
	return nil
}

// Snapshot returns the bytes to persist: the raw payload when present,
// otherwise the re-encoded known fields.
func (u User) Snapshot() ([]byte, error) {
	if len(u.Raw) > 0 {
		return u.Raw, nil
	}
	type plain User
	return json.Marshal(plain(u))
}

// Session is the in-memory view of the authenticated user.
//
// IsAuthenticated implies Token is non-empty.
type Session struct {
	State     AuthState `json:"-"`
	User      User      `json:"user"`
	Token     string    `json:"-"`
	IsLoading bool      `json:"isLoading"`
	LastError string    `json:"error,omitempty"`
}

// IsAuthenticated reports whether the session holds a live token.
func (s Session) IsAuthenticated() bool {
	return s.State == StateAuthenticated && s.Token != ""
}

// UserID returns the identifier from the user snapshot.
func (s Session) UserID() ID { return s.User.ID }

// Username returns the username from the user snapshot.
func (s Session) Username() string { return s.User.Username }
