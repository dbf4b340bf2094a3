package model

// User is the authenticated identity behind a backend session cookie
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// DisplayName returns the username, falling back to the email
func (u *User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

// AuthMode selects which form the auth modal shows
type AuthMode string

const (
	AuthModeLogin  AuthMode = "login"
	AuthModeSignup AuthMode = "signup"
)

// ParseAuthMode converts a raw value into an AuthMode
func ParseAuthMode(s string) (AuthMode, bool) {
	switch AuthMode(s) {
	case AuthModeLogin:
		return AuthModeLogin, true
	case AuthModeSignup:
		return AuthModeSignup, true
	}
	return "", false
}

// Other returns the opposite mode
func (m AuthMode) Other() AuthMode {
	if m == AuthModeSignup {
		return AuthModeLogin
	}
	return AuthModeSignup
}

// AuthModalState is the transient state of the sign-in/sign-up modal
type AuthModalState struct {
	Open bool     `json:"open"`
	Mode AuthMode `json:"mode"`
}
