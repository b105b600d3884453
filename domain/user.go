package domain

// Roles known to the backend.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is the user record returned by the backend. Only Username is guaranteed;
// the rest is read defensively.
type User struct {
	ID        int       `json:"id,omitempty"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	FullName  *string   `json:"full_name,omitempty"`
	Role      string    `json:"role,omitempty"`
	IsActive  bool      `json:"is_active,omitempty"`
	CreatedAt Timestamp `json:"created_at,omitempty"`
}

// DisplayName returns the full name, falling back to the username.
func (u User) DisplayName() string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.Username
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// TokenResponse is returned by login and register.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// VerifyResponse is returned by POST /auth/verify.
type VerifyResponse struct {
	Valid    bool   `json:"valid"`
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}
