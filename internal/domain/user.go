package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// User represents a registered user. Either Email or Phone identifies the
// account at login time; both may be set.
// swagger:model User
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile holds the display information attached to a user.
// swagger:model Profile
type Profile struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// UserWithProfile bundles a user with its profile for display purposes
// (rosters, notification senders).
type UserWithProfile struct {
	User    *User    `json:"user"`
	Profile *Profile `json:"profile"`
}

// DisplayName returns the profile first name, falling back to username and email.
func (u *UserWithProfile) DisplayName() string {
	if u.Profile != nil && u.Profile.Firstname != "" {
		return u.Profile.Firstname
	}
	if u.Profile != nil && u.Profile.Username != "" {
		return u.Profile.Username
	}
	return u.User.Email
}

// PasswordHasher hashes and verifies passwords. Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (hash string, err error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	CreateProfile(ctx context.Context, profile *Profile) error
	GetByID(ctx context.Context, id string) (*UserWithProfile, error)
	GetByEmailOrPhone(ctx context.Context, email, phone string) (*User, error)
}

// LoginCodeRepository stores one-time login codes keyed by an opaque
// verification key handed back to the client.
type LoginCodeRepository interface {
	Create(ctx context.Context, key, userID, codeHash string, expiresAt time.Time) error
	// Consume atomically looks up and deletes the code for the key. It returns
	// the bound user ID and whether a matching, unexpired code existed.
	Consume(ctx context.Context, key, codeHash string) (userID string, consumed bool, err error)
}

// LoginOTPEmailData carries the fields rendered into the login OTP email.
type LoginOTPEmailData struct {
	Email string
	OTP   string
}

// Mailer sends transactional email. Delivery is best-effort; the development
// configuration uses a no-op implementation.
type Mailer interface {
	SendLoginOTP(ctx context.Context, data *LoginOTPEmailData) error
}

// AuthService defines account creation and the login flow: a password check
// that hands back a verification key plus emailed OTP, then an OTP exchange
// for a bearer token.
type AuthService interface {
	SignUp(ctx context.Context, email, phone, password string, profile *Profile) (*UserWithProfile, error)
	Login(ctx context.Context, email, phone, password string) (verificationKey string, err error)
	VerifyLogin(ctx context.Context, verificationKey, otp string) (token string, user *UserWithProfile, err error)
}
