package domain

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User represents a user entity in the system.
// A user can register, login, open topics and write comments.
type User struct {
	ID        int64     // Unique identifier
	Name      string    // Display name
	Username  string    // Login username (unique)
	Password  string    // Bcrypt hashed password
	CreatedAt time.Time // Account creation timestamp
	UpdatedAt time.Time // Last profile update timestamp
}

// Author is the public projection of a User attached to topics and comments.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AuthorOf projects u, returning nil for a nil user.
func AuthorOf(u *User) *Author {
	if u == nil {
		return nil
	}
	return &Author{ID: u.ID, Name: u.Name}
}

// Caller identifies who issues a request. The zero value is an anonymous caller.
type Caller struct {
	UserID int64
}

// Anonymous returns a caller with no identity.
func Anonymous() Caller {
	return Caller{}
}

// Authenticated reports whether the caller carries a resolved user id.
func (c Caller) Authenticated() bool {
	return c.UserID > 0
}

// Claims is the JWT payload issued at login and checked by the auth middleware.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// UserRepository defines the contract for user data persistence.
type UserRepository interface {
	// GetByID retrieves a user by their ID.
	// Returns ErrNotFound if the user doesn't exist.
	GetByID(ctx context.Context, id int64) (User, error)

	// Insert creates a new user account.
	// Backfills the ID in the provided User object upon success.
	Insert(ctx context.Context, u *User) error

	// GetByUsername retrieves a user by their username.
	// Used during login to verify credentials.
	GetByUsername(ctx context.Context, username string) (User, error)

	GetByIDs(ctx context.Context, userIDs []int64) ([]User, error)
}

// UserUsecase defines the business logic contract for user operations.
type UserUsecase interface {
	// Register creates a new user account.
	// Returns ErrConflict if the username already exists.
	Register(ctx context.Context, name, username, password string) (User, error)

	// Login verifies user credentials and returns a JWT token.
	// Returns ErrNotFound if the user doesn't exist.
	// Returns ErrBadParamInput if the password is incorrect.
	Login(ctx context.Context, username, password string) (string, error)
}
