package models

import "time"

// User represents an account entity used for authentication and authorization.
// Password holds the bcrypt hash and is never serialized.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Username is the unique login of the user.
	Username string `json:"username"`

	// Password is the bcrypt hash of the user's password.
	Password string `json:"-"`

	// Role defines what the user is allowed to see and change.
	Role Role `json:"role"`

	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// AuthRequest is the body of the register and login endpoints.
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// AuthResponse is returned by the register and login endpoints.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Session is the authenticated state stored on the client device.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
