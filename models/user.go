package models

import "time"

// Gender enumerates the accepted values of the User.Gender field.
// Stored in the database as a plain string.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// User represents a principal: an account that can authenticate and own
// resources. Sensitive fields must never be exposed outside trusted
// boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Username is the unique login identifier used during authentication
	// and carried as the "sub" claim of issued tokens.
	Username string `json:"username"`

	// Email is the unique contact address of the user.
	Email string `json:"email"`

	// Phone is an optional unique phone number.
	Phone string `json:"phone,omitempty"`

	// FullName is the display name of the user. Non-sensitive.
	FullName string `json:"full_name,omitempty"`

	// Bio is an optional free-form profile description.
	Bio string `json:"bio,omitempty"`

	// Gender is the self-reported gender of the user.
	Gender Gender `json:"gender"`

	// HashedPassword stores the bcrypt hash of the user's password.
	// MUST never hold plaintext and is never serialized.
	HashedPassword string `json:"-"`

	// TokenBalance is the amount of service tokens owned by the user.
	TokenBalance int64 `json:"token_balance"`

	// ProfilePicture is the object-storage key of the user's avatar, if any.
	ProfilePicture string `json:"profile_picture,omitempty"`

	// IsActive reports whether the account is enabled. Soft deletion
	// clears this flag instead of removing the row.
	IsActive bool `json:"is_active"`

	// IsSuperuser grants the account administrative privileges, such as
	// mutating other users' resources.
	IsSuperuser bool `json:"is_superuser"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last mutation of the account.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// ID returns the primary key of the record.
// Implements the [Entity] interface used by the generic CRUD facade.
func (u User) ID() int64 {
	return u.UserID
}

// UserUpdate carries the mutable profile fields of a user.
// Nil pointers mean "leave unchanged".
type UserUpdate struct {
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	FullName       *string `json:"full_name,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	Gender         *Gender `json:"gender,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}

// Entity is the constraint satisfied by every persisted domain type.
// The generic repository and service layers are parameterized over it.
type Entity interface {
	TableName() string
	ID() int64
}
