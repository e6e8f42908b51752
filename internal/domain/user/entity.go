package user

import (
	"time"

	"github.com/google/uuid"
)

// User entity. HCS admins carry the id of the center they administer;
// all other roles have a nil center id.
type User struct {
	id           uuid.UUID
	email        Email
	passwordHash string
	role         Role
	centerID     *uuid.UUID
	phone        *Phone
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(email Email, passwordHash string, role Role, centerID *uuid.UUID) *User {
	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		centerID:     centerID,
		isActive:     true,
	}
}

func ReconstructUser(
	id uuid.UUID,
	email Email,
	passwordHash string,
	role Role,
	centerID *uuid.UUID,
	phone *Phone,
	isActive bool,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		centerID:     centerID,
		phone:        phone,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) CenterID() *uuid.UUID { return u.centerID }
func (u *User) Phone() *Phone        { return u.phone }
func (u *User) IsActive() bool       { return u.isActive }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
