package models

import "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/roles"

type User struct {
	ID           int        `json:"id"`
	Username     string     `json:"username"`
	Fullname     string     `json:"fullname"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         roles.Role `json:"role"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Fullname string `json:"fullname"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	Fullname *string `json:"fullname"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// UserChanges carries only the columns an update actually touches.
type UserChanges struct {
	Fullname     *string
	PasswordHash *string
	Role         *string
}

func (c *UserChanges) HasChanges() bool {
	return c.Fullname != nil || c.PasswordHash != nil || c.Role != nil
}

// Actor identifies the authenticated caller for service-level authorization.
// Handlers build it from JWT claims and thread it through explicitly.
type Actor struct {
	UserID int
	Role   roles.Role
}
