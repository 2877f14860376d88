package model

import (
	"time"
)

// UserLevel is the stored role code of an account
type UserLevel string

const (
	UserLevelUser       UserLevel = "u"
	UserLevelAdmin      UserLevel = "a"
	UserLevelSuperAdmin UserLevel = "s"
)

func (l UserLevel) Valid() bool {
	switch l {
	case UserLevelUser, UserLevelAdmin, UserLevelSuperAdmin:
		return true
	}
	return false
}

func (l UserLevel) Label() string {
	switch l {
	case UserLevelAdmin:
		return "Admin"
	case UserLevelSuperAdmin:
		return "Super Admin"
	default:
		return "User"
	}
}

type User struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Level        UserLevel `db:"user_level"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
}

// IsAdmin reports admin rights, which super-admins also hold
func (u *User) IsAdmin() bool {
	return u.Level == UserLevelAdmin || u.Level == UserLevelSuperAdmin
}

func (u *User) IsSuperAdmin() bool {
	return u.Level == UserLevelSuperAdmin
}
