package service

import (
	"errors"

	"github.com/flavorconnect/flavorconnect/internal/model"
)

var ErrForbidden = errors.New("not allowed")

// Actor is the user on whose behalf a service call runs
type Actor struct {
	UserID string
	Level  model.UserLevel
}

func (a Actor) IsAdmin() bool {
	return a.UserID != "" && (a.Level == model.UserLevelAdmin || a.Level == model.UserLevelSuperAdmin)
}

func (a Actor) IsSuperAdmin() bool {
	return a.UserID != "" && a.Level == model.UserLevelSuperAdmin
}

// CanEdit reports whether the actor owns the record or is an admin
func (a Actor) CanEdit(ownerID string) bool {
	return a.UserID != "" && (a.UserID == ownerID || a.IsAdmin())
}
