package repository

import (
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/flavorconnect/flavorconnect/internal/model"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
)

type UserRepository interface {
	Create(user *model.User) error
	ByID(id string) (*model.User, error)
	ByEmail(email string) (*model.User, error)
	ByUsername(username string) (*model.User, error)
	All() ([]*model.User, error)
	Count() (int, error)
	CountByLevel(level model.UserLevel) (int, error)
	Update(user *model.User) error
	Delete(id string) error
}

var userTable = table[model.User]{name: "user_account", idColumn: "id", notFound: ErrUserNotFound}

var userColumns = []string{"id", "username", "email", "password_hash", "user_level", "is_active", "created_at"}

type userRepository struct {
	db sqlx.Ext
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	err := userTable.insert(r.db, user, userColumns...)
	return mapUserErr(err)
}

func (r *userRepository) ByID(id string) (*model.User, error) {
	return userTable.byID(r.db, id)
}

func (r *userRepository) ByEmail(email string) (*model.User, error) {
	return userTable.one(r.db, `SELECT * FROM user_account WHERE LOWER(email) = LOWER(?)`, email)
}

func (r *userRepository) ByUsername(username string) (*model.User, error) {
	return userTable.one(r.db, `SELECT * FROM user_account WHERE LOWER(username) = LOWER(?)`, username)
}

func (r *userRepository) All() ([]*model.User, error) {
	return userTable.bySQL(r.db, `SELECT * FROM user_account ORDER BY user_level DESC, username ASC`)
}

func (r *userRepository) Count() (int, error) {
	return userTable.countBySQL(r.db, `SELECT COUNT(*) FROM user_account`)
}

func (r *userRepository) CountByLevel(level model.UserLevel) (int, error) {
	return userTable.countBySQL(r.db, `SELECT COUNT(*) FROM user_account WHERE user_level = ?`, level)
}

func (r *userRepository) Update(user *model.User) error {
	err := userTable.update(r.db, user, userColumns...)
	return mapUserErr(err)
}

func (r *userRepository) Delete(id string) error {
	return userTable.delete(r.db, id)
}

func mapUserErr(err error) error {
	if !isUniqueViolation(err) {
		return err
	}
	if strings.Contains(err.Error(), "username") {
		return ErrDuplicateUsername
	}
	return ErrDuplicateEmail
}
