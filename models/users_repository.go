package models

import (
	"errors"

	"gorm.io/gorm"
)

// ErrUserNotFound is returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

type UsersRepository struct {
	db *gorm.DB
}

func NewUsersRepository(db *gorm.DB) *UsersRepository {
	return &UsersRepository{
		db: db,
	}
}

func (r *UsersRepository) GetByID(userID int64) (*User, error) {
	var user User
	if err := r.db.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetOrCreate provisions the user on first touch. Username and full name are
// only written on creation; later interactions do not overwrite them.
func (r *UsersRepository) GetOrCreate(userID int64, username, fullName string) (*User, error) {
	user := User{
		UserID:   userID,
		Username: username,
		FullName: fullName,
	}
	if err := r.db.Where("user_id = ?", userID).FirstOrCreate(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
