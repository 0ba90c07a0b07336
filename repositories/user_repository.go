package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/zoii/goblog/models"
	"github.com/zoii/goblog/utils"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a UserRepository backed by gorm.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Register(name, email, rawPassword string) (*models.User, error) {
	var existing models.User
	if err := r.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(rawPassword)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := r.db.Create(&user).Error; err != nil {
		// Concurrent registration with the same email loses on the
		// unique constraint, not on the check above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Authenticate(email, rawPassword string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !utils.CheckPassword(user.PasswordHash, rawPassword) {
		return nil, ErrBadPassword
	}
	return &user, nil
}

func (r *userRepository) ByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
