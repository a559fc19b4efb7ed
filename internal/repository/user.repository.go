package repository

import (
	"time"

	"campusconnect/internal/auth"
	"campusconnect/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserByVerificationToken(token string) (*models.User, error)
	GetUserByResetToken(hashedToken string, now time.Time) (*models.User, error)
	UpdateUser(user *models.User) error
	PatchUser(id uint, data map[string]interface{}) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateUser stores a new user. The raw password is replaced by a bcrypt
// hash before it touches the database.
func (ur *userRepository) CreateUser(user *models.User) error {
	if user.Password != "" && !auth.IsHashed(user.Password) {
		hashed, err := auth.HashPassword(user.Password)
		if err != nil {
			return err
		}
		user.Password = hashed
	}
	return ur.db.Create(user).Error
}

func (ur *userRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := ur.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *userRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := ur.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *userRepository) GetUserByVerificationToken(token string) (*models.User, error) {
	var user models.User
	err := ur.db.Where("verification_token = ?", token).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByResetToken matches the stored reset-token digest and requires the
// expiry to still be in the future.
func (ur *userRepository) GetUserByResetToken(hashedToken string, now time.Time) (*models.User, error) {
	var user models.User
	err := ur.db.
		Where("reset_password_token = ? AND reset_password_expire > ?", hashedToken, now).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser saves the user, re-hashing the password only when it was set to
// a new plaintext value. Saving an unchanged user never re-hashes.
func (ur *userRepository) UpdateUser(user *models.User) error {
	if user.Password != "" && !auth.IsHashed(user.Password) {
		hashed, err := auth.HashPassword(user.Password)
		if err != nil {
			return err
		}
		user.Password = hashed
	}
	return ur.db.Save(user).Error
}

func (ur *userRepository) PatchUser(id uint, data map[string]interface{}) error {
	var user models.User
	if err := ur.db.First(&user, id).Error; err != nil {
		return err
	}
	return ur.db.Model(&user).Updates(data).Error
}
