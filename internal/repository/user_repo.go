package repository

import (
	"strings"

	"go-inventory-client/internal/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByEmail(email string) (*model.User, error)
	FindByID(id uuid.UUID) (*model.User, error)
	Create(user *model.User) error
	UpdatePassword(userID uuid.UUID, hashedPassword string) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, notFound(err, "find user by email")
	}
	return &user, nil
}

func (r *userRepo) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "find user")
	}
	return &user, nil
}

func (r *userRepo) Create(user *model.User) error {
	user.Email = strings.ToLower(user.Email)
	return duplicate(r.db.Create(user).Error, "create user")
}

func (r *userRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	res := r.db.Model(&model.User{}).Where("id = ?", userID).Update("password", hashedPassword)
	if res.Error != nil {
		return errors.Wrap(res.Error, "update password")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
