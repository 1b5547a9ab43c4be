package repository

import (
	"context"

	"github.com/Chifaaan/kdmpxkfa/internal/model"
	"gorm.io/gorm"
)

const RoleAdminPharmacy = "admin-apotek"

type UserRepository interface {
	FindByID(ctx context.Context, userID string) (*model.User, error)
	AdminsByPharmacy(ctx context.Context, pharmacyID string) ([]*model.User, error)
}

type userRepoImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepoImpl{
		db: db,
	}
}

func (r *userRepoImpl) FindByID(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&user).Error

	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepoImpl) AdminsByPharmacy(ctx context.Context, pharmacyID string) ([]*model.User, error) {
	var admins []*model.User
	err := r.db.WithContext(ctx).
		Where("pharmacy_id = ? AND role = ?", pharmacyID, RoleAdminPharmacy).
		Find(&admins).Error

	if err != nil {
		return nil, err
	}

	return admins, nil
}
