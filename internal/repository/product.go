package repository

import (
	"context"

	"github.com/Chifaaan/kdmpxkfa/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Seed(ctx context.Context) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Seed(ctx context.Context) error {
	products := []model.Product{
		{ID: "KF-PCT-500", Name: "Paracetamol 500mg", SKU: "KF-PCT-500", Description: "Analgesic, strip of 10", Price: 10000, Currency: "IDR", OrderUnit: "BOX", BaseUOM: "TAB", Content: 1},
		{ID: "KF-AMX-250", Name: "Amoxicillin 250mg", SKU: "KF-AMX-250", Description: "Antibiotic, strip of 10", Price: 25000, Currency: "IDR", OrderUnit: "BOX", BaseUOM: "TAB", Content: 10},
		{ID: "KF-VTC-100", Name: "Vitamin C 100mg", SKU: "KF-VTC-100", Description: "Supplement, bottle of 30", Price: 15000, Currency: "IDR", OrderUnit: "BTL", BaseUOM: "TAB", Content: 1},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", productIDs).
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}
