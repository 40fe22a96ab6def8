package models

import (
	"errors"

	"gorm.io/gorm"
)

// ErrCartItemNotFound is returned when the user has no cart line for a product.
var ErrCartItemNotFound = errors.New("item not in cart")

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{
		db: db,
	}
}

func (r *CartRepository) Get(userID int64, productID uint) (*CartItem, error) {
	var item CartItem
	if err := r.db.
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// List returns the user's cart in insertion order so repeated reads during a
// single order conversion see the same sequence.
func (r *CartRepository) List(userID int64) ([]CartItem, error) {
	var items []CartItem
	if err := r.db.
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CartRepository) Save(item *CartItem) error {
	return r.db.Save(item).Error
}

func (r *CartRepository) Delete(item *CartItem) error {
	return r.db.Delete(item).Error
}
