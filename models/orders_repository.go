package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

type OrdersRepository struct {
	db *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		db: db,
	}
}

func (r *OrdersRepository) GetByID(id uint) (*Order, error) {
	var order Order
	if err := r.db.
		Preload("Items").
		Preload("Items.Product").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// CreateFromCart drains the given cart lines into a new PROCESSING order.
// The order row, its items and the cart deletions commit as one transaction;
// on any failure nothing is applied.
func (r *OrdersRepository) CreateFromCart(userID int64, cartItems []CartItem) (*Order, error) {
	order := Order{
		Reference: newOrderReference(),
		UserID:    userID,
		Status:    OrderStatusProcessing,
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, item := range cartItems {
			orderItem := OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
		}
		for _, item := range cartItems {
			if err := tx.Delete(&CartItem{}, "id = ?", item.ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Re-read with items and their products resolved, so callers can render
	// line names right away.
	return r.GetByID(order.ID)
}

func newOrderReference() string {
	return time.Now().UTC().Format("20060102150405") + "-" + uuid.NewString()
}

func (r *OrdersRepository) UpdateStatus(id uint, status OrderStatus) error {
	res := r.db.Model(&Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *OrdersRepository) SetDeleted(id uint, deleted bool) error {
	res := r.db.Model(&Order{}).Where("id = ?", id).Update("is_deleted", deleted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// PurgeDeleted hard-deletes every soft-deleted order, items first so the
// foreign keys never dangle. Returns the number of orders removed.
func (r *OrdersRepository) PurgeDeleted() (int64, error) {
	var purged int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&Order{}).Where("is_deleted = ?", true).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Delete(&OrderItem{}, "order_id IN ?", ids).Error; err != nil {
			return err
		}
		res := tx.Delete(&Order{}, "id IN ?", ids)
		if res.Error != nil {
			return res.Error
		}
		purged = res.RowsAffected
		return nil
	})
	return purged, err
}

func (r *OrdersRepository) ListByUser(userID int64, includeDeleted bool) ([]Order, error) {
	query := r.db.
		Preload("Items").
		Preload("Items.Product").
		Where("user_id = ?", userID)
	if !includeDeleted {
		query = query.Where("is_deleted = ?", false)
	}
	var orders []Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrdersRepository) ListAll(includeDeleted bool) ([]Order, error) {
	query := r.db.
		Preload("User").
		Preload("Items").
		Preload("Items.Product")
	if !includeDeleted {
		query = query.Where("is_deleted = ?", false)
	}
	var orders []Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
