package models

// CartItem is one line of a user's cart. There is at most one row per
// (user, product) pair and quantity is always at least 1; a line whose
// quantity would drop to zero is deleted instead.
type CartItem struct {
	ID        uint    `gorm:"primaryKey"`
	UserID    int64   `gorm:"uniqueIndex:idx_cart_user_product;not null"`
	ProductID uint    `gorm:"uniqueIndex:idx_cart_user_product;not null"`
	Quantity  int     `gorm:"not null;default:1"`
	User      User    `gorm:"foreignKey:UserID"`
	Product   Product `gorm:"foreignKey:ProductID"`
}

func (c *CartItem) TableName() string {
	return "cart_items"
}
