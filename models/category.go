package models

// Category is a top-level product grouping. Names are unique at this level.
type Category struct {
	ID            uint          `gorm:"primaryKey"`
	Name          string        `gorm:"uniqueIndex;not null"`
	Subcategories []Subcategory `gorm:"foreignKey:CategoryID"`
}

func (c *Category) TableName() string {
	return "categories"
}

// Subcategory sits between a category and its products.
type Subcategory struct {
	ID         uint     `gorm:"primaryKey"`
	Name       string   `gorm:"not null"`
	CategoryID uint     `gorm:"not null"`
	Category   Category `gorm:"foreignKey:CategoryID"`
}

func (s *Subcategory) TableName() string {
	return "subcategories"
}
