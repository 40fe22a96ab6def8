package models

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog item. SKU is the immutable business key and is
// globally unique. Images and specifications are owned by the product
// and removed with it.
type Product struct {
	ID            uint            `gorm:"primaryKey"`
	Name          string          `gorm:"not null"`
	Description   string          `gorm:"not null"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ImageURL      string          `gorm:"not null"`
	FileType      string          `gorm:"not null"`
	SKU           string          `gorm:"uniqueIndex;not null"`
	InStock       bool            `gorm:"not null;default:true"`
	SubcategoryID uint            `gorm:"not null"`
	Subcategory   Subcategory     `gorm:"foreignKey:SubcategoryID"`
	Brand         string
	Diagonal      string

	Images         []ProductImage         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Specifications []ProductSpecification `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (p *Product) TableName() string {
	return "products"
}

// ProductImage is one entry of a product's media gallery, ordered by id.
type ProductImage struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"index;not null"`
	ImageURL  string `gorm:"not null"`
	FileType  string `gorm:"not null"`
}

func (i *ProductImage) TableName() string {
	return "product_images"
}

// ProductSpecification is a key/value attribute of a product.
type ProductSpecification struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"index;not null"`
	Key       string `gorm:"column:key;not null"`
	Value     string `gorm:"column:value;not null"`
}

func (s *ProductSpecification) TableName() string {
	return "product_specifications"
}
