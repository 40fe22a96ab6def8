package models

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) GetByID(id uint) (*Product, error) {
	var product Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductsRepository) GetBySKU(sku string) (*Product, error) {
	var product Product
	if err := r.db.
		Preload("Images").
		Preload("Specifications").
		Preload("Subcategory").
		Where("sku = ?", sku).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// SearchByBrand matches the brand field case-insensitively by substring.
func (r *ProductsRepository) SearchByBrand(fragment string) ([]Product, error) {
	var products []Product
	if err := r.db.
		Where("brand ILIKE ?", "%"+fragment+"%").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductsRepository) ListBySubcategory(subcategoryID uint) ([]Product, error) {
	var products []Product
	if err := r.db.
		Where("subcategory_id = ?", subcategoryID).
		Order("id").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListByCategory resolves products through the subcategory join. Out-of-stock
// products are included; callers decide how to present them.
func (r *ProductsRepository) ListByCategory(categoryID uint) ([]Product, error) {
	var products []Product
	if err := r.db.
		Joins("JOIN subcategories ON subcategories.id = products.subcategory_id").
		Where("subcategories.category_id = ?", categoryID).
		Order("products.id").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductsRepository) ListPaged(offset, limit int) ([]Product, int64, error) {
	var products []Product
	var total int64

	query := r.db.Model(&Product{}).Preload("Subcategory")

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Offset(offset).Limit(limit).Order("id").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Create inserts a product. An existing product with the same SKU is removed
// first, taking its images and specifications with it, so the SKU stays the
// single business key.
func (r *ProductsRepository) Create(product *Product) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing Product
		err := tx.Where("sku = ?", product.SKU).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Select(clause.Associations).Delete(&existing).Error; err != nil {
				return err
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		return tx.Create(product).Error
	})
}

func (r *ProductsRepository) SetStockStatus(productID uint, inStock bool) error {
	res := r.db.Model(&Product{}).Where("id = ?", productID).Update("in_stock", inStock)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// AddImage appends one entry to a product's gallery. The product must exist.
func (r *ProductsRepository) AddImage(image *ProductImage) error {
	var count int64
	if err := r.db.Model(&Product{}).Where("id = ?", image.ProductID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrProductNotFound
	}
	return r.db.Create(image).Error
}
