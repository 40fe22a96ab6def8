package models

import (
	"errors"

	"gorm.io/gorm"
)

// ErrDuplicateCategory is returned when a category name is already taken.
var ErrDuplicateCategory = errors.New("category name already exists")

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		db: db,
	}
}

func (r *CategoriesRepository) GetAllCategories() ([]Category, error) {
	var categories []Category
	if err := r.db.Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoriesRepository) CreateCategory(category *Category) error {
	var count int64
	if err := r.db.Model(&Category{}).Where("name = ?", category.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateCategory
	}
	if err := r.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCategory
		}
		return err
	}
	return nil
}

func (r *CategoriesRepository) GetSubcategories(categoryID uint) ([]Subcategory, error) {
	var subcategories []Subcategory
	if err := r.db.
		Where("category_id = ?", categoryID).
		Order("id").
		Find(&subcategories).Error; err != nil {
		return nil, err
	}
	return subcategories, nil
}

func (r *CategoriesRepository) CreateSubcategory(subcategory *Subcategory) error {
	return r.db.Create(subcategory).Error
}
