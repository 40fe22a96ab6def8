package models

import (
	"errors"

	"gorm.io/gorm"
)

// ErrBannerNotFound is returned when no banner exists for a placement type.
var ErrBannerNotFound = errors.New("banner not found")

type BannersRepository struct {
	db *gorm.DB
}

func NewBannersRepository(db *gorm.DB) *BannersRepository {
	return &BannersRepository{
		db: db,
	}
}

func (r *BannersRepository) GetByType(bannerType string) (*Banner, error) {
	var banner Banner
	if err := r.db.Where("banner_type = ?", bannerType).First(&banner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBannerNotFound
		}
		return nil, err
	}
	return &banner, nil
}

// Replace installs the banner for its placement type, removing any banner
// that currently occupies the slot. One row per type, always.
func (r *BannersRepository) Replace(banner *Banner) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("banner_type = ?", banner.BannerType).Delete(&Banner{}).Error; err != nil {
			return err
		}
		return tx.Create(banner).Error
	})
}
