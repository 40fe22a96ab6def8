package models

import "time"

// Banner is the media shown for a single placement slot of the storefront
// menu ("main_menu", "catalog", "cart", ...). At most one banner exists per
// placement type; writing a new one replaces the old row entirely.
type Banner struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string
	Description string
	ImageURL    string `gorm:"not null"`
	FileType    string `gorm:"not null"`
	BannerType  string `gorm:"uniqueIndex;not null"`
	CreatedAt   time.Time
}

func (b *Banner) TableName() string {
	return "banner"
}
