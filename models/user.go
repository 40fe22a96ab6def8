package models

// User is a shop customer keyed by the external chat identifier.
// Users are provisioned lazily on first cart or order interaction
// and are never deleted by the core.
type User struct {
	UserID   int64  `gorm:"primaryKey;autoIncrement:false"`
	Username string
	FullName string
	IsAdmin  bool `gorm:"not null;default:false"`
}

func (u *User) TableName() string {
	return "users"
}

// Identity carries the stable external identifier and display name handed
// over by the messaging front-end. It is the input to lazy user provisioning.
type Identity struct {
	UserID   int64
	Username string
	FullName string
}
