package models

// User represents a login identity. Users are never deleted; the password
// hash may be rotated.
type User struct {
	Base
	Username     string        `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash string        `gorm:"size:128;not null" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:UserID" json:"-"`
}
