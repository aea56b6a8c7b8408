package models

// Member is a household participant that transactions can be tagged with.
// Members cannot log in.
type Member struct {
	Base
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}
