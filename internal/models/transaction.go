package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// ParseTransactionType normalizes user input into a TransactionType. The
// Turkish labels "gelir" and "gider" are accepted as aliases.
func ParseTransactionType(s string) (TransactionType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "gelir":
		return TransactionTypeIncome, true
	case "expense", "gider":
		return TransactionTypeExpense, true
	}
	return "", false
}

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents one income or expense event owned by a user.
// Amount is stored in minor units (1/100) and is never negative; the sign
// comes from Type.
type Transaction struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Type        TransactionType `gorm:"size:10;not null" json:"type"`
	Description string          `gorm:"size:100;not null" json:"description"`
	Amount      int64           `gorm:"type:bigint;not null" json:"amount"`
	Date        time.Time       `gorm:"type:date;not null;index" json:"date"`

	// Members is loaded from the transaction_members association table.
	Members []Member `gorm:"-" json:"members"`
}

// ErrInvalidType is returned when a transaction with an unknown type is saved.
var ErrInvalidType = errors.New("invalid transaction type")

// BeforeCreate hook rejects rows whose type is not income or expense
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

// TransactionMember is one row of the explicit transaction/member
// association table.
type TransactionMember struct {
	TransactionID uint `gorm:"primaryKey;autoIncrement:false" json:"transaction_id"`
	MemberID      uint `gorm:"primaryKey;autoIncrement:false;index" json:"member_id"`
}

// TableName pins the association table name.
func (TransactionMember) TableName() string {
	return "transaction_members"
}
