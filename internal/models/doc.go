// Package models holds the GORM models persisted by the ledger.
package models

// All lists every model, in dependency order, for schema auto-migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Member{},
		&Transaction{},
		&TransactionMember{},
	}
}
