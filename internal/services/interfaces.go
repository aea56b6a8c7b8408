package services

import (
	"gorm.io/gorm"

	"butce/internal/models"
	"butce/internal/period"
	"butce/internal/report"
)

// UserServicer defines the contract for identity-related business logic.
type UserServicer interface {
	CreateUser(username, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	Authenticate(username, password string) (*models.User, error)
	ChangePassword(userID uint, currentPassword, newPassword string) error
}

// MemberServicer defines the contract for the household member registry.
type MemberServicer interface {
	CreateMember(name string) (*models.Member, error)
	ListMembers() ([]models.Member, error)
	GetMemberByID(id uint) (*models.Member, error)
	ResolveMembers(ids []uint) ([]models.Member, error)
}

// AssociationServicer maintains the transaction/member association table.
type AssociationServicer interface {
	MembersOf(transactionID uint) ([]uint, error)
	TransactionsOf(memberID uint) ([]uint, error)
	Replace(tx *gorm.DB, transactionID uint, memberIDs []uint) error
	Clear(tx *gorm.DB, transactionID uint) error
	Attach(txs []models.Transaction) error
}

// TransactionInput carries the raw, unvalidated fields of a create or edit
// form. Parsing and validation happen in the ledger.
type TransactionInput struct {
	Type        string
	Description string
	Amount      string
	Date        string
	MemberIDs   []uint
}

// TransactionServicer defines the contract for the transaction ledger.
type TransactionServicer interface {
	CreateTransaction(ownerID uint, in TransactionInput) (*models.Transaction, error)
	UpdateTransaction(requesterID, transactionID uint, in TransactionInput) (*models.Transaction, error)
	DeleteTransaction(requesterID, transactionID uint) error
	GetTransaction(requesterID, transactionID uint) (*models.Transaction, error)
	ListByOwner(ownerID uint, window *period.Window) ([]models.Transaction, error)
	ListByMember(ownerID, memberID uint) ([]models.Transaction, error)
}

// MonthlySummary is the month view: the month's transactions plus the
// monthly and all-time balances.
type MonthlySummary struct {
	Year           int                  `json:"year"`
	Month          int                  `json:"month"`
	MonthName      string               `json:"month_name"`
	Window         period.Window        `json:"window"`
	Transactions   []models.Transaction `json:"transactions"`
	MonthlyBalance int64                `json:"monthly_balance"`
	TotalBalance   int64                `json:"total_balance"`
}

// MemberReport is the per-member income report for one month.
type MemberReport struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthName string `json:"month_name"`
	report.MemberIncomeReport
}

// ReportServicer defines the contract for the period aggregator.
type ReportServicer interface {
	MonthlySummary(ownerID uint, year, month int) (*MonthlySummary, error)
	MemberIncomeReport(ownerID uint, year, month int) (*MemberReport, error)
	TotalBalance(ownerID uint) (int64, error)
}

// SeedConfig lists what must exist after startup.
type SeedConfig struct {
	Username    string
	Password    string
	MemberNames []string
}

// SeedServicer idempotently creates the default user and members.
type SeedServicer interface {
	Seed(cfg SeedConfig) error
}
