package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"butce/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithUsername(t, db, fmt.Sprintf("user%d", nextID()))
}

// CreateTestUserWithUsername creates a user with the given username and TestPassword.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestMember creates a member with the given name, or a unique one when name is empty.
func CreateTestMember(t *testing.T, db *gorm.DB, name string) *models.Member {
	t.Helper()

	if name == "" {
		name = fmt.Sprintf("member%d", nextID())
	}
	member := &models.Member{Name: name}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create test member: %v", err)
	}
	return member
}

// CreateTestTransaction inserts a transaction and its association rows
// directly, bypassing service validation.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID uint, txType models.TransactionType, amount int64, date time.Time, members ...*models.Member) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		Type:        txType,
		Description: fmt.Sprintf("Test transaction %d", nextID()),
		Amount:      amount,
		Date:        time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	for _, m := range members {
		link := &models.TransactionMember{TransactionID: tx.ID, MemberID: m.ID}
		if err := db.Create(link).Error; err != nil {
			t.Fatalf("failed to link test transaction to member: %v", err)
		}
		tx.Members = append(tx.Members, *m)
	}
	return tx
}

// Date is a shorthand for a UTC midnight date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
