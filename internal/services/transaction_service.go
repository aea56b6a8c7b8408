package services

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	apperrors "butce/internal/errors"
	"butce/internal/models"
	"butce/internal/money"
	"butce/internal/period"
)

const maxDescriptionLength = 100

// transactionService handles the transaction ledger.
type transactionService struct {
	db            *gorm.DB
	memberService MemberServicer
	associations  AssociationServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, memberService MemberServicer, associations AssociationServicer) TransactionServicer {
	return &transactionService{
		db:            db,
		memberService: memberService,
		associations:  associations,
	}
}

// validatedInput is a TransactionInput after parsing.
type validatedInput struct {
	txType      models.TransactionType
	description string
	amount      int64
	date        time.Time
	members     []models.Member
}

func (v *validatedInput) memberIDs() []uint {
	ids := make([]uint, len(v.members))
	for i, m := range v.members {
		ids[i] = m.ID
	}
	return ids
}

// validate parses and checks every field of in.
func (s *transactionService) validate(in TransactionInput) (*validatedInput, error) {
	txType, ok := models.ParseTransactionType(in.Type)
	if !ok {
		return nil, apperrors.ErrInvalidTransactionType
	}

	amount, err := money.Parse(in.Amount)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidAmount, err)
	}

	date, err := period.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(in.Description)
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description must be at most 100 characters")
	}

	members, err := s.memberService.ResolveMembers(in.MemberIDs)
	if err != nil {
		return nil, err
	}

	return &validatedInput{
		txType:      txType,
		description: description,
		amount:      amount,
		date:        date,
		members:     members,
	}, nil
}

// CreateTransaction validates in and stores a new transaction owned by ownerID
// together with its member associations.
func (s *transactionService) CreateTransaction(ownerID uint, in TransactionInput) (*models.Transaction, error) {
	if ownerID == 0 {
		return nil, apperrors.ErrUnauthorized
	}

	v, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:      ownerID,
		Type:        v.txType,
		Description: v.description,
		Amount:      v.amount,
		Date:        v.date,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.associations.Replace(tx, transaction.ID, v.memberIDs())
	})
	if err != nil {
		return nil, err
	}

	transaction.Members = v.members
	return transaction, nil
}

// UpdateTransaction replaces every mutable field of an owned transaction and
// rewrites its member set. The owner never changes.
func (s *transactionService) UpdateTransaction(requesterID, transactionID uint, in TransactionInput) (*models.Transaction, error) {
	existing, err := s.findTransaction(transactionID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(requesterID, existing); err != nil {
		return nil, err
	}

	v, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Transaction{}).
			Where("id = ? AND user_id = ?", transactionID, requesterID).
			Updates(map[string]interface{}{
				"type":        v.txType,
				"description": v.description,
				"amount":      v.amount,
				"date":        v.date,
			})
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrTransactionNotFound
		}
		return s.associations.Replace(tx, transactionID, v.memberIDs())
	})
	if err != nil {
		return nil, err
	}

	return s.GetTransaction(requesterID, transactionID)
}

// DeleteTransaction removes an owned transaction and its association rows.
func (s *transactionService) DeleteTransaction(requesterID, transactionID uint) error {
	existing, err := s.findTransaction(transactionID)
	if err != nil {
		return err
	}
	if err := Authorize(requesterID, existing); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.associations.Clear(tx, transactionID); err != nil {
			return err
		}
		result := tx.Where("id = ? AND user_id = ?", transactionID, requesterID).Delete(&models.Transaction{})
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrTransactionNotFound
		}
		return nil
	})
}

// GetTransaction returns an owned transaction with its members loaded.
func (s *transactionService) GetTransaction(requesterID, transactionID uint) (*models.Transaction, error) {
	transaction, err := s.findTransaction(transactionID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(requesterID, transaction); err != nil {
		return nil, err
	}

	txs := []models.Transaction{*transaction}
	if err := s.associations.Attach(txs); err != nil {
		return nil, err
	}
	return &txs[0], nil
}

// ListByOwner returns the owner's transactions, optionally limited to a
// window, newest date first and most recently inserted first within a day.
func (s *transactionService) ListByOwner(ownerID uint, window *period.Window) ([]models.Transaction, error) {
	q := s.db.Where("user_id = ?", ownerID)
	if window != nil {
		q = q.Where("date >= ? AND date <= ?", window.Start, window.End)
	}
	return s.list(q)
}

// ListByMember returns the owner's transactions tagged with memberID.
func (s *transactionService) ListByMember(ownerID, memberID uint) ([]models.Transaction, error) {
	if _, err := s.memberService.GetMemberByID(memberID); err != nil {
		return nil, err
	}

	ids, err := s.associations.TransactionsOf(memberID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Transaction{}, nil
	}

	return s.list(s.db.Where("user_id = ? AND id IN ?", ownerID, ids))
}

func (s *transactionService) list(q *gorm.DB) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := q.Order("date DESC").Order("id DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	if err := s.associations.Attach(transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// findTransaction loads a transaction by id regardless of owner.
func (s *transactionService) findTransaction(transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.First(&transaction, transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}
