package services

import (
	"sort"

	"gorm.io/gorm"

	apperrors "butce/internal/errors"
	"butce/internal/models"
)

// associationService owns the transaction_members table. Transactions and
// members never reference each other directly; both directions go through
// this index.
type associationService struct {
	db *gorm.DB
}

// NewAssociationService creates a new AssociationServicer.
func NewAssociationService(db *gorm.DB) AssociationServicer {
	return &associationService{db: db}
}

// MembersOf returns the ids of the members tagged on a transaction.
func (s *associationService) MembersOf(transactionID uint) ([]uint, error) {
	var ids []uint
	if err := s.db.Model(&models.TransactionMember{}).
		Where("transaction_id = ?", transactionID).
		Order("member_id ASC").
		Pluck("member_id", &ids).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return ids, nil
}

// TransactionsOf returns the ids of every transaction tagged with a member.
func (s *associationService) TransactionsOf(memberID uint) ([]uint, error) {
	var ids []uint
	if err := s.db.Model(&models.TransactionMember{}).
		Where("member_id = ?", memberID).
		Order("transaction_id ASC").
		Pluck("transaction_id", &ids).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return ids, nil
}

// Replace clears the member set of a transaction and writes memberIDs in
// its place. Callers pass the enclosing database transaction.
func (s *associationService) Replace(tx *gorm.DB, transactionID uint, memberIDs []uint) error {
	if err := s.Clear(tx, transactionID); err != nil {
		return err
	}

	ids := dedupeIDs(memberIDs)
	if len(ids) == 0 {
		return nil
	}
	rows := make([]models.TransactionMember, len(ids))
	for i, id := range ids {
		rows[i] = models.TransactionMember{TransactionID: transactionID, MemberID: id}
	}
	if err := tx.Create(&rows).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Clear removes every association row of a transaction.
func (s *associationService) Clear(tx *gorm.DB, transactionID uint) error {
	if err := tx.Where("transaction_id = ?", transactionID).Delete(&models.TransactionMember{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Attach loads the members of each transaction in txs in two queries.
func (s *associationService) Attach(txs []models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	txIDs := make([]uint, len(txs))
	for i := range txs {
		txIDs[i] = txs[i].ID
	}

	var links []models.TransactionMember
	if err := s.db.Where("transaction_id IN ?", txIDs).Find(&links).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	memberIDs := make([]uint, 0, len(links))
	for _, l := range links {
		memberIDs = append(memberIDs, l.MemberID)
	}
	memberIDs = dedupeIDs(memberIDs)

	byID := make(map[uint]models.Member, len(memberIDs))
	if len(memberIDs) > 0 {
		var members []models.Member
		if err := s.db.Where("id IN ?", memberIDs).Find(&members).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for _, m := range members {
			byID[m.ID] = m
		}
	}

	byTx := make(map[uint][]models.Member, len(txs))
	for _, l := range links {
		if m, ok := byID[l.MemberID]; ok {
			byTx[l.TransactionID] = append(byTx[l.TransactionID], m)
		}
	}

	for i := range txs {
		members := byTx[txs[i].ID]
		sortMembersByName(members)
		if members == nil {
			members = []models.Member{}
		}
		txs[i].Members = members
	}
	return nil
}

func sortMembersByName(members []models.Member) {
	sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
}
