package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	apperrors "butce/internal/errors"
	"butce/internal/models"
)

const maxMemberNameLength = 50

// memberService handles the household member registry.
type memberService struct {
	db *gorm.DB
}

// NewMemberService creates a new MemberServicer.
func NewMemberService(db *gorm.DB) MemberServicer {
	return &memberService{db: db}
}

// CreateMember adds a member. Names are unique.
func (s *memberService) CreateMember(name string) (*models.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "member name is required")
	}
	if utf8.RuneCountInString(name) > maxMemberNameLength {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "member name must be at most 50 characters")
	}

	var count int64
	if err := s.db.Model(&models.Member{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateMember
	}

	member := &models.Member{Name: name}
	if err := s.db.Create(member).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return member, nil
}

// ListMembers returns every member ordered by name.
func (s *memberService) ListMembers() ([]models.Member, error) {
	var members []models.Member
	if err := s.db.Order("name ASC").Find(&members).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if members == nil {
		members = []models.Member{}
	}
	return members, nil
}

// GetMemberByID retrieves a single member.
func (s *memberService) GetMemberByID(id uint) (*models.Member, error) {
	var member models.Member
	if err := s.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Member not found")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &member, nil
}

// ResolveMembers maps ids to members. Duplicates collapse; an empty list
// or any unknown id is a validation error.
func (s *memberService) ResolveMembers(ids []uint) ([]models.Member, error) {
	unique := dedupeIDs(ids)
	if len(unique) == 0 {
		return nil, apperrors.ErrMembersRequired
	}

	var members []models.Member
	if err := s.db.Where("id IN ?", unique).Order("id ASC").Find(&members).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if len(members) != len(unique) {
		found := make(map[uint]bool, len(members))
		for _, m := range members {
			found[m.ID] = true
		}
		for _, id := range unique {
			if !found[id] {
				return nil, apperrors.WithMessage(apperrors.ErrMemberNotFound, fmt.Sprintf("member %d not found", id))
			}
		}
	}
	return members, nil
}

// dedupeIDs returns the distinct non-zero ids in ascending order.
func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
