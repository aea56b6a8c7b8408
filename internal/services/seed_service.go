package services

import (
	"errors"

	apperrors "butce/internal/errors"
	"butce/internal/logger"
)

// seedService creates the default account and household members on startup.
type seedService struct {
	users   UserServicer
	members MemberServicer
}

// NewSeedService creates a new SeedServicer.
func NewSeedService(users UserServicer, members MemberServicer) SeedServicer {
	return &seedService{users: users, members: members}
}

// Seed makes sure cfg.Username and every name in cfg.MemberNames exist.
// Running it again changes nothing; in particular an existing user keeps
// whatever password it has now.
func (s *seedService) Seed(cfg SeedConfig) error {
	log := logger.Get()

	if cfg.Username != "" {
		_, err := s.users.GetUserByUsername(cfg.Username)
		switch {
		case err == nil:
			log.Debugw("seed user exists", "username", cfg.Username)
		case errors.Is(err, apperrors.ErrUserNotFound):
			if _, err := s.users.CreateUser(cfg.Username, cfg.Password); err != nil {
				return err
			}
			log.Infow("seeded user", "username", cfg.Username)
		default:
			return err
		}
	}

	existing, err := s.members.ListMembers()
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, m := range existing {
		have[m.Name] = true
	}

	for _, name := range cfg.MemberNames {
		if name == "" || have[name] {
			continue
		}
		if _, err := s.members.CreateMember(name); err != nil {
			if errors.Is(err, apperrors.ErrDuplicateMember) {
				continue
			}
			return err
		}
		have[name] = true
		log.Infow("seeded member", "name", name)
	}

	return nil
}
