// Package store - accounts.go
// The account register: discord member -> linked platform accounts.
package store

import (
	"github.com/rlfranchise/bcgroups-bot/internal/domain/team"
)

// Accounts returns the platform accounts linked to a member. A member with
// no register entry gets an empty list, not an error.
func (s *Store) Accounts(memberID string) []team.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]team.Account(nil), s.state.Accounts[memberID]...)
}

// AddAccount links one more account to a member. Duplicate pairs are kept
// out of the register.
func (s *Store) AddAccount(memberID string, acc team.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.state.Accounts[memberID] {
		if existing == acc {
			return nil
		}
	}
	if s.state.Accounts == nil {
		s.state.Accounts = map[string][]team.Account{}
	}
	s.state.Accounts[memberID] = append(s.state.Accounts[memberID], acc)
	return s.save()
}

// RemoveAccount unlinks an account; unlinking an absent pair is a no-op.
func (s *Store) RemoveAccount(memberID string, acc team.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	accs := s.state.Accounts[memberID]
	for i, existing := range accs {
		if existing == acc {
			s.state.Accounts[memberID] = append(accs[:i], accs[i+1:]...)
			return s.save()
		}
	}
	return nil
}
