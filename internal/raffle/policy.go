package raffle

import (
	"errors"
	"fmt"
	"strings"
)

// authorize gates mutating operations: platform admins always pass,
// otherwise the actor must hold the community's configured admin role. With
// no role configured, only platform admins qualify.
func (s *Service) authorize(community string, actor Actor) error {
	if actor.Admin {
		return nil
	}
	role, exists, err := s.adminRole(community)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("user %s: %w", actor.ID, ErrDenied)
	}
	for _, held := range actor.Roles {
		if held == role {
			return nil
		}
	}
	return fmt.Errorf("user %s: %w", actor.ID, ErrDenied)
}

// adminRole reads the community's configured role, loading through the
// gateway once and caching the answer.
func (s *Service) adminRole(community string) (string, bool, error) {
	role, exists, known := s.store.roleConfig(community)
	if known {
		return role, exists, nil
	}
	if s.gateway == nil {
		s.store.setRoleConfig(community, "", false)
		return "", false, nil
	}
	role, err := s.gateway.LoadAdminRole(community)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.store.setRoleConfig(community, "", false)
			return "", false, nil
		}
		return "", false, persistErr("load admin role", err)
	}
	s.store.setRoleConfig(community, role, true)
	return role, true, nil
}

// SetAdminRole configures which role may manage drawings. Always requires
// platform-native admin permission, so the configured role cannot be used to
// grant itself.
func (s *Service) SetAdminRole(community string, actor Actor, roleID string) error {
	if !actor.Admin {
		return fmt.Errorf("user %s: %w", actor.ID, ErrDenied)
	}
	roleID = strings.TrimSpace(roleID)
	if roleID == "" {
		return fmt.Errorf("role id: %w", ErrInvalidArgument)
	}
	if s.gateway != nil {
		if err := s.gateway.SaveAdminRole(community, roleID); err != nil {
			return persistErr("save admin role", err)
		}
	}
	s.store.setRoleConfig(community, roleID, true)
	return nil
}

// AdminRole reports the configured role id, empty when none is set.
func (s *Service) AdminRole(community string) (string, error) {
	role, exists, err := s.adminRole(community)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", nil
	}
	return role, nil
}
