package service

import (
	"context"
	"fmt"
)

// ServiceUserID resolves the durable id of the service account, caching the
// result for the process lifetime. The upstream account is assumed stable: a
// rename or deletion is not picked up until restart.
func (s *Service) ServiceUserID(ctx context.Context) (string, error) {
	s.mu.Lock()
	id := s.userID
	s.mu.Unlock()
	if id != "" {
		return id, nil
	}

	v, err, _ := s.flight.Do("service-user-id", func() (any, error) {
		s.mu.Lock()
		id := s.userID
		s.mu.Unlock()
		if id != "" {
			return id, nil
		}
		return s.resolveUserID(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *Service) resolveUserID(ctx context.Context) (string, error) {
	token, err := s.ServiceToken(ctx)
	if err != nil {
		return "", err
	}

	users, err := s.directory.SearchUsers(ctx, token, s.cfg.ServiceAccount)
	if err != nil {
		return "", fmt.Errorf("%w: user search failed: %w", ErrUpstream, err)
	}
	for _, u := range users {
		if u.Name == s.cfg.ServiceAccount || u.DisplayName == s.cfg.ServiceAccount {
			s.mu.Lock()
			s.userID = u.ID
			s.mu.Unlock()
			return u.ID, nil
		}
	}
	return "", fmt.Errorf("%w: no user matches %q", ErrNotFound, s.cfg.ServiceAccount)
}
