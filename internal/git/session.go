package git

import (
	"context"
	"sync"

	"github.com/emilianohg/gitprobe/internal/models"
)

// Session owns a Repository and the current user, which is resolved once and
// then reused for the lifetime of the session.
type Session struct {
	repo *Repository

	mu   sync.Mutex
	user *models.User
}

func NewSession(repo *Repository) *Session {
	return &Session{repo: repo}
}

func (s *Session) Repository() *Repository {
	return s.repo
}

// CurrentUser resolves the current user on first use. Failures are not
// remembered, so a later call retries.
func (s *Session) CurrentUser(ctx context.Context) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user != nil {
		return *s.user, nil
	}

	u, err := s.repo.CurrentUser(ctx)
	if err != nil {
		return models.User{}, err
	}
	s.user = &u
	return u, nil
}
