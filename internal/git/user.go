package git

import (
	"context"
	"fmt"

	"github.com/emilianohg/gitprobe/internal/models"
)

// NewUser completes known from the environment: a missing name or email is
// read from git config, which must succeed, and a missing username is
// guessed. The result is not re-resolved later.
func (r *Repository) NewUser(ctx context.Context, known models.User) (models.User, error) {
	u := known

	if u.Name == "" {
		name, err := r.fatal(ctx, "config", "user.name")
		if err != nil {
			return models.User{}, fmt.Errorf("failed to read git user.name: %w", err)
		}
		u.Name = name
	}

	if u.Email == "" {
		email, err := r.fatal(ctx, "config", "user.email")
		if err != nil {
			return models.User{}, fmt.Errorf("failed to read git user.email: %w", err)
		}
		u.Email = email
	}

	if u.Username == "" {
		if username, ok := r.GuessUsername(ctx, u.Name); ok {
			u.Username = username
		}
	}

	return u, nil
}

// CurrentUser is the identity git commits as in this checkout.
func (r *Repository) CurrentUser(ctx context.Context) (models.User, error) {
	return r.NewUser(ctx, models.User{})
}

// CommitCount counts commits authored with the user's email. It queries git
// on every call; a user without an email has no commits.
func (r *Repository) CommitCount(ctx context.Context, u models.User) int {
	if u.Email == "" {
		return 0
	}
	out, ok := r.tolerant(ctx, "log", "--author="+u.Email, "--pretty=oneline")
	if !ok {
		return 0
	}
	return len(splitLines(out))
}
