package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type usersStore struct {
	db *bun.DB
}

var _ Users = (*usersStore)(nil)

func (s *usersStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	user := &User{}
	err := s.db.NewSelect().
		Model(user).
		Where("?TableAlias.email = ?", normalizeEmail(email)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, recordNotFound("user", map[string]any{"email": email})
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load user by email")
	}
	return user, nil
}

func (s *usersStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	user := &User{}
	err := s.db.NewSelect().
		Model(user).
		Where("?TableAlias.username = ?", strings.TrimSpace(username)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, recordNotFound("user", map[string]any{"username": username})
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load user by username")
	}
	return user, nil
}

// Exists reports whether either the username or the email is already
// taken. Both columns guard the same namespace the verification flow
// promotes into.
func (s *usersStore) Exists(ctx context.Context, username, email string) (bool, error) {
	count, err := s.db.NewSelect().
		Model((*User)(nil)).
		Where("?TableAlias.username = ?", strings.TrimSpace(username)).
		WhereOr("?TableAlias.email = ?", normalizeEmail(email)).
		Count(ctx)
	if err != nil {
		return false, errors.Wrap(err, errors.CategoryInternal, "failed to check user existence")
	}
	return count > 0, nil
}

func (s *usersStore) Create(ctx context.Context, user *User) (*User, error) {
	user.Email = normalizeEmail(user.Email)
	if _, err := s.db.NewInsert().Model(user).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryConflict, "could not create user").
			WithTextCode("USER_EXISTS").
			WithCode(errors.CodeConflict)
	}
	return user, nil
}

func (s *usersStore) List(ctx context.Context) ([]*User, error) {
	var users []*User
	if err := s.db.NewSelect().
		Model(&users).
		Order("created_at ASC").
		Scan(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list users")
	}
	return users, nil
}

func (s *usersStore) DeleteByUsername(ctx context.Context, username string) error {
	if _, err := s.db.NewDelete().
		Model((*User)(nil)).
		Where("username = ?", strings.TrimSpace(username)).
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete user")
	}
	return nil
}

func (s *usersStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.NewDelete().
		Model((*User)(nil)).
		Where("1 = 1").
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete users")
	}
	return nil
}
