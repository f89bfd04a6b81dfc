package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type careStore struct {
	db *bun.DB
}

var _ CareMessages = (*careStore)(nil)

func (s *careStore) List(ctx context.Context) ([]*CareMessage, error) {
	var msgs []*CareMessage
	if err := s.db.NewSelect().
		Model(&msgs).
		Order("date ASC").
		Scan(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list care messages")
	}
	return msgs, nil
}

func (s *careStore) ListByUsername(ctx context.Context, username string) ([]*CareMessage, error) {
	var msgs []*CareMessage
	if err := s.db.NewSelect().
		Model(&msgs).
		Where("?TableAlias.username = ?", username).
		Order("date ASC").
		Scan(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list care messages for user")
	}
	return msgs, nil
}

func (s *careStore) Create(ctx context.Context, msg *CareMessage) (*CareMessage, error) {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.Date.IsZero() {
		msg.Date = time.Now()
	}

	if _, err := s.db.NewInsert().Model(msg).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not create care message")
	}
	return msg, nil
}

// LastEmailFor returns the email attached to the user's most recent
// message, which is how admin replies discover where to thread back.
func (s *careStore) LastEmailFor(ctx context.Context, username string) (string, error) {
	msg := &CareMessage{}
	err := s.db.NewSelect().
		Model(msg).
		Where("?TableAlias.username = ?", username).
		Where("?TableAlias.email <> ''").
		Order("date DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to load last care message")
	}
	return msg.Email, nil
}

func (s *careStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.NewDelete().
		Model((*CareMessage)(nil)).
		Where("1 = 1").
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete care messages")
	}
	return nil
}
