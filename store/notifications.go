package store

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type notificationsStore struct {
	db *bun.DB
}

var _ Notifications = (*notificationsStore)(nil)

func (s *notificationsStore) List(ctx context.Context) ([]*Notification, error) {
	var notifications []*Notification
	if err := s.db.NewSelect().
		Model(&notifications).
		Order("date ASC").
		Scan(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list notifications")
	}
	return notifications, nil
}

// ListForUser matches on username or email so callers can pass either,
// the way the notification feed always has.
func (s *notificationsStore) ListForUser(ctx context.Context, user string) ([]*Notification, error) {
	var notifications []*Notification
	if err := s.db.NewSelect().
		Model(&notifications).
		Where("?TableAlias.username = ?", user).
		WhereOr("?TableAlias.email = ?", normalizeEmail(user)).
		Order("date ASC").
		Scan(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list notifications for user")
	}
	return notifications, nil
}

func (s *notificationsStore) Create(ctx context.Context, notification *Notification) (*Notification, error) {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	if notification.Date.IsZero() {
		notification.Date = time.Now()
	}

	if _, err := s.db.NewInsert().Model(notification).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not create notification")
	}
	return notification, nil
}

func (s *notificationsStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.NewDelete().
		Model((*Notification)(nil)).
		Where("1 = 1").
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete notifications")
	}
	return nil
}
