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

type ordersStore struct {
	db *bun.DB
}

var _ Orders = (*ordersStore)(nil)

func (s *ordersStore) List(ctx context.Context) ([]*Order, error) {
	var orders []*Order
	if err := s.db.NewSelect().
		Model(&orders).
		Order("date ASC").
		Scan(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list orders")
	}
	return orders, nil
}

func (s *ordersStore) ListByUsername(ctx context.Context, username string) ([]*Order, error) {
	var orders []*Order
	if err := s.db.NewSelect().
		Model(&orders).
		Where("?TableAlias.username = ?", username).
		Order("date ASC").
		Scan(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list orders for user")
	}
	return orders, nil
}

func (s *ordersStore) Create(ctx context.Context, order *Order) (*Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.Status == "" {
		order.Status = OrderStatusPending
	}
	if order.Date.IsZero() {
		order.Date = time.Now()
	}

	if _, err := s.db.NewInsert().Model(order).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not create order")
	}
	return order, nil
}

func (s *ordersStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Order, error) {
	order := &Order{}
	err := s.db.NewSelect().
		Model(order).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, recordNotFound("order", map[string]any{"id": id.String()})
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load order")
	}

	order.Status = status
	if _, err := s.db.NewUpdate().
		Model(order).
		Column("status").
		WherePK().
		Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update order status")
	}

	return order, nil
}

func (s *ordersStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.NewDelete().
		Model((*Order)(nil)).
		Where("1 = 1").
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete orders")
	}
	return nil
}
