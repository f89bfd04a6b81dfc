package store

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type productsStore struct {
	db *bun.DB
}

var _ Products = (*productsStore)(nil)

func (s *productsStore) List(ctx context.Context) ([]*Product, error) {
	var products []*Product
	if err := s.db.NewSelect().
		Model(&products).
		Order("name ASC").
		Scan(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list products")
	}
	return products, nil
}

func (s *productsStore) Create(ctx context.Context, product *Product) (*Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if _, err := s.db.NewInsert().Model(product).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not create product")
	}
	return product, nil
}

func (s *productsStore) UpdatePrice(ctx context.Context, id uuid.UUID, price int64) (*Product, error) {
	product := &Product{}
	err := s.db.NewSelect().
		Model(product).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, recordNotFound("product", map[string]any{"id": id.String()})
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load product")
	}

	product.Price = price
	if _, err := s.db.NewUpdate().
		Model(product).
		Column("price").
		WherePK().
		Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update product price")
	}

	return product, nil
}
