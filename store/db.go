package store

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// Open connects the SQLite-backed store. The default DSN keeps data in
// process memory; a file path survives restarts if a deployment ever
// wants that.
func Open(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to open store database")
	}

	// A memory DSN vanishes when the last connection closes.
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(0)

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// Store bundles the concrete SQLite-backed stores plus the memory-only
// pending registration store.
type Store struct {
	db *bun.DB

	users         *usersStore
	products      *productsStore
	orders        *ordersStore
	notifications *notificationsStore
	care          *careStore
	pending       PendingRegistrations
}

// New creates the store set on top of db. Call Init before first use.
func New(db *bun.DB) *Store {
	return &Store{
		db:            db,
		users:         &usersStore{db: db},
		products:      &productsStore{db: db},
		orders:        &ordersStore{db: db},
		notifications: &notificationsStore{db: db},
		care:          &careStore{db: db},
		pending:       NewPendingMemory(),
	}
}

func (s *Store) Users() Users                               { return s.users }
func (s *Store) Products() Products                         { return s.products }
func (s *Store) Orders() Orders                             { return s.orders }
func (s *Store) Notifications() Notifications               { return s.notifications }
func (s *Store) CareMessages() CareMessages                 { return s.care }
func (s *Store) PendingRegistrations() PendingRegistrations { return s.pending }

// Init creates the schema. The schema is rebuilt on every boot, so there
// is no migration machinery to manage.
func (s *Store) Init(ctx context.Context) error {
	models := []any{
		(*User)(nil),
		(*Product)(nil),
		(*Order)(nil),
		(*Notification)(nil),
		(*CareMessage)(nil),
	}

	for _, model := range models {
		if _, err := s.db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to create store schema")
		}
	}

	return nil
}

// SeedProducts loads the default catalog when the table is empty.
func (s *Store) SeedProducts(ctx context.Context, products []*Product) error {
	count, err := s.db.NewSelect().Model((*Product)(nil)).Count(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to count products")
	}

	if count > 0 {
		return nil
	}

	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
	}

	if len(products) == 0 {
		return nil
	}

	if _, err := s.db.NewInsert().Model(&products).Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to seed products")
	}

	return nil
}

// DefaultCatalog is the demo catalog the service boots with.
func DefaultCatalog() []*Product {
	return []*Product{
		{Name: "iPhone 11", Price: 900000, Category: "phones", Image: "iphone11.jpg"},
		{Name: "HP Pavilion", Price: 650000, Category: "laptops", Image: "hplaptop.jpg"},
		{Name: "Mouse", Price: 120000, Category: "accessories", Image: "mouse.jpg"},
	}
}
