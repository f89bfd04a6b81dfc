package store

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// Users is the permanent account store.
type Users interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Exists(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, user *User) (*User, error)
	List(ctx context.Context) ([]*User, error)
	DeleteByUsername(ctx context.Context, username string) error
	DeleteAll(ctx context.Context) error
}

// PendingRegistrations holds in-flight registrations keyed by email.
// Implementations must make Get/Put/Delete safe for concurrent handlers;
// promotion atomicity is driven by the registration manager.
type PendingRegistrations interface {
	Get(ctx context.Context, email string) (*PendingRegistration, error)
	Put(ctx context.Context, reg *PendingRegistration) error
	Delete(ctx context.Context, email string) error
}

// Products is the catalog store.
type Products interface {
	List(ctx context.Context) ([]*Product, error)
	Create(ctx context.Context, product *Product) (*Product, error)
	UpdatePrice(ctx context.Context, id uuid.UUID, price int64) (*Product, error)
}

// Orders is the purchase store.
type Orders interface {
	List(ctx context.Context) ([]*Order, error)
	ListByUsername(ctx context.Context, username string) ([]*Order, error)
	Create(ctx context.Context, order *Order) (*Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Order, error)
	DeleteAll(ctx context.Context) error
}

// Notifications is the user/admin notification store.
type Notifications interface {
	List(ctx context.Context) ([]*Notification, error)
	ListForUser(ctx context.Context, user string) ([]*Notification, error)
	Create(ctx context.Context, notification *Notification) (*Notification, error)
	DeleteAll(ctx context.Context) error
}

// CareMessages is the customer care chat store.
type CareMessages interface {
	List(ctx context.Context) ([]*CareMessage, error)
	ListByUsername(ctx context.Context, username string) ([]*CareMessage, error)
	Create(ctx context.Context, msg *CareMessage) (*CareMessage, error)
	LastEmailFor(ctx context.Context, username string) (string, error)
	DeleteAll(ctx context.Context) error
}

func recordNotFound(entity string, meta map[string]any) *errors.Error {
	return errors.New(entity+" not found", errors.CategoryNotFound).
		WithTextCode("RECORD_NOT_FOUND").
		WithCode(errors.CodeNotFound).
		WithMetadata(meta)
}
