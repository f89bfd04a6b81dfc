package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is a verified account. Users are created exclusively by the
// registration manager once the email verification code has been matched.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           uuid.UUID `bun:"id,pk,type:uuid" json:"id,omitempty"`
	Username     string    `bun:"username,notnull,unique" json:"username"`
	Email        string    `bun:"email,notnull,unique" json:"email"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"`
	Phone        string    `bun:"phone" json:"phone,omitempty"`
	State        string    `bun:"state" json:"state,omitempty"`
	Area         string    `bun:"area" json:"area,omitempty"`
	Street       string    `bun:"street" json:"street,omitempty"`
	Address      string    `bun:"address" json:"address,omitempty"`
	CreatedAt    time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// FullAddress returns the stored address, or one assembled from the
// street/area/state components when no explicit address was given.
func (u *User) FullAddress() string {
	if u.Address != "" {
		return u.Address
	}
	return fmt.Sprintf("%s, %s, %s, Nigeria", u.Street, u.Area, u.State)
}

// PendingRegistration is the transient record between a registration
// submission and the verification of the emailed code. The password is
// hashed before it lands here; plaintext never outlives the request.
type PendingRegistration struct {
	Email        string
	Code         string
	Username     string
	PasswordHash string
	Phone        string
	State        string
	Area         string
	Street       string
	Address      string
	ExpiresAt    time.Time
}

// Expired reports whether the verification window has closed.
func (p *PendingRegistration) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// User builds the permanent record this pending registration promotes into.
func (p *PendingRegistration) User(id uuid.UUID) *User {
	return &User{
		ID:           id,
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
		Phone:        p.Phone,
		State:        p.State,
		Area:         p.Area,
		Street:       p.Street,
		Address:      p.Address,
	}
}

// Product is a catalog entry. Prices are whole naira, as in the
// original catalog.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:prd"`

	ID       uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name     string    `bun:"name,notnull" json:"name"`
	Price    int64     `bun:"price,notnull" json:"price"`
	Category string    `bun:"category,notnull" json:"category"`
	Image    string    `bun:"image,notnull" json:"image"`
}

// Order statuses move from pending through whatever the admin panel sets.
const OrderStatusPending = "pending"

// Order captures a "buy now" purchase.
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:ord"`

	ID            uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Username      string    `bun:"username,notnull" json:"username"`
	Product       string    `bun:"product,notnull" json:"product"`
	Price         int64     `bun:"price,notnull" json:"price"`
	Status        string    `bun:"status,notnull" json:"status"`
	BasePrice     int64     `bun:"base_price" json:"base_price,omitempty"`
	PaymentMethod string    `bun:"payment_method" json:"payment_method,omitempty"`
	OrderType     string    `bun:"order_type" json:"order_type,omitempty"`
	Address       string    `bun:"address" json:"address,omitempty"`
	Image         string    `bun:"image" json:"image,omitempty"`
	Date          time.Time `bun:"date,nullzero,default:current_timestamp" json:"date,omitempty"`
}

// Notification is a message surfaced to a user (or to the admin panel
// when no addressee is set).
type Notification struct {
	bun.BaseModel `bun:"table:notifications,alias:ntf"`

	ID       uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Username string    `bun:"username" json:"username,omitempty"`
	Email    string    `bun:"email" json:"email,omitempty"`
	Title    string    `bun:"title" json:"title,omitempty"`
	Message  string    `bun:"message,notnull" json:"message"`
	Date     time.Time `bun:"date,nullzero,default:current_timestamp" json:"date,omitempty"`
}

// Care message senders.
const (
	CareSenderUser  = "user"
	CareSenderAdmin = "admin"
)

// CareMessage is one entry in the customer care chat relay.
type CareMessage struct {
	bun.BaseModel `bun:"table:care_messages,alias:care"`

	ID       uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	From     string    `bun:"sender,notnull" json:"from"`
	Text     string    `bun:"text,notnull" json:"text"`
	Username string    `bun:"username,notnull" json:"username"`
	Email    string    `bun:"email" json:"email,omitempty"`
	Date     time.Time `bun:"date,nullzero,default:current_timestamp" json:"date"`
}
