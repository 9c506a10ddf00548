package repository

import (
	"errors"
	"time"
)

var ErrObjectNotFound = errors.New("not found")

type Book struct {
	ID            int64      `db:"id"`
	Title         string     `db:"title"`
	Description   string     `db:"description"`
	Price         float64    `db:"price"`
	Stock         int        `db:"stock"`
	AuthorID      int64      `db:"author_id"`
	CategoryID    int64      `db:"category_id"`
	Image         string     `db:"image"`
	PublishedDate *time.Time `db:"published_date"`

	// Joined columns, present on list/detail reads only.
	AuthorName   *string `db:"author_name"`
	CategoryName *string `db:"category_name"`
}

// CheckoutBook is the authoritative book state re-read during checkout.
// Cart snapshots are never trusted for validation or pricing.
type CheckoutBook struct {
	ID       int64   `db:"id"`
	Title    string  `db:"title"`
	Price    float64 `db:"price"`
	Stock    int     `db:"stock"`
	Category string  `db:"category"`
}

// CartBook is the subset needed to build a cart line.
type CartBook struct {
	ID         int64   `db:"id"`
	Title      string  `db:"title"`
	Price      float64 `db:"price"`
	Stock      int     `db:"stock"`
	Image      string  `db:"image"`
	AuthorName *string `db:"author_name"`
}

type Author struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	Bio  string `db:"bio"`
}

type Category struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Account covers both customers and admins; the two tables share the
// same column layout.
type Account struct {
	ID        int64      `db:"id"`
	FirstName string     `db:"first_name"`
	LastName  string     `db:"last_name"`
	Email     string     `db:"email"`
	Password  string     `db:"password"`
	Phone     string     `db:"phone"`
	Address   string     `db:"address"`
	CreatedAt time.Time  `db:"created_at"`
	LastLogin *time.Time `db:"last_login"`
}
