package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"github.com/shelfwise/bookstore/internal/db"
	"github.com/shelfwise/bookstore/internal/repository"
)

type BookRepo struct {
	db db.DB

	// salesColumn is the result of the startup schema probe: the name
	// of the per-book sales counter column, or "" when the schema has
	// none.
	salesColumn string
}

func NewBookRepo(db db.DB, salesColumn string) *BookRepo {
	return &BookRepo{db: db, salesColumn: salesColumn}
}

// DetectSalesColumn probes the books table for a sales counter column
// once at startup. Older schemas named it "sold", newer ones
// "sales_count"; either may be absent, which is not an error.
func DetectSalesColumn(ctx context.Context, db db.DB) (string, error) {
	var columns []string
	err := db.Select(ctx, &columns, `
        SELECT column_name
        FROM information_schema.columns
        WHERE table_name = 'books' AND column_name IN ('sales_count', 'sold')
    `)
	if err != nil {
		return "", fmt.Errorf("failed to probe books schema: %w", err)
	}
	for _, preferred := range []string{"sales_count", "sold"} {
		for _, c := range columns {
			if c == preferred {
				return preferred, nil
			}
		}
	}
	return "", nil
}

func (r *BookRepo) List(ctx context.Context) ([]*repository.Book, error) {
	var books []*repository.Book
	err := r.db.Select(ctx, &books, `
        SELECT b.id, b.title, b.description, b.price, b.stock, b.author_id, b.category_id,
               b.image, b.published_date, a.name AS author_name, c.name AS category_name
        FROM books b
        LEFT JOIN authors a ON a.id = b.author_id
        LEFT JOIN categories c ON c.id = b.category_id
        ORDER BY b.id ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

func (r *BookRepo) GetByID(ctx context.Context, id int64) (*repository.Book, error) {
	var book repository.Book
	err := r.db.Get(ctx, &book, `
        SELECT b.id, b.title, b.description, b.price, b.stock, b.author_id, b.category_id,
               b.image, b.published_date, a.name AS author_name, c.name AS category_name
        FROM books b
        LEFT JOIN authors a ON a.id = b.author_id
        LEFT JOIN categories c ON c.id = b.category_id
        WHERE b.id = $1
    `, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (r *BookRepo) Create(ctx context.Context, book *repository.Book) (int64, error) {
	var id int64
	err := r.db.ExecQueryRow(ctx, `
        INSERT INTO books (title, description, price, stock, author_id, category_id, image, published_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `, book.Title, book.Description, book.Price, book.Stock, book.AuthorID, book.CategoryID, book.Image, book.PublishedDate).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert book: %w", err)
	}
	return id, nil
}

func (r *BookRepo) Update(ctx context.Context, book *repository.Book) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE books
        SET title = $1, description = $2, price = $3, stock = $4,
            author_id = $5, category_id = $6, image = $7, published_date = $8
        WHERE id = $9
    `, book.Title, book.Description, book.Price, book.Stock, book.AuthorID, book.CategoryID, book.Image, book.PublishedDate, book.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *BookRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM books WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

// CartInfo re-reads the live book row for a cart mutation.
func (r *BookRepo) CartInfo(ctx context.Context, id int64) (*repository.CartBook, error) {
	var book repository.CartBook
	err := r.db.Get(ctx, &book, `
        SELECT b.id, b.title, b.price, b.stock, b.image, a.name AS author_name
        FROM books b
        LEFT JOIN authors a ON a.id = b.author_id
        WHERE b.id = $1
    `, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &book, nil
}

// CheckoutInfoTx fetches the authoritative price/stock/title/category
// for one cart line inside the checkout transaction.
func (r *BookRepo) CheckoutInfoTx(ctx context.Context, tx db.Tx, id int64) (*repository.CheckoutBook, error) {
	var book repository.CheckoutBook
	err := tx.Get(ctx, &book, `
        SELECT b.id, b.title, b.price, b.stock, COALESCE(c.name, '') AS category
        FROM books b
        LEFT JOIN categories c ON c.id = b.category_id
        WHERE b.id = $1
    `, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &book, nil
}

// DecrementStockTx conditionally takes quantity units of stock and, when
// the schema has a sales counter, bumps it in the same statement. A
// false return means the stock guard lost against a concurrent checkout
// and the whole transaction must be rolled back.
func (r *BookRepo) DecrementStockTx(ctx context.Context, tx db.Tx, id int64, quantity int) (bool, error) {
	query := "UPDATE books SET stock = stock - $1 WHERE id = $2 AND stock >= $1"
	switch r.salesColumn {
	case "sales_count":
		query = "UPDATE books SET stock = stock - $1, sales_count = COALESCE(sales_count, 0) + $1 WHERE id = $2 AND stock >= $1"
	case "sold":
		query = "UPDATE books SET stock = stock - $1, sold = COALESCE(sold, 0) + $1 WHERE id = $2 AND stock >= $1"
	}

	tag, err := tx.Exec(ctx, query, quantity, id)
	if err != nil {
		return false, fmt.Errorf("failed to decrement stock for book %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
