package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"github.com/shelfwise/bookstore/internal/db"
	"github.com/shelfwise/bookstore/internal/repository"
)

type CategoryRepo struct {
	db db.DB
}

func NewCategoryRepo(db db.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) List(ctx context.Context) ([]*repository.Category, error) {
	var categories []*repository.Category
	err := r.db.Select(ctx, &categories, "SELECT id, name FROM categories ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*repository.Category, error) {
	var category repository.Category
	err := r.db.Get(ctx, &category, "SELECT id, name FROM categories WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepo) Create(ctx context.Context, category *repository.Category) (int64, error) {
	var id int64
	err := r.db.ExecQueryRow(ctx,
		"INSERT INTO categories (name) VALUES ($1) RETURNING id",
		category.Name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert category: %w", err)
	}
	return id, nil
}

func (r *CategoryRepo) Update(ctx context.Context, category *repository.Category) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE categories SET name = $1 WHERE id = $2",
		category.Name, category.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}
