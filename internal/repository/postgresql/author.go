package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"github.com/shelfwise/bookstore/internal/db"
	"github.com/shelfwise/bookstore/internal/repository"
)

type AuthorRepo struct {
	db db.DB
}

func NewAuthorRepo(db db.DB) *AuthorRepo {
	return &AuthorRepo{db: db}
}

func (r *AuthorRepo) List(ctx context.Context) ([]*repository.Author, error) {
	var authors []*repository.Author
	err := r.db.Select(ctx, &authors, "SELECT id, name, bio FROM authors ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return authors, nil
}

func (r *AuthorRepo) GetByID(ctx context.Context, id int64) (*repository.Author, error) {
	var author repository.Author
	err := r.db.Get(ctx, &author, "SELECT id, name, bio FROM authors WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &author, nil
}

func (r *AuthorRepo) Create(ctx context.Context, author *repository.Author) (int64, error) {
	var id int64
	err := r.db.ExecQueryRow(ctx,
		"INSERT INTO authors (name, bio) VALUES ($1, $2) RETURNING id",
		author.Name, author.Bio).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert author: %w", err)
	}
	return id, nil
}

func (r *AuthorRepo) Update(ctx context.Context, author *repository.Author) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE authors SET name = $1, bio = $2 WHERE id = $3",
		author.Name, author.Bio, author.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *AuthorRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM authors WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}
