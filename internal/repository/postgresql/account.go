package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/shelfwise/bookstore/internal/auth"
	"github.com/shelfwise/bookstore/internal/db"
	"github.com/shelfwise/bookstore/internal/repository"
)

// AccountRepo serves either the customers or the admins table; both
// share the same column layout.
type AccountRepo struct {
	db    db.DB
	table string
}

func NewCustomerRepo(db db.DB) *AccountRepo {
	return &AccountRepo{db: db, table: "customers"}
}

func NewAdminRepo(db db.DB) *AccountRepo {
	return &AccountRepo{db: db, table: "admins"}
}

const accountColumns = "id, first_name, last_name, email, password, phone, address, created_at, last_login"

func (r *AccountRepo) List(ctx context.Context) ([]*repository.Account, error) {
	var accounts []*repository.Account
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id ASC", accountColumns, r.table)
	if err := r.db.Select(ctx, &accounts, query); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.table, err)
	}
	return accounts, nil
}

func (r *AccountRepo) GetByID(ctx context.Context, id int64) (*repository.Account, error) {
	var account repository.Account
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", accountColumns, r.table)
	if err := r.db.Get(ctx, &account, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*repository.Account, error) {
	var account repository.Account
	query := fmt.Sprintf("SELECT %s FROM %s WHERE LOWER(email) = LOWER($1)", accountColumns, r.table)
	if err := r.db.Get(ctx, &account, query, email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepo) Create(ctx context.Context, account *repository.Account, plainPassword string) (int64, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	var id int64
	query := fmt.Sprintf(`
        INSERT INTO %s (first_name, last_name, email, password, phone, address)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `, r.table)
	err = r.db.ExecQueryRow(ctx, query,
		account.FirstName, account.LastName, account.Email, string(hashed), account.Phone, account.Address).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert into %s: %w", r.table, err)
	}
	return id, nil
}

func (r *AccountRepo) Update(ctx context.Context, account *repository.Account) error {
	query := fmt.Sprintf(`
        UPDATE %s
        SET first_name = $1, last_name = $2, email = $3, phone = $4, address = $5
        WHERE id = $6
    `, r.table)
	tag, err := r.db.Exec(ctx, query,
		account.FirstName, account.LastName, account.Email, account.Phone, account.Address, account.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *AccountRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.table), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

// Authenticate verifies credentials against this table. Legacy rows may
// still hold plaintext passwords; those are accepted once and migrated
// to a bcrypt hash on the spot.
func (r *AccountRepo) Authenticate(ctx context.Context, email, password string) (*repository.Account, error) {
	account, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	hashErr := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password))
	legacyPlaintext := hashErr != nil && account.Password == password
	if hashErr != nil && !legacyPlaintext {
		return nil, auth.ErrUnauthorized
	}

	now := time.Now().UTC()
	if legacyPlaintext {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		_, err = r.db.Exec(ctx,
			fmt.Sprintf("UPDATE %s SET last_login = $1, password = $2 WHERE id = $3", r.table),
			now, string(hashed), account.ID)
		if err != nil {
			return nil, err
		}
	} else {
		_, err = r.db.Exec(ctx,
			fmt.Sprintf("UPDATE %s SET last_login = $1 WHERE id = $2", r.table),
			now, account.ID)
		if err != nil {
			return nil, err
		}
	}

	account.LastLogin = &now
	return account, nil
}

// UserType reports which role rows of this table authenticate as.
func (r *AccountRepo) UserType() auth.UserType {
	if r.table == "admins" {
		return auth.UserTypeAdmin
	}
	return auth.UserTypeCustomer
}
