// Package postgres implements the product and user stores backed by
// PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/golden-burguer/appcore/internal/app/domain/product"
	"github.com/golden-burguer/appcore/internal/app/domain/user"
	"github.com/golden-burguer/appcore/internal/app/storage"
)

const uniqueViolation = "23505"

// Store implements the storage interfaces backed by PostgreSQL. Product-table
// change notifications are raised in-process after each committing write, so
// a single process observes its own writes through WatchProducts.
type Store struct {
	db       *sql.DB
	notifier *storage.Notifier
}

var _ storage.ProductStore = (*Store)(nil)
var _ storage.UserStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db, notifier: storage.NewNotifier()}
}

// --- ProductStore -----------------------------------------------------------

func (s *Store) ListProducts(ctx context.Context) ([]product.Product, error) {
	return s.queryProducts(ctx, `
		SELECT id, name, description, price, image_ref, favorite
		FROM products
		ORDER BY id
	`)
}

func (s *Store) ListFavorites(ctx context.Context) ([]product.Product, error) {
	return s.queryProducts(ctx, `
		SELECT id, name, description, price, image_ref, favorite
		FROM products
		WHERE favorite
		ORDER BY id
	`)
}

func (s *Store) queryProducts(ctx context.Context, query string) ([]product.Product, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []product.Product
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageRef, &p.Favorite); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (s *Store) UpdateFavorite(ctx context.Context, productID int, favorite bool) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE products SET favorite = $2 WHERE id = $1
	`, productID, favorite)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}

	s.notifier.Notify()
	return nil
}

func (s *Store) SeedProducts(ctx context.Context, products []product.Product) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, p := range products {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO products (id, name, description, price, image_ref, favorite)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, p.ID, p.Name, p.Description, p.Price, p.ImageRef, p.Favorite); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.notifier.Notify()
	return nil
}

func (s *Store) WatchProducts(ctx context.Context) <-chan struct{} {
	return s.notifier.Watch(ctx)
}

// --- UserStore --------------------------------------------------------------

func (s *Store) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password, full_name, phone, gender, birth_date,
			street, number, city, region, commune, profile_image_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`, u.Email, u.Password, u.FullName, u.Phone, u.Gender, u.BirthDate,
		u.Street, u.Number, u.City, u.Region, u.Commune, u.ProfileImageRef,
	).Scan(&u.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return user.User{}, storage.ErrDuplicateEmail
		}
		return user.User{}, err
	}
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, password, full_name, phone, gender, birth_date,
			street, number, city, region, commune, profile_image_ref
		FROM users
		WHERE email = $1
	`, email)

	var u user.User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FullName, &u.Phone, &u.Gender,
		&u.BirthDate, &u.Street, &u.Number, &u.City, &u.Region, &u.Commune, &u.ProfileImageRef)
	if errors.Is(err, sql.ErrNoRows) {
		return user.User{}, storage.ErrNotFound
	}
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, u user.User) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET full_name = $2, phone = $3, gender = $4, birth_date = $5,
			street = $6, number = $7, city = $8, region = $9, commune = $10,
			profile_image_ref = $11
		WHERE id = $1
	`, u.ID, u.FullName, u.Phone, u.Gender, u.BirthDate,
		u.Street, u.Number, u.City, u.Region, u.Commune, u.ProfileImageRef)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}
