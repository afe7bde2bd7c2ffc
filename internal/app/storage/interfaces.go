// Package storage declares the persistence contracts consumed by the
// application services, along with the shared error taxonomy callers branch
// on. Implementations live in the postgres, redis and memory subpackages.
package storage

import (
	"context"

	"github.com/golden-burguer/appcore/internal/app/domain/product"
	"github.com/golden-burguer/appcore/internal/app/domain/user"
)

// ProductStore persists catalog products.
//
// WatchProducts backs the reactive catalog queries: the returned channel
// receives a signal after any product-table change commits, and is closed when
// ctx is cancelled. Signals are coalesced; a watcher that falls behind sees at
// least one signal for any burst of writes. Writes are not guaranteed to be
// visible through the watch channel before the write call itself returns.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]product.Product, error)
	ListFavorites(ctx context.Context) ([]product.Product, error)
	UpdateFavorite(ctx context.Context, productID int, favorite bool) error

	// SeedProducts inserts the launch catalog if the product table is empty.
	// Seeding an already-populated store is a no-op.
	SeedProducts(ctx context.Context, products []product.Product) error

	WatchProducts(ctx context.Context) <-chan struct{}
}

// UserStore persists registered users.
type UserStore interface {
	// CreateUser inserts a new user and returns it with the assigned
	// identifier. Inserting an email that is already present fails with
	// ErrDuplicateEmail; it never overwrites.
	CreateUser(ctx context.Context, u user.User) (user.User, error)

	// GetUserByEmail returns ErrNotFound when no user matches.
	GetUserByEmail(ctx context.Context, email string) (user.User, error)

	// UpdateUser overwrites the row keyed by u.ID and returns ErrNotFound
	// when the identifier is unknown.
	UpdateUser(ctx context.Context, u user.User) error
}

// SessionStore persists the device session: the authenticated user's email
// (absent when logged out) and the dark-mode preference.
type SessionStore interface {
	// AuthenticatedEmail returns (email, true) when a session exists and
	// ("", false) when logged out.
	AuthenticatedEmail(ctx context.Context) (string, bool, error)
	SetAuthenticatedEmail(ctx context.Context, email string) error
	ClearAuthenticatedEmail(ctx context.Context) error

	DarkMode(ctx context.Context) (bool, error)
	SetDarkMode(ctx context.Context, enabled bool) error
}
