// Package memory provides an in-memory implementation of the storage
// interfaces. It is safe for concurrent use and is primarily intended for
// tests and local development.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/golden-burguer/appcore/internal/app/domain/product"
	"github.com/golden-burguer/appcore/internal/app/domain/user"
	"github.com/golden-burguer/appcore/internal/app/storage"
)

// Store is an in-memory implementation of ProductStore, UserStore and
// SessionStore.
type Store struct {
	mu           sync.RWMutex
	nextUserID   int
	products     map[int]product.Product
	users        map[int]user.User
	usersByEmail map[string]int

	sessionEmail string
	sessionSet   bool
	darkMode     bool

	notifier *storage.Notifier
}

var _ storage.ProductStore = (*Store)(nil)
var _ storage.UserStore = (*Store)(nil)
var _ storage.SessionStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		nextUserID:   1,
		products:     make(map[int]product.Product),
		users:        make(map[int]user.User),
		usersByEmail: make(map[string]int),
		notifier:     storage.NewNotifier(),
	}
}

// ProductStore implementation ------------------------------------------------

func (s *Store) ListProducts(_ context.Context) ([]product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked(func(product.Product) bool { return true }), nil
}

func (s *Store) ListFavorites(_ context.Context) ([]product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked(func(p product.Product) bool { return p.Favorite }), nil
}

func (s *Store) listLocked(keep func(product.Product) bool) []product.Product {
	result := make([]product.Product, 0, len(s.products))
	for _, p := range s.products {
		if keep(p) {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (s *Store) UpdateFavorite(_ context.Context, productID int, favorite bool) error {
	s.mu.Lock()
	p, ok := s.products[productID]
	if !ok {
		s.mu.Unlock()
		return storage.ErrNotFound
	}
	p.Favorite = favorite
	s.products[productID] = p
	s.mu.Unlock()

	s.notifier.Notify()
	return nil
}

func (s *Store) SeedProducts(_ context.Context, products []product.Product) error {
	s.mu.Lock()
	if len(s.products) > 0 {
		s.mu.Unlock()
		return nil
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	s.mu.Unlock()

	s.notifier.Notify()
	return nil
}

func (s *Store) WatchProducts(ctx context.Context) <-chan struct{} {
	return s.notifier.Watch(ctx)
}

// UserStore implementation ---------------------------------------------------

func (s *Store) CreateUser(_ context.Context, u user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(u.Email)
	if _, exists := s.usersByEmail[email]; exists {
		return user.User{}, storage.ErrDuplicateEmail
	}

	u.ID = s.nextUserID
	s.nextUserID++
	u.Email = email

	s.users[u.ID] = u
	s.usersByEmail[email] = u.ID
	return u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByEmail[strings.ToLower(email)]
	if !ok {
		return user.User{}, storage.ErrNotFound
	}
	return s.users[id], nil
}

func (s *Store) UpdateUser(_ context.Context, u user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[u.ID]
	if !ok {
		return storage.ErrNotFound
	}

	// Identifier and email are immutable after registration.
	u.Email = existing.Email
	s.users[u.ID] = u
	return nil
}

// SessionStore implementation ------------------------------------------------

func (s *Store) AuthenticatedEmail(_ context.Context) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionEmail, s.sessionSet, nil
}

func (s *Store) SetAuthenticatedEmail(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionEmail = email
	s.sessionSet = true
	return nil
}

func (s *Store) ClearAuthenticatedEmail(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionEmail = ""
	s.sessionSet = false
	return nil
}

func (s *Store) DarkMode(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.darkMode, nil
}

func (s *Store) SetDarkMode(_ context.Context, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.darkMode = enabled
	return nil
}
