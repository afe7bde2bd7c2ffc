// Package accounts implements registration, login and logout. The service
// owns session establishment: on any successful registration or login it
// writes the authenticated email to the session store, and callers only react
// to the resulting state.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/golden-burguer/appcore/internal/app/domain/user"
	"github.com/golden-burguer/appcore/internal/app/metrics"
	"github.com/golden-burguer/appcore/internal/app/storage"
	"github.com/golden-burguer/appcore/internal/app/validation"
	"github.com/golden-burguer/appcore/pkg/logger"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// the two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("accounts: invalid email or password")

	// ErrFormInvalid is returned when registration is attempted with an
	// incomplete or invalid form.
	ErrFormInvalid = errors.New("accounts: form contains errors or missing fields")

	// ErrTooManyAttempts is returned when login attempts for an email are
	// being throttled.
	ErrTooManyAttempts = errors.New("accounts: too many login attempts")
)

// Login throttling: sustained 1 attempt per 2s with a burst of 5 per email.
const (
	loginRate  = rate.Limit(0.5)
	loginBurst = 5
)

// Service manages user accounts and the authenticated session.
type Service struct {
	users    storage.UserStore
	sessions storage.SessionStore
	log      *logger.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// New constructs an accounts service.
func New(users storage.UserStore, sessions storage.SessionStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("accounts")
	}
	return &Service{
		users:    users,
		sessions: sessions,
		log:      log,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Register validates the completed form, creates the user and establishes the
// session. Duplicate emails fail with storage.ErrDuplicateEmail.
func (s *Service) Register(ctx context.Context, form *validation.Form) (user.User, error) {
	if !form.Submittable(validation.RegistrationFields()...) {
		return user.User{}, ErrFormInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Value(validation.FieldPassword)), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := user.User{
		Email:     NormalizeEmail(form.Value(validation.FieldEmail)),
		Password:  string(hash),
		FullName:  form.Value(validation.FieldFullName),
		Phone:     form.Value(validation.FieldPhone),
		Gender:    form.Value(validation.FieldGender),
		BirthDate: form.Value(validation.FieldBirthDate),
		Street:    form.Value(validation.FieldStreet),
		Number:    form.Value(validation.FieldNumber),
		City:      form.Value(validation.FieldCity),
		Region:    form.Value(validation.FieldRegion),
		Commune:   form.Value(validation.FieldCommune),
	}

	created, err := s.users.CreateUser(ctx, u)
	if err != nil {
		return user.User{}, err
	}

	if err := s.sessions.SetAuthenticatedEmail(ctx, created.Email); err != nil {
		s.log.Warnf("establish session after registration: %v", err)
	}
	s.log.Infof("user %d registered", created.ID)
	return created, nil
}

// Login authenticates by email and password and establishes the session on
// success. A miss on either email or password yields ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (user.User, error) {
	email = NormalizeEmail(email)

	if !s.limiter(email).Allow() {
		metrics.LoginAttempt("throttled")
		return user.User{}, ErrTooManyAttempts
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		metrics.LoginAttempt("failure")
		return user.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return user.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		metrics.LoginAttempt("failure")
		return user.User{}, ErrInvalidCredentials
	}

	if err := s.sessions.SetAuthenticatedEmail(ctx, u.Email); err != nil {
		s.log.Warnf("establish session after login: %v", err)
	}
	metrics.LoginAttempt("success")
	s.log.Infof("user %d logged in", u.ID)
	return u, nil
}

// Logout clears the session.
func (s *Service) Logout(ctx context.Context) error {
	return s.sessions.ClearAuthenticatedEmail(ctx)
}

func (s *Service) limiter(email string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	lim, ok := s.limiters[email]
	if !ok {
		lim = rate.NewLimiter(loginRate, loginBurst)
		s.limiters[email] = lim
	}
	return lim
}

// NormalizeEmail lowercases and trims the address. Uniqueness checks, storage
// and lookups all go through this normal form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
