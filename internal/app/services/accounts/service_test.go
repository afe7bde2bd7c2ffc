package accounts

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/golden-burguer/appcore/internal/app/storage"
	"github.com/golden-burguer/appcore/internal/app/storage/memory"
	"github.com/golden-burguer/appcore/internal/app/validation"
)

func validForm(email string) *validation.Form {
	form := validation.NewForm()
	form.SetField(validation.FieldEmail, email)
	form.SetField(validation.FieldPassword, "secret1")
	form.SetField(validation.FieldFullName, "Ana Pérez")
	form.SetField(validation.FieldPhone, "912345678")
	form.SetField(validation.FieldGender, "femenino")
	form.SetField(validation.FieldBirthDate, "2000-01-31")
	form.SetField(validation.FieldStreet, "Av. Siempre Viva")
	form.SetField(validation.FieldNumber, "742")
	form.SetField(validation.FieldCity, "Santiago")
	form.SetField(validation.FieldRegion, "Metropolitana")
	form.SetField(validation.FieldCommune, "Providencia")
	return form
}

func TestRegisterEstablishesSession(t *testing.T) {
	store := memory.New()
	svc := New(store, store, nil)
	ctx := context.Background()

	created, err := svc.Register(ctx, validForm("Ana@Example.COM"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.Email != "ana@example.com" {
		t.Fatalf("email not normalized: %q", created.Email)
	}
	if created.Password == "secret1" {
		t.Fatal("password stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret1")) != nil {
		t.Fatal("stored hash does not verify")
	}

	email, ok, err := store.AuthenticatedEmail(ctx)
	if err != nil || !ok || email != "ana@example.com" {
		t.Fatalf("session not established: (%q,%v,%v)", email, ok, err)
	}

	// Registered user is immediately findable by direct lookup.
	if _, err := store.GetUserByEmail(ctx, "ana@example.com"); err != nil {
		t.Fatalf("lookup after register: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := memory.New()
	svc := New(store, store, nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, validForm("ana@example.com")); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, validForm("ANA@example.com"))
	if !errors.Is(err, storage.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	if _, err := svc.Register(ctx, validForm("other@example.com")); err != nil {
		t.Fatalf("register with fresh email: %v", err)
	}
}

func TestRegisterIncompleteForm(t *testing.T) {
	store := memory.New()
	svc := New(store, store, nil)

	form := validation.NewForm()
	form.SetField(validation.FieldEmail, "ana@example.com")
	form.SetField(validation.FieldPassword, "secret1")

	_, err := svc.Register(context.Background(), form)
	if !errors.Is(err, ErrFormInvalid) {
		t.Fatalf("expected ErrFormInvalid, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	store := memory.New()
	svc := New(store, store, nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, validForm("ana@example.com")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}

	// Wrong password and unknown email are indistinguishable.
	if _, err := svc.Login(ctx, "ana@example.com", "wrongpw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v", err)
	}
	if _, ok, _ := store.AuthenticatedEmail(ctx); ok {
		t.Fatal("failed login must not establish a session")
	}

	u, err := svc.Login(ctx, "ANA@example.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.Email != "ana@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
	email, ok, _ := store.AuthenticatedEmail(ctx)
	if !ok || email != "ana@example.com" {
		t.Fatal("session not established after login")
	}
}

func TestLoginThrottledAfterBurst(t *testing.T) {
	store := memory.New()
	svc := New(store, store, nil)
	ctx := context.Background()

	var throttled bool
	for i := 0; i < 10; i++ {
		_, err := svc.Login(ctx, "ana@example.com", "wrongpw")
		if errors.Is(err, ErrTooManyAttempts) {
			throttled = true
			break
		}
	}
	if !throttled {
		t.Fatal("expected throttling after a burst of failed logins")
	}

	// Other emails are unaffected.
	if _, err := svc.Login(ctx, "other@example.com", "pw"); errors.Is(err, ErrTooManyAttempts) {
		t.Fatal("throttle must be per email")
	}
}
