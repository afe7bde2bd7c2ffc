package profile

import (
	"context"
	"testing"

	"github.com/golden-burguer/appcore/internal/app/domain/user"
	"github.com/golden-burguer/appcore/internal/app/storage/memory"
)

func TestLoadCompletesWithoutSession(t *testing.T) {
	store := memory.New()
	svc := New(store, store, nil)

	st := svc.Load(context.Background())
	if st.Loading {
		t.Fatal("loading must complete even without a session")
	}
	if st.User != nil {
		t.Fatalf("expected no user, got %+v", st.User)
	}
}

func TestLoadCompletesWhenUserMissing(t *testing.T) {
	store := memory.New()
	svc := New(store, store, nil)
	ctx := context.Background()

	if err := store.SetAuthenticatedEmail(ctx, "ghost@example.com"); err != nil {
		t.Fatalf("set session: %v", err)
	}

	st := svc.Load(ctx)
	if st.Loading || st.User != nil {
		t.Fatalf("expected completed load with defaults, got %+v", st)
	}
}

func TestLoadBuffersUserFields(t *testing.T) {
	store := memory.New()
	svc := New(store, store, nil)
	ctx := context.Background()

	created, err := store.CreateUser(ctx, user.User{
		Email:    "ana@example.com",
		Password: "hash",
		FullName: "Ana Pérez",
		Phone:    "912345678",
		Street:   "Av. Siempre Viva",
		Number:   "742",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.SetAuthenticatedEmail(ctx, created.Email); err != nil {
		t.Fatalf("set session: %v", err)
	}

	st := svc.Load(ctx)
	if st.Loading || st.User == nil {
		t.Fatalf("expected loaded user, got %+v", st)
	}
	if st.Edits.FullName != "Ana Pérez" || st.Edits.Phone != "912345678" {
		t.Fatalf("edits not buffered: %+v", st.Edits)
	}
}

func TestSaveMergesAndPreservesIdentity(t *testing.T) {
	store := memory.New()
	svc := New(store, store, nil)
	ctx := context.Background()

	created, err := store.CreateUser(ctx, user.User{
		Email:    "ana@example.com",
		Password: "hash",
		FullName: "Ana Pérez",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	edits := Edits{
		FullName: "Ana María Pérez",
		Phone:    "987654321",
		City:     "Valparaíso",
	}
	updated, err := svc.Save(ctx, &created, edits)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if updated.ID != created.ID || updated.Email != created.Email || updated.Password != created.Password {
		t.Fatal("save must preserve identifier, email and password")
	}

	got, err := store.GetUserByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.FullName != "Ana María Pérez" || got.Phone != "987654321" || got.City != "Valparaíso" {
		t.Fatalf("edits not persisted: %+v", got)
	}
}

func TestSaveWithoutLoadedUser(t *testing.T) {
	store := memory.New()
	svc := New(store, store, nil)

	if _, err := svc.Save(context.Background(), nil, Edits{}); err != ErrNoUserLoaded {
		t.Fatalf("expected ErrNoUserLoaded, got %v", err)
	}
}
