package app

import (
	"context"

	"github.com/golden-burguer/appcore/internal/app/domain/product"
	"github.com/golden-burguer/appcore/internal/app/services/accounts"
	"github.com/golden-burguer/appcore/internal/app/services/catalog"
	"github.com/golden-burguer/appcore/internal/app/services/profile"
	"github.com/golden-burguer/appcore/internal/app/storage"
	"github.com/golden-burguer/appcore/internal/app/storage/memory"
	"github.com/golden-burguer/appcore/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to a
// shared in-memory implementation.
type Stores struct {
	Products storage.ProductStore
	Users    storage.UserStore
	Sessions storage.SessionStore
}

// Application ties the domain services together and manages their lifecycle.
type Application struct {
	log *logger.Logger

	Catalog  *catalog.Service
	Accounts *accounts.Service
	Profile  *profile.Service
	Sessions storage.SessionStore
}

// New builds a fully initialised application with the provided stores. The
// product store is seeded with the launch catalog before the catalog
// controller starts observing it.
func New(ctx context.Context, stores Stores, log *logger.Logger) (*Application, error) {
	if log == nil {
		log = logger.NewDefault("app")
	}

	if stores.Products == nil || stores.Users == nil || stores.Sessions == nil {
		mem := memory.New()
		if stores.Products == nil {
			stores.Products = mem
		}
		if stores.Users == nil {
			stores.Users = mem
		}
		if stores.Sessions == nil {
			stores.Sessions = mem
		}
	}

	if err := stores.Products.SeedProducts(ctx, product.SeedCatalog()); err != nil {
		return nil, err
	}

	accountsSvc := accounts.New(stores.Users, stores.Sessions, log.WithComponent("accounts"))
	profileSvc := profile.New(stores.Users, stores.Sessions, log.WithComponent("profile"))
	catalogSvc := catalog.New(stores.Products, log.WithComponent("catalog"))

	return &Application{
		log:      log,
		Catalog:  catalogSvc,
		Accounts: accountsSvc,
		Profile:  profileSvc,
		Sessions: stores.Sessions,
	}, nil
}

// Logout clears the session and empties the cart, in that order.
func (a *Application) Logout(ctx context.Context) error {
	if err := a.Accounts.Logout(ctx); err != nil {
		return err
	}
	a.Catalog.ClearCart()
	return nil
}

// Close tears down the catalog subscription.
func (a *Application) Close() {
	a.Catalog.Close()
}
