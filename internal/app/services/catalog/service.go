// Package catalog implements the catalog/cart controller: it mirrors the
// store's reactive product queries into an observable snapshot and owns the
// in-memory shopping cart.
package catalog

import (
	"context"

	"github.com/golden-burguer/appcore/internal/app/domain/cart"
	"github.com/golden-burguer/appcore/internal/app/domain/product"
	"github.com/golden-burguer/appcore/internal/app/metrics"
	"github.com/golden-burguer/appcore/internal/app/state"
	"github.com/golden-burguer/appcore/internal/app/storage"
	"github.com/golden-burguer/appcore/pkg/logger"
)

// Snapshot is the complete observable state of the catalog screens.
type Snapshot struct {
	Products  []product.Product `json:"products"`
	Favorites []product.Product `json:"favorites"`
	Cart      []cart.Item       `json:"cart"`
}

// Subtotal is the derived cart total.
func (s Snapshot) Subtotal() float64 {
	return cart.Subtotal(s.Cart)
}

// Service owns the catalog snapshot and the in-memory cart. The cart is never
// persisted; it starts empty on every process start and is cleared on logout.
type Service struct {
	store  storage.ProductStore
	log    *logger.Logger
	holder *state.Holder[Snapshot]
	cancel context.CancelFunc
	done   chan struct{}
}

// New constructs the controller, loads the initial snapshot and begins
// observing product-table changes. Close must be called to tear the
// subscription down.
func New(store storage.ProductStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("catalog")
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Service{
		store:  store,
		log:    log,
		holder: state.NewHolder(Snapshot{}),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	watch := store.WatchProducts(ctx)
	s.refresh(ctx)
	go s.observe(ctx, watch)
	return s
}

// observe replaces the product and favorite lists wholesale on every store
// change signal. Read failures leave the previous snapshot intact.
func (s *Service) observe(ctx context.Context, watch <-chan struct{}) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-watch:
			if !ok {
				return
			}
			s.refresh(ctx)
		}
	}
}

func (s *Service) refresh(ctx context.Context) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		s.log.Warnf("list products: %v", err)
		return
	}
	favorites, err := s.store.ListFavorites(ctx)
	if err != nil {
		s.log.Warnf("list favorites: %v", err)
		return
	}

	s.holder.Update(func(snap Snapshot) Snapshot {
		snap.Products = products
		snap.Favorites = favorites
		return snap
	})
	metrics.CatalogRefresh()
}

// State returns the current snapshot.
func (s *Service) State() Snapshot {
	return s.holder.Get()
}

// Subscribe registers an observer of snapshot replacements. The current
// snapshot is delivered immediately.
func (s *Service) Subscribe() (<-chan Snapshot, func()) {
	return s.holder.Subscribe()
}

// ToggleFavorite flips the favorite flag for the product without touching
// local state: the visible change arrives through the catalog subscription
// once the write commits. The write happens off the caller's goroutine.
func (s *Service) ToggleFavorite(productID int, currentlyFavorite bool) {
	go func() {
		if err := s.store.UpdateFavorite(context.Background(), productID, !currentlyFavorite); err != nil {
			s.log.Warnf("update favorite for product %d: %v", productID, err)
		}
	}()
}

// AddToCart adds the product or bumps its quantity if already present.
func (s *Service) AddToCart(p product.Product) {
	s.holder.Update(func(snap Snapshot) Snapshot {
		snap.Cart = cart.Add(snap.Cart, p)
		return snap
	})
	metrics.CartOperation("add")
}

// IncreaseQuantity bumps the quantity for the product. Missing product is a
// no-op.
func (s *Service) IncreaseQuantity(productID int) {
	s.holder.Update(func(snap Snapshot) Snapshot {
		snap.Cart = cart.Increase(snap.Cart, productID)
		return snap
	})
	metrics.CartOperation("increase")
}

// DecreaseQuantity lowers the quantity for the product, removing the item at
// quantity 1. Missing product is a no-op.
func (s *Service) DecreaseQuantity(productID int) {
	s.holder.Update(func(snap Snapshot) Snapshot {
		snap.Cart = cart.Decrease(snap.Cart, productID)
		return snap
	})
	metrics.CartOperation("decrease")
}

// ClearCart empties the cart unconditionally. Used on logout.
func (s *Service) ClearCart() {
	s.holder.Update(func(snap Snapshot) Snapshot {
		snap.Cart = nil
		return snap
	})
	metrics.CartOperation("clear")
}

// Subtotal returns the current derived cart total.
func (s *Service) Subtotal() float64 {
	return s.holder.Get().Subtotal()
}

// Close cancels the store subscription and closes all observer channels.
func (s *Service) Close() {
	s.cancel()
	<-s.done
	s.holder.Close()
}
