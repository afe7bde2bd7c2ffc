// Package product defines the catalog product model and the fixed launch
// catalog used to seed an empty store.
package product

// Product is a single catalog entry. The identifier is stable across the
// product's lifetime; the favorite flag only affects favorites-view inclusion,
// never catalog membership.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageRef    string  `json:"image_ref"`
	Favorite    bool    `json:"favorite"`
}

// SeedCatalog returns the fixed launch catalog. Prices are CLP.
func SeedCatalog() []Product {
	return []Product{
		{ID: 1, Name: "Golden Clásica", Description: "Hamburguesa de carne con queso cheddar, lechuga, tomate y salsa golden", Price: 6990, ImageRef: "burger_clasica"},
		{ID: 2, Name: "Golden Doble", Description: "Doble carne, doble cheddar, cebolla caramelizada y pepinillos", Price: 8990, ImageRef: "burger_doble"},
		{ID: 3, Name: "Golger BBQ", Description: "Carne a la parrilla, tocino, aros de cebolla y salsa BBQ ahumada", Price: 8490, ImageRef: "burger_bbq"},
		{ID: 4, Name: "Golden Veggie", Description: "Medallón de garbanzos, palta, rúcula y mayonesa vegana", Price: 7490, ImageRef: "burger_veggie"},
		{ID: 5, Name: "Papas Golden", Description: "Papas fritas crujientes con sal de merkén", Price: 2990, ImageRef: "papas_fritas"},
		{ID: 6, Name: "Bebida 500ml", Description: "Bebida en lata o botella de 500ml a elección", Price: 1990, ImageRef: "bebida"},
	}
}
