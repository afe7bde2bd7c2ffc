// Package app composes the Golden Burguer application core.
//
// The package sits above storage and the domain services and wires them into
// a running application. It is not a business logic layer: business logic
// lives in internal/app/services/.
//
//	internal/app/
//	├── application.go      # Application struct, wiring, lifecycle
//	├── domain/             # Domain models (pure data + cart list ops)
//	│   ├── product/        # Catalog products and the launch catalog
//	│   ├── user/           # Registered users
//	│   └── cart/           # In-memory cart items
//	├── storage/            # Store interfaces, typed errors, notifier
//	│   ├── memory/         # In-memory implementation for tests/dev
//	│   ├── postgres/       # PostgreSQL products + users
//	│   └── redis/          # Redis session store
//	├── services/           # Business logic
//	│   ├── catalog/        # Catalog/cart controller
//	│   ├── accounts/       # Registration, login, session ownership
//	│   └── profile/        # Profile editor
//	├── state/              # Observable snapshot holder
//	├── validation/         # Field validators and form state
//	├── httpapi/            # HTTP handlers and routing
//	├── metrics/            # Prometheus collectors
//	└── runtime/            # Process wiring: config, stores, HTTP server
package app
