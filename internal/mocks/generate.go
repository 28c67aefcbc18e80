// Package mocks provides mock implementations for testing the storefront services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the catalog ports.
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	repo := mocks.NewMockProductRepository(ctrl)
//	repo.EXPECT().GetByID(gomock.Any(), "p1").Return(product, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=product_repository_mock.go github.com/ayabeauty/storefront/internal/ports ProductRepository

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=image_host_mock.go github.com/ayabeauty/storefront/internal/ports ImageHost
