// Package mocks provides gomock mocks for the console's port interfaces.
//
// To regenerate after interface changes, run:
//
//	go generate ./internal/mocks
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=gateway_mock.go github.com/orbitalhq/console-api/internal/ports Gateway
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=auth_bridge_mock.go github.com/orbitalhq/console-api/internal/ports AuthBridge
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=tenant_directory_mock.go github.com/orbitalhq/console-api/internal/ports TenantDirectory
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=cache_repository_mock.go github.com/orbitalhq/console-api/internal/ports CacheRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=activity_repository_mock.go github.com/orbitalhq/console-api/internal/ports ActivityRepository
