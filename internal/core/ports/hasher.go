package ports

import "go.trai.ch/wsdeps/internal/core/domain"

// Hasher defines the interface for computing digests.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ScanSetDigest computes a digest over the scanned manifests and resolver keys.
	ScanSetDigest(set *domain.ScanSet) (string, error)
}
