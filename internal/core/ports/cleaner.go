package ports

// Cleaner removes transient files after a run.
//
//go:generate go run go.uber.org/mock/mockgen -source=cleaner.go -destination=mocks/mock_cleaner.go -package=mocks
type Cleaner interface {
	// Clean removes every path matched by the given patterns. Missing paths are not an error.
	Clean(patterns []string) error
}
