//go:build !sqlite

package storage

import "fmt"

// DefaultStoreKind is the backend used when no store flag is given.
func DefaultStoreKind() string { return "memory" }

func newSQLiteStore(_ string) (Store, error) {
	return nil, fmt.Errorf("sqlite backend unavailable in this build; rebuild with -tags sqlite")
}
