package catalog

import "errors"

var (
	// ErrNotLoaded is returned by accessors while the catalog is still loading.
	ErrNotLoaded = errors.New("catalog: not loaded")
	// ErrInvalidCatalog wraps every data-shape error found at load time.
	ErrInvalidCatalog = errors.New("catalog: invalid catalog document")
)
