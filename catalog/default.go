package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"
)

//go:embed catalog.toml
var defaultTOML []byte

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the embedded catalog, parsed once. The returned value
// is shared and must be treated as immutable.
//
// The embedded document is covered by the package tests; a parse failure
// here indicates a corrupted build and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Load(bytes.NewReader(defaultTOML))
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("catalog: embedded catalog.toml: %v", defaultErr))
	}
	return defaultCat
}
