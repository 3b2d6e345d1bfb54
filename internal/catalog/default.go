package catalog

import "fmt"

// def is the built-in catalog, parsed and validated by init().
var def *Catalog

func init() {
	c, err := Parse(embeddedCatalog)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	def = c
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return def
}
