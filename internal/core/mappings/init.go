// Package mappings registers all column mappings with the core registry.
// Import this package to ensure all mappings are registered.
package mappings

import (
	"fmt"

	"github.com/e-stacy/lebanon-property-tax-map/internal/core"
	"github.com/e-stacy/lebanon-property-tax-map/internal/schema"
)

func init() {
	maps, err := schema.Mappings()
	if err != nil {
		panic(fmt.Sprintf("load embedded mappings: %v", err))
	}
	for _, m := range maps {
		core.Register(m)
	}
}
