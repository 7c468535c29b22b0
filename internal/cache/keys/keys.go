// Package keys derives cache keys for range-query result sets.
package keys

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// RangeKey hashes a geometry's GeoJSON bytes exactly as given (they are not
// canonicalized, so equal geometries spelled differently get different
// keys), a level and
// an optional height band into a stable cache key for a range-query result
// set (§11.1). hBand is empty for 2D queries.
func RangeKey(geojson []byte, level int, hBand string) string {
	sum := xxhash.Sum64(geojson)
	if hBand == "" {
		return fmt.Sprintf("range:%d:geo=%016x", level, sum)
	}
	return fmt.Sprintf("range:%d:geo=%016x:band=%s", level, sum, hBand)
}

// LayerKey namespaces a geometry by the upstream layer it came from, so
// invalidation can evict every cached range-query result tagged with a
// layer in one sweep (§11.2).
func LayerKey(layer string, level int) string {
	sum := xxhash.Sum64String(layer)
	return fmt.Sprintf("layer:%s:%016x:%d", layer, sum, level)
}
