package geospatial

import (
	"fmt"
	"hash/fnv"
)

// ColorFor derives a display color from a postal code prefix. The mapping is
// a pure function of the prefix so the same prefix renders the same color
// across requests and zoom levels.
func ColorFor(prefix string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(prefix))
	return fmt.Sprintf("#%06x", h.Sum32()&0xFFFFFF)
}
