package invalidation

import (
	"fmt"
	"strings"
	"time"
)

// Event is a layer-refresh notification: an upstream geometry layer has
// republished at a new version, so every cached range-query result tagged
// with that layer is stale (§11.2).
type Event struct {
	Layer   string    `json:"layer"`
	Version int64     `json:"version"`
	TS      time.Time `json:"ts"`
}

func (e Event) Validate() error {
	if strings.TrimSpace(e.Layer) == "" {
		return fmt.Errorf("layer is required")
	}
	if e.Version <= 0 {
		return fmt.Errorf("version must be positive")
	}
	if e.TS.IsZero() {
		return fmt.Errorf("ts is required")
	}
	return nil
}
