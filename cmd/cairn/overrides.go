package main

import (
	"fmt"
	"time"
)

// resolveTimeout parses --timeout if set, falling back to def.
func resolveTimeout(def time.Duration) (time.Duration, error) {
	if flagTimeout == "" {
		return def, nil
	}
	d, err := time.ParseDuration(flagTimeout)
	if err != nil {
		return 0, fmt.Errorf("cairn: invalid --timeout %q: %w", flagTimeout, err)
	}
	return d, nil
}
