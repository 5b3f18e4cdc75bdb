// Package debug provides a minimal env-gated trace logger used by the config
// and discovery packages to explain resolution decisions without requiring a
// logging framework. Set CAIRN_DEBUG to any non-empty value to enable it.
package debug

import (
	"fmt"
	"os"
)

func enabled() bool {
	return os.Getenv("CAIRN_DEBUG") != ""
}

// Logf writes a debug line to stderr if CAIRN_DEBUG is set, otherwise it is a
// no-op.
func Logf(format string, args ...interface{}) {
	if !enabled() {
		return
	}
	fmt.Fprintf(os.Stderr, "[cairn debug] "+format+"\n", args...)
}
