// FILE: lixenwraith/pebble/threadid_other.go

//go:build !linux

package pebble

import (
	"os"
)

// threadID falls back to the process id where thread ids are not exposed
func threadID() int {
	return os.Getpid()
}
