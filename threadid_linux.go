// FILE: lixenwraith/pebble/threadid_linux.go

//go:build linux

package pebble

import (
	"golang.org/x/sys/unix"
)

// threadID returns the kernel id of the calling OS thread
func threadID() int {
	return unix.Gettid()
}
