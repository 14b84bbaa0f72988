//go:build !deadlock

// Package syncutil provides a mutex that can be swapped for a
// deadlock-detecting one with -tags=deadlock.
package syncutil

import "sync"

// A Mutex is a mutual exclusion lock.
type Mutex struct {
	sync.Mutex
}
