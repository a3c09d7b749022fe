package go_func_utils

import (
	"log"
	"runtime/debug"
	"sync"
)

// SafeGo runs fn on a new goroutine. A panic is logged with its stack before
// being re-raised, since the terminal UI swallows anything written to stdout.
func SafeGo(logger *log.Logger, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Printf("PANIC: %v\n%s", r, debug.Stack())
				panic(r)
			}
		}()
		fn()
	}()
}

// SafeGoWG is SafeGo for goroutines tracked by wg. Add is called before the
// goroutine starts and Done when fn returns.
func SafeGoWG(logger *log.Logger, wg *sync.WaitGroup, fn func()) {
	wg.Add(1)
	SafeGo(logger, func() {
		defer wg.Done()
		fn()
	})
}

// SafeCall runs fn on the calling goroutine and swallows a panic after logging
// it. Used for calls into collaborators whose failures must not reach the caller.
// Returns false if fn panicked.
func SafeCall(logger *log.Logger, what string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Printf("%s: recovered panic: %v", what, r)
			ok = false
		}
	}()
	fn()
	return true
}
