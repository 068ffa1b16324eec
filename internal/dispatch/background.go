package dispatch

import "time"

// Background runs fn on its own goroutine and never joins it. It waits at most grace for fn to
// finish so short work can complete before a short-lived process exits.
func Background(fn func(), grace time.Duration) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	if grace <= 0 {
		return
	}
	timer := time.NewTimer(grace)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
	}
}
