// Package clock abstracts wall-clock time so date checks can be tested.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System returns a Clock backed by the wall clock.
func System() Clock { return systemClock{} }
