// Package service implements business rules on top of the repository layer.
package service

import "time"

// Clock supplies the current time. Every temporal rule in the booking
// lifecycle goes through a Clock so tests can pin "now".
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock { return systemClock{} }
