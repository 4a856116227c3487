package clock

import "time"

// Clock supplies the current time to code that would otherwise read it
// ambiently. Transformation functions take a Clock so that payloads built
// from "now" defaults stay deterministic under test.
type Clock interface {
	Now() time.Time
}

// System reads the real wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }

// Fixed always reports the same instant.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time { return f.At }

// FixedAt is a convenience constructor for tests.
func FixedAt(t time.Time) Fixed { return Fixed{At: t} }
