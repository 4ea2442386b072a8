package domain

import "time"

// Clock returns the current time. Services take one so tests can move time forward.
type Clock func() time.Time

// UTCNow is the production clock.
func UTCNow() time.Time {
	return time.Now().UTC()
}

func timePtr(t time.Time) *time.Time {
	return &t
}
