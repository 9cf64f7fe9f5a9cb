package usecases

import "time"

// SetClock pins nowFunc for the external test package.
func SetClock(now time.Time) (restore func()) {
	prev := nowFunc
	nowFunc = func() time.Time { return now }
	return func() { nowFunc = prev }
}
