package clock

import "time"

// Clock is the source of "now" for defaulted record dates and submission
// timestamps. Tests swap in a manual clock to pin the calendar day.
type Clock interface {
	Now() time.Time
}
