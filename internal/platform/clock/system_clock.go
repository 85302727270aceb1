package clock

import "time"

// SystemClock reads the host wall clock. Callers choose the zone the
// instant is read in.
type SystemClock struct{}

func NewSystemClock() SystemClock { return SystemClock{} }

func (SystemClock) Now() time.Time { return time.Now() }
