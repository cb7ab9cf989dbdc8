package game

import "time"

// Clock supplies the engine's notion of now. Cooldowns are plain wall-clock
// comparisons against it, so tests can substitute a fake and step time
// explicitly instead of sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the real wall clock.
var SystemClock Clock = systemClock{}
