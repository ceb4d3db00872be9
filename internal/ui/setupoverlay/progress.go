package setupoverlay

import "time"

const (
	// TickInterval is how often the bar advances.
	TickInterval = 100 * time.Millisecond
	// StatusInterval is how often the status line moves on.
	StatusInterval = 1500 * time.Millisecond

	// Ceiling is where the bar waits for the backend to finish.
	Ceiling = 98.0
	// SlowAbove is the percentage after which the bar slows down.
	SlowAbove = 80.0

	fastStep = 2.0
	slowStep = 0.5
)

// Statuses are shown in order; the last one sticks.
var Statuses = []string{
	"Encrypting credentials...",
	"Securing database entry...",
	"Initializing workspace...",
	"Finalizing account...",
}

// Progress is the synthetic progress shown while the account is set up. It
// is not tied to real backend progress.
type Progress struct {
	percent float64
	status  int
}

// Percent returns the bar position in [0, Ceiling].
func (p Progress) Percent() float64 {
	return p.percent
}

// Status returns the current status line.
func (p Progress) Status() string {
	return Statuses[p.status]
}

// Advance moves the bar one tick.
func (p Progress) Advance() Progress {
	if p.percent >= Ceiling {
		return p
	}
	step := fastStep
	if p.percent > SlowAbove {
		step = slowStep
	}
	p.percent = min(p.percent+step, Ceiling)
	return p
}

// NextStatus moves to the following status line.
func (p Progress) NextStatus() Progress {
	if p.status < len(Statuses)-1 {
		p.status++
	}
	return p
}
