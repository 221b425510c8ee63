package notification

import (
	"time"

	"weathernotify.app/internal/ports"
)

// State is the position of a subscription in one tick's lifecycle
type State int

const (
	StateIdle State = iota
	StateDue
	StateFiring
	StateFired
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateDue:
		return "DUE"
	case StateFiring:
		return "FIRING"
	case StateFired:
		return "FIRED"
	default:
		return "IDLE"
	}
}

// Result classifies how a due subscription left the tick
type Result int

const (
	ResultSkipped Result = iota
	ResultFired
	ResultFailed
	ResultConflict
)

// String returns the string representation of the result
func (r Result) String() string {
	switch r {
	case ResultFired:
		return "fired"
	case ResultFailed:
		return "failed"
	case ResultConflict:
		return "conflict"
	default:
		return "skipped"
	}
}

// Outcome records what happened to one due subscription during a tick
type Outcome struct {
	ChannelID int64
	State     State
	Result    Result
	Err       error
}

// TickReport summarises one tick
type TickReport struct {
	TickID   string
	At       time.Time
	Due      int
	Skipped  int
	Fired    int
	Failed   int
	Conflict int
	Duration time.Duration
	Outcomes []Outcome
}

// Result converts the report into the metrics summary
func (r *TickReport) Result() ports.TickResult {
	return ports.TickResult{
		Due:      r.Due,
		Skipped:  r.Skipped,
		Fired:    r.Fired,
		Failed:   r.Failed,
		Conflict: r.Conflict,
		Duration: r.Duration,
	}
}

// Outcome returns the outcome recorded for a channel
func (r *TickReport) Outcome(channelID int64) (Outcome, bool) {
	for _, outcome := range r.Outcomes {
		if outcome.ChannelID == channelID {
			return outcome, true
		}
	}
	return Outcome{}, false
}

func (r *TickReport) record(outcome Outcome) {
	switch outcome.Result {
	case ResultSkipped:
		r.Skipped++
	case ResultFired:
		r.Fired++
	case ResultFailed:
		r.Failed++
	case ResultConflict:
		r.Conflict++
	}
	r.Outcomes = append(r.Outcomes, outcome)
}
