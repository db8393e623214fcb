package core

import "fmt"

// Stats is a point-in-time view of a dispatcher's counters.
type Stats struct {
	Workers   int
	Scheduled int64
	Completed int64
	Failed    int64
	Panicked  int64
	Running   int64
}

// Pending is the number of deliveries scheduled but not yet completed,
// including the ones waiting for a worker slot.
func (s Stats) Pending() int64 {
	return s.Scheduled - s.Completed
}

func (s Stats) String() string {
	return fmt.Sprintf("workers=%d scheduled=%d completed=%d failed=%d panicked=%d running=%d",
		s.Workers, s.Scheduled, s.Completed, s.Failed, s.Panicked, s.Running)
}
