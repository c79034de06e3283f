package model

// TimeEntry is a start/stop interval of work logged against a Task.
//
// Timestamps are kept exactly as the server sends them; the client only
// cares whether EndTime is present.
type TimeEntry struct {
	ID          string  `json:"id"`
	TaskID      string  `json:"task_id"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time"`
	DurationSec *int64  `json:"duration_sec"` // Populated on stop
}

// IsRunning returns true if this time entry has no recorded end time
func (te *TimeEntry) IsRunning() bool {
	return te.EndTime == nil
}

// TrackedSeconds returns the recorded duration, or 0 while running
func (te *TimeEntry) TrackedSeconds() int64 {
	if te.DurationSec == nil {
		return 0
	}
	return *te.DurationSec
}
