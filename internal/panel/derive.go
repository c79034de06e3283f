package panel

import (
	"fmt"

	"github.com/dori/constructtrack/internal/model"
)

// RecentLimit is how many entries the Recent Entries list shows
const RecentLimit = 10

// FilterTasks returns the tasks belonging to projectID, or all tasks when
// projectID is empty. Order is preserved.
func FilterTasks(tasks []model.Task, projectID string) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.InProject(projectID) {
			out = append(out, t)
		}
	}
	return out
}

// TotalSecondsForTask sums the recorded durations of taskID's entries.
// Running entries contribute nothing.
func TotalSecondsForTask(entries []model.TimeEntry, taskID string) int64 {
	var total int64
	for _, e := range entries {
		if e.TaskID == taskID && e.DurationSec != nil {
			total += *e.DurationSec
		}
	}
	return total
}

// RunningEntry returns the first entry for taskID without an end time.
// Several running entries per task are not expected, but if the server
// returns them the earliest in list order wins.
func RunningEntry(entries []model.TimeEntry, taskID string) *model.TimeEntry {
	for i := range entries {
		if entries[i].TaskID == taskID && entries[i].IsRunning() {
			return &entries[i]
		}
	}
	return nil
}

// FormatDuration renders seconds as HH:MM:SS. Hours grow past two digits
// rather than wrapping.
func FormatDuration(sec int64) string {
	h := sec / 3600
	m := (sec % 3600) / 60
	s := sec % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// RecentEntries returns the first n entries in server order
func RecentEntries(entries []model.TimeEntry, n int) []model.TimeEntry {
	if n < 0 {
		n = 0
	}
	if len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// ShortID returns the last four characters of an id, for compact labels
func ShortID(id string) string {
	r := []rune(id)
	if len(r) <= 4 {
		return id
	}
	return string(r[len(r)-4:])
}
