// Package watchstatus defines the per-anime watch statuses shared by the
// bookmark store and its clients.
package watchstatus

const (
	Watching    = "watching"
	Completed   = "completed"
	OnHold      = "on_hold"
	Dropped     = "dropped"
	PlanToWatch = "plan_to_watch"
	Rewatching  = "rewatching"
)

// All returns every valid status in display order.
func All() []string {
	return []string{Watching, Completed, OnHold, Dropped, PlanToWatch, Rewatching}
}

// Valid reports whether s is a recognized watch status.
func Valid(s string) bool {
	switch s {
	case Watching, Completed, OnHold, Dropped, PlanToWatch, Rewatching:
		return true
	}
	return false
}
