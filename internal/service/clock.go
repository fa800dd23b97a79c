package service

import "time"

// monthRange returns [first day of now's month at local midnight, now).
// Every "current month" filter in the services uses this window.
func monthRange(now time.Time) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, now
}
